package app

import (
	"context"
	"fmt"

	"github.com/juliabase/juliabase/internal/domain/common"
	"github.com/juliabase/juliabase/internal/domain/users"
	"github.com/juliabase/juliabase/internal/pkg/logger"
)

// permissionChecker implements the PermissionChecker interface on top of the
// permission grant table. Admins pass every check.
type permissionChecker struct {
	userRepo       users.UserRepository
	permissionRepo users.PermissionRepository
	logger         logger.Logger
}

// NewPermissionChecker creates a new permissionChecker instance
func NewPermissionChecker(
	userRepo users.UserRepository,
	permissionRepo users.PermissionRepository,
	logger logger.Logger,
) (users.PermissionChecker, error) {
	return &permissionChecker{
		userRepo:       userRepo,
		permissionRepo: permissionRepo,
		logger:         logger,
	}, nil
}

func (c *permissionChecker) EnsureCanAdd(ctx context.Context, userID, processKind string) error {
	user, err := c.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsAdmin {
		return nil
	}

	allowed, err := c.permissionRepo.Has(ctx, userID, processKind, users.PermissionAdd)
	if err != nil {
		return err
	}
	if !allowed {
		return fmt.Errorf("user %s may not add %s processes: %w", user.LoginName, processKind, common.ErrAccessDenied)
	}
	return nil
}

func (c *permissionChecker) EnsureCanEdit(ctx context.Context, userID, operatorID, processKind string) error {
	user, err := c.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsAdmin || userID == operatorID {
		return nil
	}

	allowed, err := c.permissionRepo.Has(ctx, userID, processKind, users.PermissionEdit)
	if err != nil {
		return err
	}
	if !allowed {
		return fmt.Errorf("user %s may not edit %s processes: %w", user.LoginName, processKind, common.ErrAccessDenied)
	}
	return nil
}

func (c *permissionChecker) EnsureCanView(ctx context.Context, userID, operatorID, processKind string) error {
	user, err := c.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to look up user %s: %w", userID, err)
	}
	if user.IsAdmin || userID == operatorID {
		return nil
	}

	for _, permission := range []string{users.PermissionView, users.PermissionEdit, users.PermissionAdd} {
		allowed, err := c.permissionRepo.Has(ctx, userID, processKind, permission)
		if err != nil {
			return fmt.Errorf("failed to check %s grant: %w", permission, err)
		}
		if allowed {
			return nil
		}
	}
	return fmt.Errorf("user %s may not view %s processes: %w", user.LoginName, processKind, common.ErrAccessDenied)
}

func (c *permissionChecker) Grant(ctx context.Context, actorID, userID, processKind, permission string) error {
	if err := c.ensureAdmin(ctx, actorID); err != nil {
		return err
	}
	if err := c.permissionRepo.Grant(ctx, userID, processKind, permission); err != nil {
		return err
	}
	return nil
}

func (c *permissionChecker) Revoke(ctx context.Context, actorID, userID, processKind, permission string) error {
	if err := c.ensureAdmin(ctx, actorID); err != nil {
		return err
	}
	if err := c.permissionRepo.Revoke(ctx, userID, processKind, permission); err != nil {
		return err
	}
	return nil
}

func (c *permissionChecker) ensureAdmin(ctx context.Context, actorID string) error {
	actor, err := c.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin {
		return fmt.Errorf("user %s may not manage permissions: %w", actor.LoginName, common.ErrAccessDenied)
	}
	return nil
}
