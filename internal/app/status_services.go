package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/juliabase/juliabase/internal/domain/common"
	"github.com/juliabase/juliabase/internal/domain/feeds"
	"github.com/juliabase/juliabase/internal/domain/status"
	"github.com/juliabase/juliabase/internal/domain/users"
	"github.com/juliabase/juliabase/internal/pkg/logger"
)

// statusService implements the StatusService interface
type statusService struct {
	statusRepo     status.StatusRepository
	userRepo       users.UserRepository
	permissionRepo users.PermissionRepository
	publisher      feeds.Publisher
	logger         logger.Logger
}

// NewStatusService creates a new statusService instance
func NewStatusService(
	statusRepo status.StatusRepository,
	userRepo users.UserRepository,
	permissionRepo users.PermissionRepository,
	publisher feeds.Publisher,
	logger logger.Logger,
) (status.StatusService, error) {
	return &statusService{
		statusRepo:     statusRepo,
		userRepo:       userRepo,
		permissionRepo: permissionRepo,
		publisher:      publisher,
		logger:         logger,
	}, nil
}

// Add stores the message and notifies everyone holding any permission on the
// process kind, since those are the users working with the apparatus.
func (s *statusService) Add(ctx context.Context, actorID string, message *status.StatusMessage) (*status.StatusMessage, error) {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.OperatorID == "" {
		message.OperatorID = actorID
	}
	if message.DateTimeAdded.IsZero() {
		message.DateTimeAdded = time.Now().UTC()
	}

	if err := message.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidParameter, err)
	}

	if err := s.statusRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	recipientIDs, err := s.permissionRepo.UsersWithAnyPermission(ctx, message.ProcessKind)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(&feeds.Event{
		Kind:         feeds.KindStatusMessage,
		Title:        fmt.Sprintf("Status message for %s", message.ProcessKind),
		Summary:      message.Message,
		Link:         "/status",
		OriginatorID: actorID,
		Timestamp:    message.DateTimeAdded,
		RecipientIDs: recipientIDs,
	})
	return message, nil
}

func (s *statusService) Withdraw(ctx context.Context, actorID, messageID string) error {
	message, err := s.statusRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	if actorID != message.OperatorID {
		actor, err := s.userRepo.GetByID(ctx, actorID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin {
			return fmt.Errorf("user %s may not withdraw this message: %w", actor.LoginName, common.ErrAccessDenied)
		}
	}

	if message.Withdrawn {
		return nil
	}

	message.Withdrawn = true
	if err := s.statusRepo.UpdateByID(ctx, message); err != nil {
		return err
	}
	return nil
}

func (s *statusService) ListCurrent(ctx context.Context, processKind string) ([]*status.StatusMessage, error) {
	messages, err := s.statusRepo.ListCurrent(ctx, processKind, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return messages, nil
}
