package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/juliabase/juliabase/internal/domain/common"
	"github.com/juliabase/juliabase/internal/domain/users"
	"github.com/juliabase/juliabase/internal/infrastructure/persistence/models"
	"github.com/juliabase/juliabase/internal/pkg/logger"
	"gorm.io/gorm"
)

type gormUserRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormUserRepository creates a new GORM-based UserRepository implementation
func NewGormUserRepository(db *gorm.DB, logger logger.Logger) (users.UserRepository, error) {
	return &gormUserRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormUserRepository) Create(ctx context.Context, user *users.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.UserModel{}
	model.FromDomain(user)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("login name %s: %w", user.LoginName, common.ErrConflict)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Info("Created user ", user.LoginName)
	return nil
}

func (r *gormUserRepository) GetByID(ctx context.Context, userID string) (*users.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with ID %s: %w", userID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormUserRepository) GetByLogin(ctx context.Context, loginName string) (*users.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("login_name = ?", loginName).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", loginName, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormUserRepository) List(ctx context.Context) ([]*users.User, error) {
	var modelList []*models.UserModel
	if err := r.db.WithContext(ctx).Order("login_name asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	domainList := make([]*users.User, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormUserRepository) UpdateByID(ctx context.Context, user *users.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.UserModel{}
	model.FromDomain(user)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	r.logger.Info("Updated user with id ", user.ID)
	return nil
}

type gormUserDetailsRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormUserDetailsRepository creates a new GORM-based UserDetailsRepository implementation
func NewGormUserDetailsRepository(db *gorm.DB, logger logger.Logger) (users.UserDetailsRepository, error) {
	return &gormUserDetailsRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormUserDetailsRepository) Get(ctx context.Context, userID string) (*users.UserDetails, error) {
	var model models.UserDetailsModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("details of user %s: %w", userID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user details: %w", err)
	}

	var mySamples []models.MySampleModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&mySamples).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch my samples: %w", err)
	}

	details := &users.UserDetails{
		UserID:      model.UserID,
		FeedToken:   model.FeedToken,
		MySampleIDs: make([]string, len(mySamples)),
	}
	for i, row := range mySamples {
		details.MySampleIDs[i] = row.SampleID
	}
	return details, nil
}

func (r *gormUserDetailsRepository) Save(ctx context.Context, details *users.UserDetails) error {
	if err := details.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.UserDetailsModel{
		UserID:    details.UserID,
		FeedToken: details.FeedToken,
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save user details: %w", err)
	}
	return nil
}

func (r *gormUserDetailsRepository) AddMySamples(ctx context.Context, userID string, sampleIDs []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sampleID := range sampleIDs {
			row := &models.MySampleModel{UserID: userID, SampleID: sampleID}
			if err := tx.Create(row).Error; err != nil {
				// Already watching this sample; not an error.
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					continue
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add my samples: %w", err)
	}
	return nil
}

func (r *gormUserDetailsRepository) RemoveMySamples(ctx context.Context, userID string, sampleIDs []string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND sample_id IN ?", userID, sampleIDs).
		Delete(&models.MySampleModel{}).Error; err != nil {
		return fmt.Errorf("failed to remove my samples: %w", err)
	}
	return nil
}

func (r *gormUserDetailsRepository) WatchersOf(ctx context.Context, sampleIDs []string) ([]string, error) {
	if len(sampleIDs) == 0 {
		return nil, nil
	}

	var userIDs []string
	if err := r.db.WithContext(ctx).
		Model(&models.MySampleModel{}).
		Where("sample_id IN ?", sampleIDs).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch watchers: %w", err)
	}
	return userIDs, nil
}

type gormPermissionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPermissionRepository creates a new GORM-based PermissionRepository implementation
func NewGormPermissionRepository(db *gorm.DB, logger logger.Logger) (users.PermissionRepository, error) {
	return &gormPermissionRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPermissionRepository) Grant(ctx context.Context, userID, processKind, permission string) error {
	row := &models.PermissionModel{UserID: userID, ProcessKind: processKind, Permission: permission}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("failed to grant permission: %w", err)
	}

	r.logger.Info("Granted ", permission, " on ", processKind, " to user ", userID)
	return nil
}

func (r *gormPermissionRepository) Revoke(ctx context.Context, userID, processKind, permission string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND process_kind = ? AND permission = ?", userID, processKind, permission).
		Delete(&models.PermissionModel{}).Error; err != nil {
		return fmt.Errorf("failed to revoke permission: %w", err)
	}

	r.logger.Info("Revoked ", permission, " on ", processKind, " from user ", userID)
	return nil
}

func (r *gormPermissionRepository) Has(ctx context.Context, userID, processKind, permission string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PermissionModel{}).
		Where("user_id = ? AND process_kind = ? AND permission = ?", userID, processKind, permission).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check permission: %w", err)
	}
	return count > 0, nil
}

func (r *gormPermissionRepository) UsersWithAnyPermission(ctx context.Context, processKind string) ([]string, error) {
	var userIDs []string
	if err := r.db.WithContext(ctx).
		Model(&models.PermissionModel{}).
		Where("process_kind = ?", processKind).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch permission holders: %w", err)
	}
	return userIDs, nil
}
