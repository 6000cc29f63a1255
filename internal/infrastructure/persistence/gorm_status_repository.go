package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/juliabase/juliabase/internal/domain/common"
	"github.com/juliabase/juliabase/internal/domain/status"
	"github.com/juliabase/juliabase/internal/infrastructure/persistence/models"
	"github.com/juliabase/juliabase/internal/pkg/logger"
	"gorm.io/gorm"
)

type gormStatusRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormStatusRepository creates a new GORM-based StatusRepository implementation
func NewGormStatusRepository(db *gorm.DB, logger logger.Logger) (status.StatusRepository, error) {
	return &gormStatusRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormStatusRepository) Create(ctx context.Context, message *status.StatusMessage) error {
	if err := message.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.StatusMessageModel{}
	model.FromDomain(message)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create status message: %w", err)
	}

	r.logger.Info("Created status message for ", message.ProcessKind)
	return nil
}

func (r *gormStatusRepository) GetByID(ctx context.Context, messageID string) (*status.StatusMessage, error) {
	var model models.StatusMessageModel
	if err := r.db.WithContext(ctx).Where("id = ?", messageID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("status message with ID %s: %w", messageID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch status message: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormStatusRepository) ListCurrent(ctx context.Context, processKind string, now time.Time) ([]*status.StatusMessage, error) {
	var modelList []*models.StatusMessageModel
	dbQuery := r.db.WithContext(ctx).
		Model(&models.StatusMessageModel{}).
		Where("withdrawn = ?", false).
		Where("begin_time <= ? AND end_time >= ?", now, now).
		Order("date_time_added desc")

	if processKind != "" {
		dbQuery = dbQuery.Where("process_kind = ?", processKind)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch status messages: %w", err)
	}

	domainList := make([]*status.StatusMessage, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormStatusRepository) UpdateByID(ctx context.Context, message *status.StatusMessage) error {
	if err := message.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.StatusMessageModel{}
	model.FromDomain(message)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update status message: %w", err)
	}

	r.logger.Info("Updated status message with id ", message.ID)
	return nil
}
