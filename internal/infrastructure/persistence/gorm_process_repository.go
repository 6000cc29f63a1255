package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/juliabase/juliabase/internal/domain/common"
	"github.com/juliabase/juliabase/internal/domain/processes"
	"github.com/juliabase/juliabase/internal/infrastructure/persistence/models"
	"github.com/juliabase/juliabase/internal/pkg/logger"
	"gorm.io/gorm"
)

type gormProcessRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormProcessRepository creates a new GORM-based ProcessRepository implementation
func NewGormProcessRepository(db *gorm.DB, logger logger.Logger) (processes.ProcessRepository, error) {
	return &gormProcessRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormProcessRepository) Create(ctx context.Context, process *processes.Process) error {
	if err := process.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ProcessModel{}
	model.FromDomain(process)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return replaceSampleLinks(tx, process.ID, process.SampleIDs)
	})
	if err != nil {
		return fmt.Errorf("failed to create process: %w", err)
	}

	r.logger.Info("Created ", process.Kind, " process with id ", process.ID)
	return nil
}

func (r *gormProcessRepository) GetByID(ctx context.Context, processID string) (*processes.Process, error) {
	var model models.ProcessModel
	if err := r.db.WithContext(ctx).Where("id = ?", processID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("process with ID %s: %w", processID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch process: %w", err)
	}

	sampleIDs, err := sampleLinksOf(r.db.WithContext(ctx), processID)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(sampleIDs), nil
}

func (r *gormProcessRepository) List(ctx context.Context, query *processes.ProcessQuery) ([]*processes.Process, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.ProcessModel
	dbQuery := r.db.WithContext(ctx).Model(&models.ProcessModel{})

	if query.SampleID != "" {
		dbQuery = dbQuery.
			Joins("JOIN process_samples ON process_samples.process_id = processes.id").
			Where("process_samples.sample_id = ?", query.SampleID)
	}
	if query.Kind != "" {
		dbQuery = dbQuery.Where("kind = ?", query.Kind)
	}
	if query.OperatorID != "" {
		dbQuery = dbQuery.Where("operator_id = ?", query.OperatorID)
	}

	order := query.SortOrder
	if order == "" {
		order = "desc"
	}
	dbQuery = dbQuery.Order("timestamp " + order)

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch processes: %w", err)
	}

	domainList := make([]*processes.Process, len(modelList))
	for i, model := range modelList {
		sampleIDs, err := sampleLinksOf(r.db.WithContext(ctx), model.ID)
		if err != nil {
			return nil, err
		}
		domainList[i] = model.ToDomain(sampleIDs)
	}
	return domainList, nil
}

func (r *gormProcessRepository) UpdateByID(ctx context.Context, process *processes.Process) error {
	if err := process.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ProcessModel{}
	model.FromDomain(process)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		return replaceSampleLinks(tx, process.ID, process.SampleIDs)
	})
	if err != nil {
		return fmt.Errorf("failed to update process: %w", err)
	}

	r.logger.Info("Updated process with id ", process.ID)
	return nil
}

func (r *gormProcessRepository) DeleteByID(ctx context.Context, processID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("process_id = ?", processID).Delete(&models.ProcessSampleModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", processID).Delete(&models.ProcessModel{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete process: %w", err)
	}

	r.logger.Info("Deleted process with id ", processID)
	return nil
}

// replaceSampleLinks rewrites the process-sample join rows inside tx.
func replaceSampleLinks(tx *gorm.DB, processID string, sampleIDs []string) error {
	if err := tx.Where("process_id = ?", processID).Delete(&models.ProcessSampleModel{}).Error; err != nil {
		return err
	}
	for _, sampleID := range sampleIDs {
		row := &models.ProcessSampleModel{ProcessID: processID, SampleID: sampleID}
		if err := tx.Create(row).Error; err != nil {
			return err
		}
	}
	return nil
}

func sampleLinksOf(db *gorm.DB, processID string) ([]string, error) {
	var sampleIDs []string
	if err := db.
		Model(&models.ProcessSampleModel{}).
		Where("process_id = ?", processID).
		Pluck("sample_id", &sampleIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch process sample links: %w", err)
	}
	return sampleIDs, nil
}
