package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/juliabase/juliabase/internal/domain/common"
	"github.com/juliabase/juliabase/internal/domain/samples"
	"github.com/juliabase/juliabase/internal/infrastructure/persistence/models"
	"github.com/juliabase/juliabase/internal/pkg/logger"
	"gorm.io/gorm"
)

type gormSampleRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormSampleRepository creates a new GORM-based SampleRepository implementation
func NewGormSampleRepository(db *gorm.DB, logger logger.Logger) (samples.SampleRepository, error) {
	return &gormSampleRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormSampleRepository) Create(ctx context.Context, sample *samples.Sample) error {
	if err := sample.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.SampleModel{}
	model.FromDomain(sample)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("sample name %s: %w", sample.Name, common.ErrConflict)
		}
		return fmt.Errorf("failed to create sample: %w", err)
	}

	r.logger.Info("Created sample ", sample.Name, " with id ", sample.ID)
	return nil
}

func (r *gormSampleRepository) GetByID(ctx context.Context, sampleID string) (*samples.Sample, error) {
	var model models.SampleModel
	if err := r.db.WithContext(ctx).Where("id = ?", sampleID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sample with ID %s: %w", sampleID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch sample: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormSampleRepository) GetByName(ctx context.Context, name string) (*samples.Sample, error) {
	var model models.SampleModel
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error
	if err == nil {
		return model.ToDomain(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to fetch sample: %w", err)
	}

	// Fall back to former names.
	var alias models.SampleAliasModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&alias).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sample named %s: %w", name, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch sample alias: %w", err)
	}
	return r.GetByID(ctx, alias.SampleID)
}

func (r *gormSampleRepository) GetByIDs(ctx context.Context, sampleIDs []string) ([]*samples.Sample, error) {
	var modelList []*models.SampleModel
	if err := r.db.WithContext(ctx).Where("id IN ?", sampleIDs).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch samples: %w", err)
	}

	domainList := make([]*samples.Sample, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormSampleRepository) List(ctx context.Context, query *samples.SampleQuery) ([]*samples.Sample, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.SampleModel
	dbQuery := r.db.WithContext(ctx).Model(&models.SampleModel{})

	if query.NameContains != "" {
		dbQuery = dbQuery.Where("name LIKE ?", "%"+query.NameContains+"%")
	}
	if query.TopicID != "" {
		dbQuery = dbQuery.Where("topic_id = ?", query.TopicID)
	}
	if query.ResponsiblePersonID != "" {
		dbQuery = dbQuery.Where("currently_responsible_person_id = ?", query.ResponsiblePersonID)
	}

	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch samples: %w", err)
	}

	domainList := make([]*samples.Sample, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormSampleRepository) UpdateByID(ctx context.Context, sample *samples.Sample) error {
	if err := sample.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.SampleModel{}
	model.FromDomain(sample)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("sample name %s: %w", sample.Name, common.ErrConflict)
		}
		return fmt.Errorf("failed to update sample: %w", err)
	}

	r.logger.Info("Updated sample with id ", sample.ID)
	return nil
}

func (r *gormSampleRepository) DeleteByID(ctx context.Context, sampleID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sample_id = ?", sampleID).Delete(&models.SampleAliasModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sample_id = ?", sampleID).Delete(&models.MySampleModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sample_id = ?", sampleID).Delete(&models.ProcessSampleModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", sampleID).Delete(&models.SampleModel{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete sample: %w", err)
	}

	r.logger.Info("Deleted sample with id ", sampleID)
	return nil
}

func (r *gormSampleRepository) AddAlias(ctx context.Context, sampleID, name string) error {
	alias := &models.SampleAliasModel{Name: name, SampleID: sampleID}
	if err := r.db.WithContext(ctx).Create(alias).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("sample alias %s: %w", name, common.ErrConflict)
		}
		return fmt.Errorf("failed to create sample alias: %w", err)
	}
	return nil
}
