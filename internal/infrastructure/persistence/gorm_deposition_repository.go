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

type gormDepositionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormDepositionRepository creates a new GORM-based DepositionRepository
// implementation. A deposition spans three tables: its process row, the
// deposition extension row, and the layer rows; writes keep them consistent
// in one transaction.
func NewGormDepositionRepository(db *gorm.DB, logger logger.Logger) (processes.DepositionRepository, error) {
	return &gormDepositionRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormDepositionRepository) Create(ctx context.Context, deposition *processes.Deposition) error {
	if err := deposition.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	processModel := &models.ProcessModel{}
	processModel.FromDomain(deposition.Process())

	depositionModel := &models.DepositionModel{
		ID:       deposition.ID,
		Number:   deposition.Number,
		Finished: deposition.Finished,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(processModel).Error; err != nil {
			return err
		}
		if err := tx.Create(depositionModel).Error; err != nil {
			return err
		}
		if err := replaceSampleLinks(tx, deposition.ID, deposition.SampleIDs); err != nil {
			return err
		}
		return replaceLayers(tx, deposition.ID, deposition.Layers)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("deposition number %s: %w", deposition.Number, common.ErrConflict)
		}
		return fmt.Errorf("failed to create deposition: %w", err)
	}

	r.logger.Info("Created deposition ", deposition.Number)
	return nil
}

func (r *gormDepositionRepository) GetByID(ctx context.Context, depositionID string) (*processes.Deposition, error) {
	var model models.DepositionModel
	if err := r.db.WithContext(ctx).Where("id = ?", depositionID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("deposition with ID %s: %w", depositionID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch deposition: %w", err)
	}
	return r.assemble(ctx, &model)
}

func (r *gormDepositionRepository) GetByNumber(ctx context.Context, number string) (*processes.Deposition, error) {
	var model models.DepositionModel
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("deposition %s: %w", number, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch deposition: %w", err)
	}
	return r.assemble(ctx, &model)
}

func (r *gormDepositionRepository) List(ctx context.Context, query *processes.DepositionQuery) ([]*processes.Deposition, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.DepositionModel
	dbQuery := r.db.WithContext(ctx).
		Model(&models.DepositionModel{}).
		Joins("JOIN processes ON processes.id = depositions.id")

	if query.OperatorID != "" {
		dbQuery = dbQuery.Where("processes.operator_id = ?", query.OperatorID)
	}
	if query.SampleID != "" {
		dbQuery = dbQuery.
			Joins("JOIN process_samples ON process_samples.process_id = depositions.id").
			Where("process_samples.sample_id = ?", query.SampleID)
	}
	if query.Year > 0 {
		dbQuery = dbQuery.Where("depositions.number LIKE ?", fmt.Sprintf("%02dD-%%", query.Year%100))
	}

	order := query.SortOrder
	if order == "" {
		order = "desc"
	}
	dbQuery = dbQuery.Order("processes.timestamp " + order)

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch depositions: %w", err)
	}

	domainList := make([]*processes.Deposition, len(modelList))
	for i, model := range modelList {
		deposition, err := r.assemble(ctx, model)
		if err != nil {
			return nil, err
		}
		domainList[i] = deposition
	}
	return domainList, nil
}

func (r *gormDepositionRepository) UpdateByID(ctx context.Context, deposition *processes.Deposition) error {
	if err := deposition.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	processModel := &models.ProcessModel{}
	processModel.FromDomain(deposition.Process())

	depositionModel := &models.DepositionModel{
		ID:       deposition.ID,
		Number:   deposition.Number,
		Finished: deposition.Finished,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(processModel).Error; err != nil {
			return err
		}
		if err := tx.Save(depositionModel).Error; err != nil {
			return err
		}
		if err := replaceSampleLinks(tx, deposition.ID, deposition.SampleIDs); err != nil {
			return err
		}
		return replaceLayers(tx, deposition.ID, deposition.Layers)
	})
	if err != nil {
		return fmt.Errorf("failed to update deposition: %w", err)
	}

	r.logger.Info("Updated deposition ", deposition.Number)
	return nil
}

func (r *gormDepositionRepository) NextSerial(ctx context.Context, year int) (int, error) {
	prefix := fmt.Sprintf("%02dD-", year%100)

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DepositionModel{}).
		Where("number LIKE ?", prefix+"%").
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count depositions of year %d: %w", year, err)
	}

	// Serials may have gaps after failed creations; probe until free.
	serial := int(count) + 1
	for {
		var taken int64
		number := processes.DepositionNumber(year, serial)
		if err := r.db.WithContext(ctx).
			Model(&models.DepositionModel{}).
			Where("number = ?", number).
			Count(&taken).Error; err != nil {
			return 0, fmt.Errorf("failed to probe deposition number %s: %w", number, err)
		}
		if taken == 0 {
			return serial, nil
		}
		serial++
	}
}

func (r *gormDepositionRepository) assemble(ctx context.Context, model *models.DepositionModel) (*processes.Deposition, error) {
	var processModel models.ProcessModel
	if err := r.db.WithContext(ctx).Where("id = ?", model.ID).First(&processModel).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch process row of deposition %s: %w", model.Number, err)
	}

	sampleIDs, err := sampleLinksOf(r.db.WithContext(ctx), model.ID)
	if err != nil {
		return nil, err
	}

	var layerModels []models.LayerModel
	if err := r.db.WithContext(ctx).
		Where("deposition_id = ?", model.ID).
		Order("number asc").
		Find(&layerModels).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch layers of deposition %s: %w", model.Number, err)
	}

	layers := make([]processes.Layer, len(layerModels))
	for i, layerModel := range layerModels {
		layer, err := layerModel.ToDomain()
		if err != nil {
			return nil, err
		}
		layers[i] = layer
	}

	return &processes.Deposition{
		ID:         model.ID,
		Number:     model.Number,
		OperatorID: processModel.OperatorID,
		Timestamp:  processModel.Timestamp,
		Comments:   processModel.Comments,
		SampleIDs:  sampleIDs,
		Layers:     layers,
		Finished:   model.Finished,
	}, nil
}

// replaceLayers rewrites the layer rows of a deposition inside tx.
func replaceLayers(tx *gorm.DB, depositionID string, layers []processes.Layer) error {
	if err := tx.Where("deposition_id = ?", depositionID).Delete(&models.LayerModel{}).Error; err != nil {
		return err
	}
	for _, layer := range layers {
		model := &models.LayerModel{}
		if err := model.FromDomain(depositionID, layer); err != nil {
			return err
		}
		if err := tx.Create(model).Error; err != nil {
			return err
		}
	}
	return nil
}
