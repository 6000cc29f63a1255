package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/juliabase/juliabase/internal/domain/common"
	"github.com/juliabase/juliabase/internal/domain/feeds"
	"github.com/juliabase/juliabase/internal/domain/processes"
	"github.com/juliabase/juliabase/internal/domain/samples"
	"github.com/juliabase/juliabase/internal/domain/users"
	"github.com/juliabase/juliabase/internal/pkg/logger"
)

// depositionService implements the DepositionService interface
type depositionService struct {
	depositionRepo processes.DepositionRepository
	sampleRepo     samples.SampleRepository
	permissions    users.PermissionChecker
	publisher      feeds.Publisher
	logger         logger.Logger
}

// NewDepositionService creates a new depositionService instance
func NewDepositionService(
	depositionRepo processes.DepositionRepository,
	sampleRepo samples.SampleRepository,
	permissions users.PermissionChecker,
	publisher feeds.Publisher,
	logger logger.Logger,
) (processes.DepositionService, error) {
	return &depositionService{
		depositionRepo: depositionRepo,
		sampleRepo:     sampleRepo,
		permissions:    permissions,
		publisher:      publisher,
		logger:         logger,
	}, nil
}

func (s *depositionService) Create(ctx context.Context, actorID string, deposition *processes.Deposition) (*processes.Deposition, error) {
	if err := s.permissions.EnsureCanAdd(ctx, actorID, processes.KindDeposition); err != nil {
		return nil, err
	}

	if deposition.ID == "" {
		deposition.ID = uuid.New().String()
	}
	if deposition.OperatorID == "" {
		deposition.OperatorID = actorID
	}
	if deposition.Timestamp.IsZero() {
		deposition.Timestamp = time.Now().UTC()
	}

	if err := s.ensureSamplesExist(ctx, deposition.SampleIDs); err != nil {
		return nil, err
	}

	if deposition.Number == "" {
		serial, err := s.depositionRepo.NextSerial(ctx, deposition.Timestamp.Year())
		if err != nil {
			return nil, err
		}
		deposition.Number = processes.DepositionNumber(deposition.Timestamp.Year(), serial)
	} else {
		if _, err := s.depositionRepo.GetByNumber(ctx, deposition.Number); err == nil {
			return nil, fmt.Errorf("deposition number %s: %w", deposition.Number, common.ErrConflict)
		} else if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
	}

	deposition.Layers = renumbered(deposition.Layers)
	if err := deposition.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidParameter, err)
	}

	if err := s.depositionRepo.Create(ctx, deposition); err != nil {
		return nil, err
	}

	s.publisher.Publish(&feeds.Event{
		Kind:         feeds.KindNewProcess,
		Title:        fmt.Sprintf("New deposition %s", deposition.Number),
		Summary:      deposition.Comments,
		Link:         "/depositions/" + deposition.Number,
		OriginatorID: actorID,
		Timestamp:    time.Now().UTC(),
		SampleIDs:    deposition.SampleIDs,
	})
	return deposition, nil
}

func (s *depositionService) GetByNumber(ctx context.Context, actorID, number string) (*processes.Deposition, error) {
	deposition, err := s.depositionRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if err := s.permissions.EnsureCanView(ctx, actorID, deposition.OperatorID, processes.KindDeposition); err != nil {
		return nil, err
	}
	return deposition, nil
}

// List hides depositions the actor may not view instead of failing the whole
// request.
func (s *depositionService) List(ctx context.Context, actorID string, query *processes.DepositionQuery) ([]*processes.Deposition, error) {
	depositions, err := s.depositionRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	visible := make([]*processes.Deposition, 0, len(depositions))
	for _, deposition := range depositions {
		if err := s.permissions.EnsureCanView(ctx, actorID, deposition.OperatorID, processes.KindDeposition); err != nil {
			if errors.Is(err, common.ErrAccessDenied) {
				continue
			}
			return nil, err
		}
		visible = append(visible, deposition)
	}
	return visible, nil
}

// Update applies the layer-edit batch on top of the stored layer list and
// persists the result. A finished deposition is frozen.
func (s *depositionService) Update(ctx context.Context, actorID, number string, comments *string, sampleIDs []string, edits []processes.LayerEdit, finished *bool) (*processes.Deposition, error) {
	deposition, err := s.depositionRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	if err := s.permissions.EnsureCanEdit(ctx, actorID, deposition.OperatorID, processes.KindDeposition); err != nil {
		return nil, err
	}

	if deposition.Finished {
		return nil, fmt.Errorf("deposition %s is finished: %w", number, common.ErrInvalidParameter)
	}

	if comments != nil {
		deposition.Comments = *comments
	}
	if sampleIDs != nil {
		if err := s.ensureSamplesExist(ctx, sampleIDs); err != nil {
			return nil, err
		}
		deposition.SampleIDs = sampleIDs
	}

	if len(edits) > 0 {
		layers, err := processes.ApplyLayerEdits(deposition.Layers, edits)
		if err != nil {
			return nil, err
		}
		deposition.Layers = layers
	}

	if finished != nil {
		deposition.Finished = *finished
	}

	if err := deposition.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidParameter, err)
	}

	if err := s.depositionRepo.UpdateByID(ctx, deposition); err != nil {
		return nil, err
	}

	s.publisher.Publish(&feeds.Event{
		Kind:         feeds.KindNewProcess,
		Title:        fmt.Sprintf("Deposition %s was edited", deposition.Number),
		Summary:      deposition.Comments,
		Link:         "/depositions/" + deposition.Number,
		OriginatorID: actorID,
		Timestamp:    time.Now().UTC(),
		SampleIDs:    deposition.SampleIDs,
	})
	return deposition, nil
}

func (s *depositionService) ensureSamplesExist(ctx context.Context, sampleIDs []string) error {
	found, err := s.sampleRepo.GetByIDs(ctx, sampleIDs)
	if err != nil {
		return err
	}
	if len(found) != len(sampleIDs) {
		return fmt.Errorf("%d of %d samples: %w", len(sampleIDs)-len(found), len(sampleIDs), common.ErrNotFound)
	}
	return nil
}

func renumbered(layers []processes.Layer) []processes.Layer {
	for i := range layers {
		layers[i].Number = i + 1
	}
	return layers
}

// processService implements the ProcessService interface for generic
// (non-deposition) processes.
type processService struct {
	processRepo processes.ProcessRepository
	sampleRepo  samples.SampleRepository
	permissions users.PermissionChecker
	publisher   feeds.Publisher
	logger      logger.Logger
}

// NewProcessService creates a new processService instance
func NewProcessService(
	processRepo processes.ProcessRepository,
	sampleRepo samples.SampleRepository,
	permissions users.PermissionChecker,
	publisher feeds.Publisher,
	logger logger.Logger,
) (processes.ProcessService, error) {
	return &processService{
		processRepo: processRepo,
		sampleRepo:  sampleRepo,
		permissions: permissions,
		publisher:   publisher,
		logger:      logger,
	}, nil
}

func (s *processService) Create(ctx context.Context, actorID string, process *processes.Process) (*processes.Process, error) {
	if err := s.permissions.EnsureCanAdd(ctx, actorID, process.Kind); err != nil {
		return nil, err
	}

	if process.ID == "" {
		process.ID = uuid.New().String()
	}
	if process.OperatorID == "" {
		process.OperatorID = actorID
	}
	if process.Timestamp.IsZero() {
		process.Timestamp = time.Now().UTC()
	}

	found, err := s.sampleRepo.GetByIDs(ctx, process.SampleIDs)
	if err != nil {
		return nil, err
	}
	if len(found) != len(process.SampleIDs) {
		return nil, fmt.Errorf("%d of %d samples: %w", len(process.SampleIDs)-len(found), len(process.SampleIDs), common.ErrNotFound)
	}

	if err := process.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidParameter, err)
	}

	if err := s.processRepo.Create(ctx, process); err != nil {
		return nil, err
	}

	s.publisher.Publish(&feeds.Event{
		Kind:         feeds.KindNewProcess,
		Title:        fmt.Sprintf("New %s process", process.Kind),
		Summary:      process.Comments,
		Link:         "/processes/" + process.ID,
		OriginatorID: actorID,
		Timestamp:    time.Now().UTC(),
		SampleIDs:    process.SampleIDs,
	})
	return process, nil
}

// ListForSample returns the sample's processes, hiding those of kinds the
// actor may not view.
func (s *processService) ListForSample(ctx context.Context, actorID, sampleID string) ([]*processes.Process, error) {
	if _, err := s.sampleRepo.GetByID(ctx, sampleID); err != nil {
		return nil, err
	}

	query := processes.NewProcessQuery()
	query.SampleID = sampleID
	processList, err := s.processRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	visible := make([]*processes.Process, 0, len(processList))
	for _, process := range processList {
		if err := s.permissions.EnsureCanView(ctx, actorID, process.OperatorID, process.Kind); err != nil {
			if errors.Is(err, common.ErrAccessDenied) {
				continue
			}
			return nil, err
		}
		visible = append(visible, process)
	}
	return visible, nil
}
