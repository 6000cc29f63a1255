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
	"github.com/juliabase/juliabase/internal/domain/topics"
	"github.com/juliabase/juliabase/internal/domain/users"
	"github.com/juliabase/juliabase/internal/pkg/logger"
)

// sampleService implements the SampleService interface for sample bookkeeping
type sampleService struct {
	sampleRepo  samples.SampleRepository
	topicRepo   topics.TopicRepository
	userRepo    users.UserRepository
	processRepo processes.ProcessRepository
	publisher   feeds.Publisher
	logger      logger.Logger
}

// NewSampleService creates a new sampleService instance
func NewSampleService(
	sampleRepo samples.SampleRepository,
	topicRepo topics.TopicRepository,
	userRepo users.UserRepository,
	processRepo processes.ProcessRepository,
	publisher feeds.Publisher,
	logger logger.Logger,
) (samples.SampleService, error) {
	return &sampleService{
		sampleRepo:  sampleRepo,
		topicRepo:   topicRepo,
		userRepo:    userRepo,
		processRepo: processRepo,
		publisher:   publisher,
		logger:      logger,
	}, nil
}

func (s *sampleService) Create(ctx context.Context, actorID string, sample *samples.Sample) (*samples.Sample, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if sample.ID == "" {
		sample.ID = uuid.New().String()
	}
	if sample.DateTimeCreated.IsZero() {
		sample.DateTimeCreated = time.Now().UTC()
	}
	if sample.CurrentlyResponsiblePersonID == "" {
		sample.CurrentlyResponsiblePersonID = actorID
	}

	if _, err := s.userRepo.GetByID(ctx, sample.CurrentlyResponsiblePersonID); err != nil {
		return nil, fmt.Errorf("responsible person: %w", err)
	}

	if sample.TopicID != nil {
		topic, err := s.topicRepo.GetByID(ctx, *sample.TopicID)
		if err != nil {
			return nil, fmt.Errorf("topic: %w", err)
		}
		if !actor.IsAdmin && !topic.HasMember(actorID) {
			return nil, fmt.Errorf("user %s is not in topic %s: %w", actor.LoginName, topic.Name, common.ErrAccessDenied)
		}
	}

	if err := s.sampleRepo.Create(ctx, sample); err != nil {
		return nil, err
	}

	s.publisher.Publish(&feeds.Event{
		Kind:         feeds.KindNewSample,
		Title:        fmt.Sprintf("New sample %s", sample.Name),
		Summary:      sample.Purpose,
		Link:         "/samples/" + sample.Name,
		OriginatorID: actorID,
		Timestamp:    time.Now().UTC(),
		SampleIDs:    []string{sample.ID},
		TopicID:      topicIDOf(sample),
	})
	return sample, nil
}

func (s *sampleService) GetByName(ctx context.Context, actorID, name string) (*samples.Sample, error) {
	sample, err := s.sampleRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := s.ensureCanView(ctx, actorID, sample); err != nil {
		return nil, err
	}
	return sample, nil
}

func (s *sampleService) List(ctx context.Context, actorID string, query *samples.SampleQuery) ([]*samples.Sample, error) {
	sampleList, err := s.sampleRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	// Confidential-topic samples disappear from listings for non-members.
	visible := make([]*samples.Sample, 0, len(sampleList))
	for _, sample := range sampleList {
		if err := s.ensureCanView(ctx, actorID, sample); err != nil {
			if errors.Is(err, common.ErrAccessDenied) {
				continue
			}
			return nil, err
		}
		visible = append(visible, sample)
	}
	return visible, nil
}

func (s *sampleService) Update(ctx context.Context, actorID string, sample *samples.Sample) error {
	existing, err := s.sampleRepo.GetByID(ctx, sample.ID)
	if err != nil {
		return err
	}
	if err := s.ensureCanEdit(ctx, actorID, existing); err != nil {
		return err
	}

	if sample.Name != existing.Name {
		return fmt.Errorf("%w: use rename to change a sample name", common.ErrInvalidParameter)
	}

	if err := s.sampleRepo.UpdateByID(ctx, sample); err != nil {
		return err
	}

	s.publisher.Publish(&feeds.Event{
		Kind:         feeds.KindEditedSample,
		Title:        fmt.Sprintf("Sample %s was edited", sample.Name),
		Link:         "/samples/" + sample.Name,
		OriginatorID: actorID,
		Timestamp:    time.Now().UTC(),
		SampleIDs:    []string{sample.ID},
		TopicID:      topicIDOf(sample),
	})
	return nil
}

func (s *sampleService) Rename(ctx context.Context, actorID, sampleID, newName string) error {
	sample, err := s.sampleRepo.GetByID(ctx, sampleID)
	if err != nil {
		return err
	}
	if err := s.ensureCanEdit(ctx, actorID, sample); err != nil {
		return err
	}

	if _, err := s.sampleRepo.GetByName(ctx, newName); err == nil {
		return fmt.Errorf("sample name %s: %w", newName, common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return err
	}

	oldName := sample.Name
	sample.Name = newName
	if err := s.sampleRepo.UpdateByID(ctx, sample); err != nil {
		return err
	}
	if err := s.sampleRepo.AddAlias(ctx, sampleID, oldName); err != nil {
		return err
	}

	s.publisher.Publish(&feeds.Event{
		Kind:         feeds.KindEditedSample,
		Title:        fmt.Sprintf("Sample %s was renamed to %s", oldName, newName),
		Link:         "/samples/" + newName,
		OriginatorID: actorID,
		Timestamp:    time.Now().UTC(),
		SampleIDs:    []string{sampleID},
		TopicID:      topicIDOf(sample),
	})
	return nil
}

// Split cuts a sample into pieces. The children inherit topic and
// responsible person; the parent stays in the database as the split origin.
func (s *sampleService) Split(ctx context.Context, actorID, sampleID string, pieces int) ([]*samples.Sample, error) {
	if pieces < 2 {
		return nil, fmt.Errorf("%w: a split needs at least 2 pieces", common.ErrInvalidParameter)
	}

	parent, err := s.sampleRepo.GetByID(ctx, sampleID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCanEdit(ctx, actorID, parent); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	children := make([]*samples.Sample, pieces)
	childIDs := make([]string, pieces)
	for i := 0; i < pieces; i++ {
		child := &samples.Sample{
			ID:                           uuid.New().String(),
			Name:                         fmt.Sprintf("%s-%d", parent.Name, i+1),
			Tags:                         parent.Tags,
			Purpose:                      parent.Purpose,
			CurrentLocation:              parent.CurrentLocation,
			CurrentlyResponsiblePersonID: parent.CurrentlyResponsiblePersonID,
			TopicID:                      parent.TopicID,
			SplitOriginID:                &parent.ID,
			DateTimeCreated:              now,
		}
		if err := s.sampleRepo.Create(ctx, child); err != nil {
			return nil, fmt.Errorf("piece %d: %w", i+1, err)
		}
		children[i] = child
		childIDs[i] = child.ID
	}

	process := &processes.Process{
		ID:         uuid.New().String(),
		Kind:       processes.KindSampleSplit,
		OperatorID: actorID,
		Timestamp:  now,
		Comments:   fmt.Sprintf("Split of %s into %d pieces", parent.Name, pieces),
		SampleIDs:  append([]string{parent.ID}, childIDs...),
	}
	if err := s.processRepo.Create(ctx, process); err != nil {
		return nil, err
	}

	s.publisher.Publish(&feeds.Event{
		Kind:         feeds.KindNewProcess,
		Title:        fmt.Sprintf("Sample %s was split into %d pieces", parent.Name, pieces),
		Link:         "/samples/" + parent.Name,
		OriginatorID: actorID,
		Timestamp:    now,
		SampleIDs:    process.SampleIDs,
		TopicID:      topicIDOf(parent),
	})
	return children, nil
}

func (s *sampleService) DeleteByID(ctx context.Context, actorID, sampleID string) error {
	sample, err := s.sampleRepo.GetByID(ctx, sampleID)
	if err != nil {
		return err
	}
	if err := s.ensureCanEdit(ctx, actorID, sample); err != nil {
		return err
	}

	if err := s.sampleRepo.DeleteByID(ctx, sampleID); err != nil {
		return err
	}
	return nil
}

// ensureCanView fails with ErrAccessDenied for confidential-topic samples
// when the actor is no member.
func (s *sampleService) ensureCanView(ctx context.Context, actorID string, sample *samples.Sample) error {
	if sample.TopicID == nil {
		return nil
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}

	topic, err := s.topicRepo.GetByID(ctx, *sample.TopicID)
	if err != nil {
		return err
	}

	if !topic.VisibleTo(actorID, actor.IsAdmin) {
		return fmt.Errorf("sample %s is in a confidential topic: %w", sample.Name, common.ErrAccessDenied)
	}
	return nil
}

// ensureCanEdit allows the responsible person, the topic manager, and admins.
func (s *sampleService) ensureCanEdit(ctx context.Context, actorID string, sample *samples.Sample) error {
	if actorID == sample.CurrentlyResponsiblePersonID {
		return nil
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.IsAdmin {
		return nil
	}

	if sample.TopicID != nil {
		topic, err := s.topicRepo.GetByID(ctx, *sample.TopicID)
		if err != nil {
			return err
		}
		if topic.ManagerID == actorID {
			return nil
		}
	}

	return fmt.Errorf("user %s may not edit sample %s: %w", actor.LoginName, sample.Name, common.ErrAccessDenied)
}

func topicIDOf(sample *samples.Sample) string {
	if sample.TopicID == nil {
		return ""
	}
	return *sample.TopicID
}

// mySamplesService implements the MySamplesService interface for the
// per-user working set.
type mySamplesService struct {
	sampleRepo  samples.SampleRepository
	detailsRepo users.UserDetailsRepository
	userService users.UserService
	logger      logger.Logger
}

// NewMySamplesService creates a new mySamplesService instance
func NewMySamplesService(
	sampleRepo samples.SampleRepository,
	detailsRepo users.UserDetailsRepository,
	userService users.UserService,
	logger logger.Logger,
) (samples.MySamplesService, error) {
	return &mySamplesService{
		sampleRepo:  sampleRepo,
		detailsRepo: detailsRepo,
		userService: userService,
		logger:      logger,
	}, nil
}

func (s *mySamplesService) Add(ctx context.Context, userID string, sampleIDs []string) error {
	if _, err := s.userService.Details(ctx, userID); err != nil {
		return err
	}

	found, err := s.sampleRepo.GetByIDs(ctx, sampleIDs)
	if err != nil {
		return err
	}
	if len(found) != len(sampleIDs) {
		return fmt.Errorf("%d of %d samples unknown: %w", len(sampleIDs)-len(found), len(sampleIDs), common.ErrInvalidParameter)
	}

	if err := s.detailsRepo.AddMySamples(ctx, userID, sampleIDs); err != nil {
		return err
	}
	return nil
}

func (s *mySamplesService) Remove(ctx context.Context, userID string, sampleIDs []string) error {
	if err := s.detailsRepo.RemoveMySamples(ctx, userID, sampleIDs); err != nil {
		return err
	}
	return nil
}

func (s *mySamplesService) List(ctx context.Context, userID string) ([]*samples.Sample, error) {
	details, err := s.userService.Details(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(details.MySampleIDs) == 0 {
		return []*samples.Sample{}, nil
	}

	sampleList, err := s.sampleRepo.GetByIDs(ctx, details.MySampleIDs)
	if err != nil {
		return nil, err
	}
	return sampleList, nil
}
