package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/juliabase/juliabase/internal/domain/common"
	"github.com/juliabase/juliabase/internal/domain/feeds"
	"github.com/juliabase/juliabase/internal/domain/topics"
	"github.com/juliabase/juliabase/internal/domain/users"
	"github.com/juliabase/juliabase/internal/pkg/logger"
)

// topicService implements the TopicService interface for topic management
type topicService struct {
	topicRepo topics.TopicRepository
	userRepo  users.UserRepository
	publisher feeds.Publisher
	logger    logger.Logger
}

// NewTopicService creates a new topicService instance
func NewTopicService(
	topicRepo topics.TopicRepository,
	userRepo users.UserRepository,
	publisher feeds.Publisher,
	logger logger.Logger,
) (topics.TopicService, error) {
	return &topicService{
		topicRepo: topicRepo,
		userRepo:  userRepo,
		publisher: publisher,
		logger:    logger,
	}, nil
}

func (s *topicService) Create(ctx context.Context, actorID, name string, confidential bool) (*topics.Topic, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	topic := &topics.Topic{
		ID:           uuid.New().String(),
		Name:         name,
		Confidential: confidential,
		ManagerID:    actor.ID,
	}

	if err := s.topicRepo.Create(ctx, topic); err != nil {
		return nil, err
	}

	return topic, nil
}

func (s *topicService) GetByName(ctx context.Context, actorID, name string) (*topics.Topic, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	topic, err := s.topicRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if !topic.VisibleTo(actorID, actor.IsAdmin) {
		return nil, fmt.Errorf("topic %s is confidential: %w", name, common.ErrAccessDenied)
	}
	return topic, nil
}

func (s *topicService) List(ctx context.Context, actorID string) ([]*topics.Topic, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	allTopics, err := s.topicRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]*topics.Topic, 0, len(allTopics))
	for _, topic := range allTopics {
		if topic.VisibleTo(actorID, actor.IsAdmin) {
			visible = append(visible, topic)
		}
	}
	return visible, nil
}

func (s *topicService) AddMember(ctx context.Context, actorID, topicID, userID string) error {
	topic, err := s.ensureManages(ctx, actorID, topicID)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.topicRepo.AddMember(ctx, topicID, userID); err != nil {
		return err
	}

	s.publisher.Publish(&feeds.Event{
		Kind:         feeds.KindNewTopicMember,
		Title:        fmt.Sprintf("%s joined topic %s", user.LoginName, topic.Name),
		OriginatorID: actorID,
		Timestamp:    time.Now().UTC(),
		TopicID:      topicID,
		RecipientIDs: []string{userID},
	})
	return nil
}

func (s *topicService) RemoveMember(ctx context.Context, actorID, topicID, userID string) error {
	if _, err := s.ensureManages(ctx, actorID, topicID); err != nil {
		return err
	}

	if err := s.topicRepo.RemoveMember(ctx, topicID, userID); err != nil {
		return err
	}
	return nil
}

func (s *topicService) ensureManages(ctx context.Context, actorID, topicID string) (*topics.Topic, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	topic, err := s.topicRepo.GetByID(ctx, topicID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin && topic.ManagerID != actorID {
		return nil, fmt.Errorf("user %s does not manage topic %s: %w", actor.LoginName, topic.Name, common.ErrAccessDenied)
	}
	return topic, nil
}
