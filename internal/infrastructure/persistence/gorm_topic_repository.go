package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/juliabase/juliabase/internal/domain/common"
	"github.com/juliabase/juliabase/internal/domain/topics"
	"github.com/juliabase/juliabase/internal/infrastructure/persistence/models"
	"github.com/juliabase/juliabase/internal/pkg/logger"
	"gorm.io/gorm"
)

type gormTopicRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormTopicRepository creates a new GORM-based TopicRepository implementation
func NewGormTopicRepository(db *gorm.DB, logger logger.Logger) (topics.TopicRepository, error) {
	return &gormTopicRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormTopicRepository) Create(ctx context.Context, topic *topics.Topic) error {
	if err := topic.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.TopicModel{}
	model.FromDomain(topic)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		for _, userID := range topic.MemberIDs {
			row := &models.TopicMembershipModel{TopicID: topic.ID, UserID: userID}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("topic name %s: %w", topic.Name, common.ErrConflict)
		}
		return fmt.Errorf("failed to create topic: %w", err)
	}

	r.logger.Info("Created topic ", topic.Name)
	return nil
}

func (r *gormTopicRepository) GetByID(ctx context.Context, topicID string) (*topics.Topic, error) {
	var model models.TopicModel
	if err := r.db.WithContext(ctx).Where("id = ?", topicID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("topic with ID %s: %w", topicID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch topic: %w", err)
	}

	memberIDs, err := r.memberIDs(ctx, model.ID)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(memberIDs), nil
}

func (r *gormTopicRepository) GetByName(ctx context.Context, name string) (*topics.Topic, error) {
	var model models.TopicModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("topic %s: %w", name, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch topic: %w", err)
	}

	memberIDs, err := r.memberIDs(ctx, model.ID)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(memberIDs), nil
}

func (r *gormTopicRepository) List(ctx context.Context) ([]*topics.Topic, error) {
	var modelList []*models.TopicModel
	if err := r.db.WithContext(ctx).Order("name asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch topics: %w", err)
	}

	domainList := make([]*topics.Topic, len(modelList))
	for i, model := range modelList {
		memberIDs, err := r.memberIDs(ctx, model.ID)
		if err != nil {
			return nil, err
		}
		domainList[i] = model.ToDomain(memberIDs)
	}
	return domainList, nil
}

func (r *gormTopicRepository) AddMember(ctx context.Context, topicID, userID string) error {
	row := &models.TopicMembershipModel{TopicID: topicID, UserID: userID}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("failed to add topic member: %w", err)
	}

	r.logger.Info("Added user ", userID, " to topic ", topicID)
	return nil
}

func (r *gormTopicRepository) RemoveMember(ctx context.Context, topicID, userID string) error {
	if err := r.db.WithContext(ctx).
		Where("topic_id = ? AND user_id = ?", topicID, userID).
		Delete(&models.TopicMembershipModel{}).Error; err != nil {
		return fmt.Errorf("failed to remove topic member: %w", err)
	}

	r.logger.Info("Removed user ", userID, " from topic ", topicID)
	return nil
}

func (r *gormTopicRepository) MemberIDs(ctx context.Context, topicID string) ([]string, error) {
	topic, err := r.GetByID(ctx, topicID)
	if err != nil {
		return nil, err
	}

	// The manager counts as a member for visibility and feed fan-out.
	memberIDs := topic.MemberIDs
	if !contains(memberIDs, topic.ManagerID) {
		memberIDs = append(memberIDs, topic.ManagerID)
	}
	return memberIDs, nil
}

func (r *gormTopicRepository) memberIDs(ctx context.Context, topicID string) ([]string, error) {
	var userIDs []string
	if err := r.db.WithContext(ctx).
		Model(&models.TopicMembershipModel{}).
		Where("topic_id = ?", topicID).
		Pluck("user_id", &userIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch topic members: %w", err)
	}
	return userIDs, nil
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
