package persistence

import (
	"context"
	"fmt"

	"github.com/juliabase/juliabase/internal/domain/feeds"
	"github.com/juliabase/juliabase/internal/infrastructure/persistence/models"
	"github.com/juliabase/juliabase/internal/pkg/logger"
	"gorm.io/gorm"
)

type gormFeedRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormFeedRepository creates a new GORM-based FeedRepository implementation
func NewGormFeedRepository(db *gorm.DB, logger logger.Logger) (feeds.FeedRepository, error) {
	return &gormFeedRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormFeedRepository) Append(ctx context.Context, entry *feeds.Entry, recipientIDs []string) error {
	if len(recipientIDs) == 0 {
		return nil
	}

	model := &models.FeedEntryModel{}
	model.FromDomain(entry)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		for _, userID := range recipientIDs {
			row := &models.FeedRecipientModel{EntryID: entry.ID, UserID: userID}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append feed entry: %w", err)
	}

	r.logger.Info("Appended feed entry ", entry.ID, " for ", len(recipientIDs), " recipients")
	return nil
}

func (r *gormFeedRepository) ListForUser(ctx context.Context, userID string, limit int) ([]*feeds.Entry, error) {
	var modelList []*models.FeedEntryModel
	dbQuery := r.db.WithContext(ctx).
		Model(&models.FeedEntryModel{}).
		Joins("JOIN feed_recipients ON feed_recipients.entry_id = feed_entries.id").
		Where("feed_recipients.user_id = ?", userID).
		Order("feed_entries.timestamp desc")

	if limit > 0 {
		dbQuery = dbQuery.Limit(limit)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch feed entries: %w", err)
	}

	domainList := make([]*feeds.Entry, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormFeedRepository) Prune(ctx context.Context, userID string, keep int) error {
	var staleIDs []string
	if err := r.db.WithContext(ctx).
		Model(&models.FeedEntryModel{}).
		Joins("JOIN feed_recipients ON feed_recipients.entry_id = feed_entries.id").
		Where("feed_recipients.user_id = ?", userID).
		Order("feed_entries.timestamp desc").
		Offset(keep).
		Limit(1000).
		Pluck("feed_entries.id", &staleIDs).Error; err != nil {
		return fmt.Errorf("failed to find stale feed entries: %w", err)
	}
	if len(staleIDs) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ? AND entry_id IN ?", userID, staleIDs).
			Delete(&models.FeedRecipientModel{}).Error; err != nil {
			return err
		}

		// Drop entries nobody receives anymore.
		return tx.
			Where("id IN ? AND NOT EXISTS (SELECT 1 FROM feed_recipients WHERE feed_recipients.entry_id = feed_entries.id)", staleIDs).
			Delete(&models.FeedEntryModel{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to prune feed entries: %w", err)
	}
	return nil
}
