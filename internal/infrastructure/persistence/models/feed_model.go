package models

import (
	"time"

	"github.com/juliabase/juliabase/internal/domain/feeds"
)

// FeedEntryModel is the GORM database model for feed entries. Delivery to
// users goes through FeedRecipientModel rows.
type FeedEntryModel struct {
	ID           string    `gorm:"primaryKey;type:uuid"`
	Kind         string    `gorm:"not null;type:varchar(30)"`
	Title        string    `gorm:"not null;type:varchar(200)"`
	Summary      string    `gorm:"type:text"`
	Link         string    `gorm:"type:varchar(200)"`
	OriginatorID string    `gorm:"not null;type:uuid"`
	Timestamp    time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (FeedEntryModel) TableName() string {
	return "feed_entries"
}

// ToDomain converts GORM model to domain entity
func (m *FeedEntryModel) ToDomain() *feeds.Entry {
	return &feeds.Entry{
		ID:           m.ID,
		Kind:         m.Kind,
		Title:        m.Title,
		Summary:      m.Summary,
		Link:         m.Link,
		OriginatorID: m.OriginatorID,
		Timestamp:    m.Timestamp,
	}
}

// FromDomain converts domain entity to GORM model
func (m *FeedEntryModel) FromDomain(e *feeds.Entry) {
	m.ID = e.ID
	m.Kind = e.Kind
	m.Title = e.Title
	m.Summary = e.Summary
	m.Link = e.Link
	m.OriginatorID = e.OriginatorID
	m.Timestamp = e.Timestamp
}

// FeedRecipientModel attaches a feed entry to one recipient user.
type FeedRecipientModel struct {
	EntryID string `gorm:"primaryKey;type:uuid"`
	UserID  string `gorm:"primaryKey;index;type:uuid"`
}

// TableName specifies the table name for GORM
func (FeedRecipientModel) TableName() string {
	return "feed_recipients"
}
