package models

import (
	"github.com/juliabase/juliabase/internal/domain/topics"
)

// TopicModel is the GORM database model for topics (infrastructure concern)
type TopicModel struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	Name         string `gorm:"not null;uniqueIndex;type:varchar(80)"`
	Confidential bool   `gorm:"not null;default:false"`
	ManagerID    string `gorm:"not null;index;type:uuid"`
}

// TableName specifies the table name for GORM
func (TopicModel) TableName() string {
	return "topics"
}

// ToDomain converts GORM model to domain entity. Member IDs are loaded
// separately by the repository.
func (m *TopicModel) ToDomain(memberIDs []string) *topics.Topic {
	return &topics.Topic{
		ID:           m.ID,
		Name:         m.Name,
		Confidential: m.Confidential,
		ManagerID:    m.ManagerID,
		MemberIDs:    memberIDs,
	}
}

// FromDomain converts domain entity to GORM model
func (m *TopicModel) FromDomain(t *topics.Topic) {
	m.ID = t.ID
	m.Name = t.Name
	m.Confidential = t.Confidential
	m.ManagerID = t.ManagerID
}

// TopicMembershipModel is the join row between a topic and a member user.
type TopicMembershipModel struct {
	TopicID string `gorm:"primaryKey;type:uuid"`
	UserID  string `gorm:"primaryKey;index;type:uuid"`
}

// TableName specifies the table name for GORM
func (TopicMembershipModel) TableName() string {
	return "topic_memberships"
}
