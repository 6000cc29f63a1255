package models

import (
	"time"

	"github.com/juliabase/juliabase/internal/domain/status"
)

// StatusMessageModel is the GORM database model for apparatus status messages
type StatusMessageModel struct {
	ID            string    `gorm:"primaryKey;type:uuid"`
	ProcessKind   string    `gorm:"not null;index;type:varchar(50)"`
	OperatorID    string    `gorm:"not null;type:uuid"`
	Begin         time.Time `gorm:"column:begin_time;not null"`
	End           time.Time `gorm:"column:end_time;not null"`
	Message       string    `gorm:"not null;type:text"`
	Withdrawn     bool      `gorm:"not null;default:false"`
	DateTimeAdded time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (StatusMessageModel) TableName() string {
	return "status_messages"
}

// ToDomain converts GORM model to domain entity
func (m *StatusMessageModel) ToDomain() *status.StatusMessage {
	return &status.StatusMessage{
		ID:            m.ID,
		ProcessKind:   m.ProcessKind,
		OperatorID:    m.OperatorID,
		Begin:         m.Begin,
		End:           m.End,
		Message:       m.Message,
		Withdrawn:     m.Withdrawn,
		DateTimeAdded: m.DateTimeAdded,
	}
}

// FromDomain converts domain entity to GORM model
func (m *StatusMessageModel) FromDomain(s *status.StatusMessage) {
	m.ID = s.ID
	m.ProcessKind = s.ProcessKind
	m.OperatorID = s.OperatorID
	m.Begin = s.Begin
	m.End = s.End
	m.Message = s.Message
	m.Withdrawn = s.Withdrawn
	m.DateTimeAdded = s.DateTimeAdded
}
