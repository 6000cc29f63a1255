package models

import (
	"time"

	"github.com/juliabase/juliabase/internal/domain/samples"
)

// SampleModel is the GORM database model for samples (infrastructure concern)
type SampleModel struct {
	ID                           string    `gorm:"primaryKey;type:uuid"`
	Name                         string    `gorm:"not null;uniqueIndex;type:varchar(30)"`
	Tags                         string    `gorm:"type:varchar(255)"`
	Purpose                      string    `gorm:"type:varchar(80)"`
	CurrentLocation              string    `gorm:"type:varchar(50)"`
	CurrentlyResponsiblePersonID string    `gorm:"not null;index;type:uuid"`
	TopicID                      *string   `gorm:"index;type:uuid"`
	SplitOriginID                *string   `gorm:"type:uuid"`
	DateTimeCreated              time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (SampleModel) TableName() string {
	return "samples"
}

// ToDomain converts GORM model to domain entity
func (m *SampleModel) ToDomain() *samples.Sample {
	return &samples.Sample{
		ID:                           m.ID,
		Name:                         m.Name,
		Tags:                         m.Tags,
		Purpose:                      m.Purpose,
		CurrentLocation:              m.CurrentLocation,
		CurrentlyResponsiblePersonID: m.CurrentlyResponsiblePersonID,
		TopicID:                      m.TopicID,
		SplitOriginID:                m.SplitOriginID,
		DateTimeCreated:              m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *SampleModel) FromDomain(s *samples.Sample) {
	m.ID = s.ID
	m.Name = s.Name
	m.Tags = s.Tags
	m.Purpose = s.Purpose
	m.CurrentLocation = s.CurrentLocation
	m.CurrentlyResponsiblePersonID = s.CurrentlyResponsiblePersonID
	m.TopicID = s.TopicID
	m.SplitOriginID = s.SplitOriginID
	m.DateTimeCreated = s.DateTimeCreated
}

// SampleAliasModel keeps former sample names resolvable after renames.
type SampleAliasModel struct {
	Name     string `gorm:"primaryKey;type:varchar(30)"`
	SampleID string `gorm:"not null;index;type:uuid"`
}

// TableName specifies the table name for GORM
func (SampleAliasModel) TableName() string {
	return "sample_aliases"
}
