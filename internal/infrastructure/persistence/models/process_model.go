package models

import (
	"time"

	"github.com/juliabase/juliabase/internal/domain/processes"
)

// ProcessModel is the GORM database model for processes. Depositions also
// have a row here; DepositionModel extends it by shared primary key.
type ProcessModel struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	Kind       string    `gorm:"not null;index;type:varchar(50)"`
	OperatorID string    `gorm:"not null;index;type:uuid"`
	Timestamp  time.Time `gorm:"not null;index"`
	Comments   string    `gorm:"type:text"`
}

// TableName specifies the table name for GORM
func (ProcessModel) TableName() string {
	return "processes"
}

// ToDomain converts GORM model to domain entity. Sample links are loaded
// separately by the repository.
func (m *ProcessModel) ToDomain(sampleIDs []string) *processes.Process {
	return &processes.Process{
		ID:         m.ID,
		Kind:       m.Kind,
		OperatorID: m.OperatorID,
		Timestamp:  m.Timestamp,
		Comments:   m.Comments,
		SampleIDs:  sampleIDs,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ProcessModel) FromDomain(p *processes.Process) {
	m.ID = p.ID
	m.Kind = p.Kind
	m.OperatorID = p.OperatorID
	m.Timestamp = p.Timestamp
	m.Comments = p.Comments
}

// ProcessSampleModel is the join row attaching a process to a sample.
type ProcessSampleModel struct {
	ProcessID string `gorm:"primaryKey;type:uuid"`
	SampleID  string `gorm:"primaryKey;index;type:uuid"`
}

// TableName specifies the table name for GORM
func (ProcessSampleModel) TableName() string {
	return "process_samples"
}
