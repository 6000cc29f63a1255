package samples

import (
	"context"
)

// SampleRepository defines the interface for sample-related persistence operations
type SampleRepository interface {
	Create(ctx context.Context, sample *Sample) error
	GetByID(ctx context.Context, sampleID string) (*Sample, error)
	// GetByName resolves current names first, then aliases left behind by
	// renames.
	GetByName(ctx context.Context, name string) (*Sample, error)
	GetByIDs(ctx context.Context, sampleIDs []string) ([]*Sample, error)
	List(ctx context.Context, query *SampleQuery) ([]*Sample, error)
	UpdateByID(ctx context.Context, sample *Sample) error
	DeleteByID(ctx context.Context, sampleID string) error
	AddAlias(ctx context.Context, sampleID, name string) error
}

// SampleService defines sample bookkeeping operations. Every operation takes
// the acting user for permission checks: confidential-topic samples are
// visible to topic members only, and edits require being the currently
// responsible person, the topic manager, or an admin.
type SampleService interface {
	Create(ctx context.Context, actorID string, sample *Sample) (*Sample, error)
	GetByName(ctx context.Context, actorID, name string) (*Sample, error)
	List(ctx context.Context, actorID string, query *SampleQuery) ([]*Sample, error)
	Update(ctx context.Context, actorID string, sample *Sample) error

	// Rename changes the sample's name and records the old name as an alias.
	Rename(ctx context.Context, actorID, sampleID, newName string) error

	// Split cuts a sample into pieces named "<parent>-1" .. "<parent>-n".
	// The children inherit topic and responsible person and record the
	// parent as their split origin.
	Split(ctx context.Context, actorID, sampleID string, pieces int) ([]*Sample, error)

	DeleteByID(ctx context.Context, actorID, sampleID string) error
}

// MySamplesService manages the per-user working set of samples.
type MySamplesService interface {
	Add(ctx context.Context, userID string, sampleIDs []string) error
	Remove(ctx context.Context, userID string, sampleIDs []string) error
	List(ctx context.Context, userID string) ([]*Sample, error)
}
