package processes

import (
	"context"
)

// ProcessRepository defines the interface for process-related persistence
// operations. Every deposition also has a row here; the depositions table
// extends it.
type ProcessRepository interface {
	Create(ctx context.Context, process *Process) error
	GetByID(ctx context.Context, processID string) (*Process, error)
	List(ctx context.Context, query *ProcessQuery) ([]*Process, error)
	UpdateByID(ctx context.Context, process *Process) error
	DeleteByID(ctx context.Context, processID string) error
}

// DepositionRepository defines the interface for deposition persistence.
// Create and UpdateByID maintain the process row and the layer rows in the
// same transaction.
type DepositionRepository interface {
	Create(ctx context.Context, deposition *Deposition) error
	GetByID(ctx context.Context, depositionID string) (*Deposition, error)
	GetByNumber(ctx context.Context, number string) (*Deposition, error)
	List(ctx context.Context, query *DepositionQuery) ([]*Deposition, error)
	UpdateByID(ctx context.Context, deposition *Deposition) error
	// NextSerial returns the next free serial for the given year's
	// deposition numbers.
	NextSerial(ctx context.Context, year int) (int, error)
}

// DepositionService defines deposition bookkeeping. Creating requires "add"
// permission for the deposition kind; editing requires "edit" permission or
// being the operator.
type DepositionService interface {
	// Create stores a new deposition. An empty Number is assigned from the
	// year's serial counter; an explicit one must be free.
	Create(ctx context.Context, actorID string, deposition *Deposition) (*Deposition, error)

	GetByNumber(ctx context.Context, actorID, number string) (*Deposition, error)
	List(ctx context.Context, actorID string, query *DepositionQuery) ([]*Deposition, error)

	// Update applies comment/sample changes and the layer-edit batch, then
	// persists the renumbered layer list.
	Update(ctx context.Context, actorID, number string, comments *string, sampleIDs []string, edits []LayerEdit, finished *bool) (*Deposition, error)
}

// ProcessService attaches generic (non-deposition) processes to samples and
// reads per-sample histories.
type ProcessService interface {
	Create(ctx context.Context, actorID string, process *Process) (*Process, error)
	ListForSample(ctx context.Context, actorID, sampleID string) ([]*Process, error)
}
