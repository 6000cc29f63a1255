package status

import (
	"context"
	"time"
)

// StatusRepository defines the interface for status message persistence.
type StatusRepository interface {
	Create(ctx context.Context, message *StatusMessage) error
	GetByID(ctx context.Context, messageID string) (*StatusMessage, error)
	// ListCurrent returns non-withdrawn messages whose [Begin, End] window
	// covers now, optionally restricted to one process kind.
	ListCurrent(ctx context.Context, processKind string, now time.Time) ([]*StatusMessage, error)
	UpdateByID(ctx context.Context, message *StatusMessage) error
}

// StatusService defines status message operations. Withdrawing requires
// being the message's operator or an admin.
type StatusService interface {
	Add(ctx context.Context, actorID string, message *StatusMessage) (*StatusMessage, error)
	Withdraw(ctx context.Context, actorID, messageID string) error
	ListCurrent(ctx context.Context, processKind string) ([]*StatusMessage, error)
}
