package feeds

import (
	"context"
)

// FeedRepository stores entries and their per-recipient delivery rows.
type FeedRepository interface {
	// Append stores the entry and attaches it to every recipient.
	Append(ctx context.Context, entry *Entry, recipientIDs []string) error

	// ListForUser returns the user's entries, newest first.
	ListForUser(ctx context.Context, userID string, limit int) ([]*Entry, error)

	// Prune drops the user's oldest delivery rows beyond keep. Entries with
	// no remaining recipients are removed entirely.
	Prune(ctx context.Context, userID string, keep int) error
}

// Publisher is what the mutating services see of the feed machinery. Publish
// must not block request handling; resolution and fan-out happen
// asynchronously.
type Publisher interface {
	Publish(event *Event)
}

// FeedService resolves events to recipients, persists them, and renders
// per-user Atom documents.
type FeedService interface {
	Publisher

	// Run consumes dispatched events and fans them out to recipient feeds
	// until the context is canceled.
	Run(ctx context.Context)

	// AtomForUser renders the Atom 1.0 document of the user's feed. The
	// token must match the user's feed token; it stands in for a session
	// because feed readers cannot send auth headers.
	AtomForUser(ctx context.Context, loginName, token string) (string, error)

	// ListForUser returns the user's stored entries, newest first.
	ListForUser(ctx context.Context, userID string) ([]*Entry, error)
}
