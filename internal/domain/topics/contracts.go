package topics

import (
	"context"
)

// TopicRepository defines the interface for topic-related persistence operations
type TopicRepository interface {
	Create(ctx context.Context, topic *Topic) error
	GetByID(ctx context.Context, topicID string) (*Topic, error)
	GetByName(ctx context.Context, name string) (*Topic, error)
	List(ctx context.Context) ([]*Topic, error)
	AddMember(ctx context.Context, topicID, userID string) error
	RemoveMember(ctx context.Context, topicID, userID string) error
	// MemberIDs returns the member set including the manager.
	MemberIDs(ctx context.Context, topicID string) ([]string, error)
}

// TopicService defines topic management operations.
type TopicService interface {
	// Create creates a topic managed by the acting user.
	Create(ctx context.Context, actorID, name string, confidential bool) (*Topic, error)

	// GetByName returns a topic if it is visible to the acting user.
	GetByName(ctx context.Context, actorID, name string) (*Topic, error)

	// List returns all topics visible to the acting user.
	List(ctx context.Context, actorID string) ([]*Topic, error)

	// AddMember and RemoveMember require the actor to be the topic manager
	// or an admin. Membership changes produce feed entries for the affected
	// user.
	AddMember(ctx context.Context, actorID, topicID, userID string) error
	RemoveMember(ctx context.Context, actorID, topicID, userID string) error
}
