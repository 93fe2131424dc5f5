package ports

import (
	"context"

	"github.com/lobalabs/lobabot/pkg/domain"
)

// ConversationStore defines the interface for persisting per-user
// conversation state. Swapping the in-memory default for a durable
// backend (Redis) is what lets in-flight conversations survive restarts.
type ConversationStore interface {
	// Save persists the conversation for a given user ID.
	Save(ctx context.Context, userID string, conv *domain.Conversation) error

	// Load retrieves the conversation for a given user ID.
	// Returns domain.ErrConversationNotFound if the user has never been seen.
	Load(ctx context.Context, userID string) (*domain.Conversation, error)

	// Delete removes the conversation for a given user ID.
	Delete(ctx context.Context, userID string) error

	// List returns the user IDs with stored conversations.
	List(ctx context.Context) ([]string, error)
}
