package memory

import (
	"context"
	"sync"

	"github.com/lobalabs/lobabot/pkg/domain"
)

// Store implements ports.ConversationStore in memory. Conversations are
// lost on process restart; deployments that need durability use the redis
// adapter instead.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Conversation
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Conversation),
	}
}

// Save persists the conversation in memory.
func (s *Store) Save(ctx context.Context, userID string, conv *domain.Conversation) error {
	// Deep copy to ensure isolation, similar to serialization
	copied := *conv
	copied.Answers = make(map[string]string, len(conv.Answers))
	for k, v := range conv.Answers {
		copied.Answers[k] = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = &copied
	return nil
}

// Load retrieves the conversation from memory.
func (s *Store) Load(ctx context.Context, userID string) (*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.data[userID]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}

	// Create a copy on read so caller can't mutate store state directly by pointer
	ret := *conv
	ret.Answers = make(map[string]string, len(conv.Answers))
	for k, v := range conv.Answers {
		ret.Answers[k] = v
	}

	return &ret, nil
}

// Delete removes the conversation.
func (s *Store) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, userID)
	return nil
}

// List returns user ids with stored conversations.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]string, 0, len(s.data))
	for id := range s.data {
		users = append(users, id)
	}
	return users, nil
}
