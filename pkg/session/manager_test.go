package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lobalabs/lobabot/pkg/domain"
	"github.com/lobalabs/lobabot/pkg/session"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	data map[string]*domain.Conversation
	mu   sync.Mutex
}

func (s *SlowStore) Save(ctx context.Context, userID string, conv *domain.Conversation) error {
	time.Sleep(10 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string]*domain.Conversation)
	}
	copied := *conv
	copied.Answers = make(map[string]string, len(conv.Answers))
	for k, v := range conv.Answers {
		copied.Answers[k] = v
	}
	s.data[userID] = &copied
	return nil
}

func (s *SlowStore) Load(ctx context.Context, userID string) (*domain.Conversation, error) {
	time.Sleep(10 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if conv, ok := s.data[userID]; ok {
		copied := *conv
		copied.Answers = make(map[string]string, len(conv.Answers))
		for k, v := range conv.Answers {
			copied.Answers[k] = v
		}
		return &copied, nil
	}
	return nil, domain.ErrConversationNotFound
}

func (s *SlowStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, userID)
	return nil
}

func (s *SlowStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

func TestManager_Locking(t *testing.T) {
	store := &SlowStore{}
	manager := session.NewManager(store)
	ctx := context.Background()
	id := "race-user"

	_ = manager.Save(ctx, id, domain.NewConversation(id))

	var wg sync.WaitGroup
	concurrentWrites := 10

	// Read-modify-write without locking would lose updates: each
	// goroutine increments a counter stored in the answers map.
	for i := 0; i < concurrentWrites; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := manager.Transition(ctx, id, func(ctx context.Context, conv *domain.Conversation) error {
				seen := conv.Answers["writes"]
				conv.Answers["writes"] = seen + "x"
				return nil
			})
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	conv, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Len(t, conv.Answers["writes"], concurrentWrites, "every serialized write must be visible")
}

func TestManager_TransitionCreatesConversation(t *testing.T) {
	store := &SlowStore{}
	manager := session.NewManager(store)
	ctx := context.Background()
	id := "new-user"

	var wg sync.WaitGroup
	// Two routines racing on first contact must both see a menu conversation.
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := manager.Transition(ctx, id, func(ctx context.Context, conv *domain.Conversation) error {
				assert.Equal(t, domain.StepMenu, conv.Step)
				assert.NotNil(t, conv.Answers)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	conv, err := manager.Load(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, domain.StepMenu, conv.Step)
}

func TestManager_TransitionPersistsMutation(t *testing.T) {
	store := &SlowStore{}
	manager := session.NewManager(store)
	ctx := context.Background()
	id := "mutating-user"

	err := manager.Transition(ctx, id, func(ctx context.Context, conv *domain.Conversation) error {
		conv.BeginFlow(domain.StepWalkName, domain.ServiceWalks)
		return nil
	})
	require.NoError(t, err)

	conv, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StepWalkName, conv.Step)
	assert.Equal(t, domain.ServiceWalks, conv.Answers[domain.AnswerService])
}
