package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/lobalabs/lobabot/internal/logging"
	"github.com/lobalabs/lobabot/pkg/domain"
	"github.com/lobalabs/lobabot/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu     sync.Mutex
	refs   int
	unlock ports.UnlockFunc // Function to release distributed lock (if any)
}

// Manager serializes conversation access per user id, so a state
// read-modify-write for one user never interleaves with another
// transition for that same user. Different user ids proceed
// concurrently. It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store ports.ConversationStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker ports.DistributedLocker // Optional distributed locker
	logger *slog.Logger            // Logger for internal events (like deferred errors)
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking for multi-replica deployments.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new Session Manager with the given conversation store.
func NewManager(store ports.ConversationStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		locks:  make(map[string]*lockEntry),
		logger: logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(userID) after unlocking.
func (m *Manager) acquire(userID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[userID]
	if !exists {
		entry = &lockEntry{}
		m.locks[userID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[userID]
	if !exists {
		return // Should not happen if paired correctly
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, userID)
	}
}

// Load retrieves an existing conversation from the store.
func (m *Manager) Load(ctx context.Context, userID string) (*domain.Conversation, error) {
	var conv *domain.Conversation
	err := m.WithLock(ctx, userID, func(ctx context.Context) error {
		var err error
		conv, err = m.store.Load(ctx, userID)
		return err
	})
	return conv, err
}

// Transition runs fn against the user's conversation while holding the
// user's lock, creating the conversation at the menu if the user has never
// been seen, and saves the (possibly mutated) conversation afterwards.
// This is the bridge's load -> engine.Handle -> save critical section.
func (m *Manager) Transition(ctx context.Context, userID string, fn func(ctx context.Context, conv *domain.Conversation) error) error {
	return m.WithLock(ctx, userID, func(ctx context.Context) error {
		conv, err := m.store.Load(ctx, userID)
		if err != nil {
			if err != domain.ErrConversationNotFound {
				return fmt.Errorf("failed to load conversation: %w", err)
			}
			conv = domain.NewConversation(userID)
		}

		if err := fn(ctx, conv); err != nil {
			return err
		}

		if err := m.store.Save(ctx, userID, conv); err != nil {
			return fmt.Errorf("failed to save conversation: %w", err)
		}
		return nil
	})
}

// Save persists the conversation state.
func (m *Manager) Save(ctx context.Context, userID string, conv *domain.Conversation) error {
	return m.WithLock(ctx, userID, func(ctx context.Context) error {
		return m.store.Save(ctx, userID, conv)
	})
}

// Delete removes the conversation from the store.
func (m *Manager) Delete(ctx context.Context, userID string) error {
	return m.WithLock(ctx, userID, func(ctx context.Context) error {
		return m.store.Delete(ctx, userID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying conversation store.
func (m *Manager) Store() ports.ConversationStore {
	return m.store
}

// WithLock executes a function while holding the lock for the user id.
func (m *Manager) WithLock(ctx context.Context, userID string, fn func(context.Context) error) error {
	entry := m.acquire(userID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(userID)
	}()

	// Distributed Locking
	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, userID, 30*time.Second)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"user_id", userID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
