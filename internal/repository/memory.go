package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/cancelshield/api/internal/domain"
)

// MemoryStore keeps users and subscriptions in process memory.
// It enforces the same uniqueness and ownership rules as the Postgres schema
// and is used by tests and by development runs without POSTGRES_DSN.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[string]domain.User
	emails        map[string]string
	subscriptions map[string][]domain.Subscription
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]domain.User),
		emails:        make(map[string]string),
		subscriptions: make(map[string][]domain.Subscription),
	}
}

// Users exposes the store as a UserRepository.
func (s *MemoryStore) Users() UserRepository {
	return memoryUsers{s}
}

// Subscriptions exposes the store as a SubscriptionRepository.
func (s *MemoryStore) Subscriptions() SubscriptionRepository {
	return memorySubscriptions{s}
}

// Ping always succeeds.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

type memoryUsers struct {
	s *MemoryStore
}

func (m memoryUsers) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, taken := m.s.emails[user.Email]; taken {
		return ErrDuplicate
	}
	if _, taken := m.s.users[user.ID]; taken {
		return ErrDuplicate
	}
	m.s.users[user.ID] = *user
	m.s.emails[user.Email] = user.ID
	return nil
}

func (m memoryUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	user, ok := m.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (m memoryUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	id, ok := m.s.emails[email]
	if !ok {
		return nil, ErrNotFound
	}
	user := m.s.users[id]
	return &user, nil
}

type memorySubscriptions struct {
	s *MemoryStore
}

func (m memorySubscriptions) Create(ctx context.Context, sub *domain.Subscription) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.users[sub.UserID]; !ok {
		return ErrNotFound
	}
	for _, existing := range m.s.subscriptions[sub.UserID] {
		if existing.ID == sub.ID {
			return ErrDuplicate
		}
	}
	m.s.subscriptions[sub.UserID] = append(m.s.subscriptions[sub.UserID], *sub)
	return nil
}

func (m memorySubscriptions) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.s.mu.RLock()
	owned := append([]domain.Subscription(nil), m.s.subscriptions[userID]...)
	m.s.mu.RUnlock()

	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].CreatedAt.Before(owned[j].CreatedAt)
	})
	if n := clampLimit(limit); len(owned) > n {
		owned = owned[:n]
	}
	if owned == nil {
		owned = make([]domain.Subscription, 0)
	}
	return owned, nil
}
