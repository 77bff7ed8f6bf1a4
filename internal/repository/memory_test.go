package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cancelshield/api/internal/domain"
)

func newUser(id, email string) *domain.User {
	return &domain.User{
		ID:               id,
		Email:            email,
		Name:             "Test",
		PasswordHash:     "hash",
		SubscriptionTier: domain.DefaultSubscriptionTier,
		CreatedAt:        time.Now().UTC(),
	}
}

func TestMemoryUsers_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryStore().Users()

	require.NoError(t, users.Create(ctx, newUser("user_1", "alice@x.com")))

	byID, err := users.GetByID(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", byID.Email)

	byEmail, err := users.GetByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, "user_1", byEmail.ID)

	_, err = users.GetByEmail(ctx, "Alice@x.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = users.GetByID(ctx, "user_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUsers_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryStore().Users()

	require.NoError(t, users.Create(ctx, newUser("user_1", "alice@x.com")))
	second := newUser("user_2", "alice@x.com")
	second.Name = "Impostor"
	assert.ErrorIs(t, users.Create(ctx, second), ErrDuplicate)

	first, err := users.GetByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, "user_1", first.ID)
	assert.Equal(t, "Test", first.Name)
}

func TestMemoryUsers_ConcurrentDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryStore().Users()

	const attempts = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := users.Create(ctx, newUser(fmt.Sprintf("user_%d", i), "race@x.com")); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
}

func TestMemorySubscriptions_ListIsScopedToOwner(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Users().Create(ctx, newUser("user_a", "a@x.com")))
	require.NoError(t, store.Users().Create(ctx, newUser("user_b", "b@x.com")))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		for _, owner := range []string{"user_a", "user_b"} {
			require.NoError(t, store.Subscriptions().Create(ctx, &domain.Subscription{
				ID:        fmt.Sprintf("sub_%s_%d", owner, i),
				UserID:    owner,
				Company:   "Netflix",
				Amount:    15.99,
				Status:    domain.SubscriptionStatusActive,
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			}))
		}
	}

	subs, err := store.Subscriptions().ListByUser(ctx, "user_a", MaxSubscriptionsPerPage)
	require.NoError(t, err)
	require.Len(t, subs, 5)
	for i, s := range subs {
		assert.Equal(t, "user_a", s.UserID)
		assert.Equal(t, fmt.Sprintf("sub_user_a_%d", i), s.ID)
	}

	none, err := store.Subscriptions().ListByUser(ctx, "user_c", MaxSubscriptionsPerPage)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemorySubscriptions_ListIsBounded(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Users().Create(ctx, newUser("user_a", "a@x.com")))

	for i := 0; i < MaxSubscriptionsPerPage+5; i++ {
		require.NoError(t, store.Subscriptions().Create(ctx, &domain.Subscription{
			ID:     fmt.Sprintf("sub_%d", i),
			UserID: "user_a",
		}))
	}

	subs, err := store.Subscriptions().ListByUser(ctx, "user_a", 0)
	require.NoError(t, err)
	assert.Len(t, subs, MaxSubscriptionsPerPage)

	few, err := store.Subscriptions().ListByUser(ctx, "user_a", 3)
	require.NoError(t, err)
	assert.Len(t, few, 3)
}

func TestMemorySubscriptions_RequiresExistingUser(t *testing.T) {
	err := NewMemoryStore().Subscriptions().Create(context.Background(), &domain.Subscription{
		ID:     "sub_1",
		UserID: "user_ghost",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryStore().Users().GetByID(ctx, "user_1")
	assert.ErrorIs(t, err, context.Canceled)
}
