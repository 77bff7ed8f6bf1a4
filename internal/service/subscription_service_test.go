package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cancelshield/api/internal/domain"
	"github.com/cancelshield/api/internal/repository"
)

var subscriptionIDPattern = regexp.MustCompile(`^sub_[0-9a-f]{12}$`)

func seedUser(t *testing.T, store *repository.MemoryStore, id string) {
	t.Helper()
	require.NoError(t, store.Users().Create(context.Background(), &domain.User{
		ID:    id,
		Email: id + "@x.com",
	}))
}

func TestSubscriptionService_CreateAndList(t *testing.T) {
	store := repository.NewMemoryStore()
	seedUser(t, store, "user_a")
	svc := NewSubscriptionService(store.Subscriptions())
	ctx := context.Background()

	sub, err := svc.Create(ctx, "user_a", SubscriptionCreateInput{
		Company:     "Netflix",
		Amount:      15.99,
		RenewalDate: "2025-01-01",
	})
	require.NoError(t, err)
	assert.Regexp(t, subscriptionIDPattern, sub.ID)
	assert.Equal(t, domain.SubscriptionStatusActive, sub.Status)
	assert.True(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Equal(sub.RenewalDate))

	list, err := svc.ListForUser(ctx, "user_a")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sub.ID, list[0].ID)
	assert.Equal(t, "Netflix", list[0].Company)
	assert.InDelta(t, 15.99, list[0].Amount, 0.0001)
}

func TestSubscriptionService_ListIsolation(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewSubscriptionService(store.Subscriptions())
	ctx := context.Background()

	owners := []string{"user_a", "user_b", "user_c"}
	for _, owner := range owners {
		seedUser(t, store, owner)
		for i := 0; i < 10; i++ {
			_, err := svc.Create(ctx, owner, SubscriptionCreateInput{Company: owner, Amount: 1, RenewalDate: "2025-03-01"})
			require.NoError(t, err)
		}
	}

	for _, owner := range owners {
		list, err := svc.ListForUser(ctx, owner)
		require.NoError(t, err)
		require.Len(t, list, 10)
		for _, s := range list {
			assert.Equal(t, owner, s.UserID)
			assert.Equal(t, owner, s.Company)
		}
	}
}

func TestSubscriptionService_CreateValidation(t *testing.T) {
	store := repository.NewMemoryStore()
	seedUser(t, store, "user_a")
	svc := NewSubscriptionService(store.Subscriptions())

	tests := []struct {
		name  string
		input SubscriptionCreateInput
		field string
	}{
		{"blank company", SubscriptionCreateInput{Company: "  ", Amount: 1, RenewalDate: "2025-01-01"}, "company"},
		{"missing date", SubscriptionCreateInput{Company: "Netflix", Amount: 1}, "renewal_date"},
		{"bad date", SubscriptionCreateInput{Company: "Netflix", Amount: 1, RenewalDate: "next week"}, "renewal_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "user_a", tt.input)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}

	list, err := svc.ListForUser(context.Background(), "user_a")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSubscriptionService_AcceptsNegativeAmount(t *testing.T) {
	store := repository.NewMemoryStore()
	seedUser(t, store, "user_a")
	svc := NewSubscriptionService(store.Subscriptions())

	sub, err := svc.Create(context.Background(), "user_a", SubscriptionCreateInput{Company: "Refund", Amount: -5, RenewalDate: "2025-01-01T00:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, -5.0, sub.Amount)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"renewal_date": "bad", "company": "required"}}
	assert.Equal(t, "invalid input: company: required; renewal_date: bad", err.Error())
}

func TestSubscriptionService_CreatedAtMicrosecondPrecision(t *testing.T) {
	store := repository.NewMemoryStore()
	seedUser(t, store, "user_a")
	svc := NewSubscriptionService(store.Subscriptions())
	svc.now = func() time.Time { return time.Date(2024, 6, 3, 11, 0, 0, 250999, time.UTC) }

	sub, err := svc.Create(context.Background(), "user_a", SubscriptionCreateInput{
		Company:     "Netflix",
		Amount:      15.99,
		RenewalDate: "2025-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 250000, sub.CreatedAt.Nanosecond())
	assert.Equal(t, "2024-06-03T11:00:00.000250+00:00", domain.FormatTimestamp(sub.CreatedAt))
}
