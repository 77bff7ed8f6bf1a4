package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/cancelshield/api/internal/domain"
	"github.com/cancelshield/api/internal/repository"
)

// ValidationError lists the offending fields of a rejected input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// SubscriptionCreateInput describes a new subscription.
type SubscriptionCreateInput struct {
	Company     string
	Amount      float64
	RenewalDate string
}

// SubscriptionService manages a user's tracked subscriptions.
type SubscriptionService struct {
	subs repository.SubscriptionRepository
	now  func() time.Time
}

// NewSubscriptionService constructs the service.
func NewSubscriptionService(subs repository.SubscriptionRepository) *SubscriptionService {
	return &SubscriptionService{subs: subs, now: time.Now}
}

// ListForUser returns the first page of subscriptions owned by userID.
func (s *SubscriptionService) ListForUser(ctx context.Context, userID string) ([]domain.Subscription, error) {
	return s.subs.ListByUser(ctx, userID, repository.MaxSubscriptionsPerPage)
}

// Create validates input and stores an active subscription for userID.
// Negative amounts are accepted.
func (s *SubscriptionService) Create(ctx context.Context, userID string, in SubscriptionCreateInput) (*domain.Subscription, error) {
	fields := map[string]string{}

	company := strings.TrimSpace(in.Company)
	if company == "" {
		fields["company"] = "required"
	}
	if math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		fields["amount"] = "must be a finite number"
	}
	renewal, err := domain.ParseTimestamp(in.RenewalDate)
	if err != nil {
		fields["renewal_date"] = "must be an ISO-8601 date"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	sub := &domain.Subscription{
		ID:          newID(subscriptionIDPrefix),
		UserID:      userID,
		Company:     company,
		Amount:      in.Amount,
		RenewalDate: renewal,
		Status:      domain.SubscriptionStatusActive,
		CreatedAt:   s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}
