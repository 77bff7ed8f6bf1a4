package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cancelshield/api/internal/domain"
)

// MaxSubscriptionsPerPage bounds a single listing.
const MaxSubscriptionsPerPage = 100

// SubscriptionRepository encapsulates subscription persistence.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	// ListByUser returns at most limit subscriptions owned by userID, oldest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Subscription, error)
}

type subscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository instantiates repository.
func NewSubscriptionRepository(pool *pgxpool.Pool) SubscriptionRepository {
	return &subscriptionRepository{pool: pool}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	const query = `
        INSERT INTO subscriptions (subscription_id, user_id, company, amount, renewal_date, status, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.pool.Exec(ctx, query,
		sub.ID,
		sub.UserID,
		sub.Company,
		sub.Amount,
		formatRenewalDate(sub),
		sub.Status,
		domain.FormatTimestamp(sub.CreatedAt),
	)
	return translate(err)
}

func (r *subscriptionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Subscription, error) {
	const query = `
        SELECT subscription_id, user_id, company, amount, renewal_date, status, created_at
        FROM subscriptions WHERE user_id=$1
        ORDER BY created_at ASC
        LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, clampLimit(limit))
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	subs := make([]domain.Subscription, 0)
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, rows.Err()
}

func scanSubscription(row pgx.Row) (*domain.Subscription, error) {
	var (
		sub         domain.Subscription
		renewalDate string
		createdAt   string
	)
	if err := row.Scan(
		&sub.ID,
		&sub.UserID,
		&sub.Company,
		&sub.Amount,
		&renewalDate,
		&sub.Status,
		&createdAt,
	); err != nil {
		return nil, translate(err)
	}

	var err error
	if sub.RenewalDate, err = domain.ParseTimestamp(renewalDate); err != nil {
		return nil, fmt.Errorf("subscription %s renewal_date: %w", sub.ID, err)
	}
	if sub.CreatedAt, err = domain.ParseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("subscription %s created_at: %w", sub.ID, err)
	}
	return &sub, nil
}

// formatRenewalDate keeps date-only renewals in their calendar form.
func formatRenewalDate(sub *domain.Subscription) string {
	d := sub.RenewalDate.UTC()
	if d.Hour() == 0 && d.Minute() == 0 && d.Second() == 0 && d.Nanosecond() == 0 {
		return d.Format(domain.DateLayout)
	}
	return domain.FormatTimestamp(d)
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxSubscriptionsPerPage {
		return MaxSubscriptionsPerPage
	}
	return limit
}
