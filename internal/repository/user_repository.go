package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cancelshield/api/internal/domain"
)

// UserRepository defines persistence access for users.
type UserRepository interface {
	// Create inserts user, returning ErrDuplicate when the email is taken.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (user_id, email, name, password_hash, subscription_tier, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.SubscriptionTier,
		domain.FormatTimestamp(user.CreatedAt),
	)
	return translate(err)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT user_id, email, name, password_hash, subscription_tier, created_at
        FROM users WHERE user_id=$1`

	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT user_id, email, name, password_hash, subscription_tier, created_at
        FROM users WHERE email=$1`

	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user      domain.User
		createdAt string
	)
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.SubscriptionTier,
		&createdAt,
	); err != nil {
		return nil, translate(err)
	}

	ts, err := domain.ParseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("user %s created_at: %w", user.ID, err)
	}
	user.CreatedAt = ts
	return &user, nil
}
