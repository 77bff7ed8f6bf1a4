package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cancelshield/api/internal/domain"
	"github.com/cancelshield/api/internal/repository"
)

// ErrUnauthenticated is the common cause of every gate rejection.
var ErrUnauthenticated = errors.New("not authenticated")

var (
	ErrMissingCredentials = fmt.Errorf("%w: missing bearer credentials", ErrUnauthenticated)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	ErrUnknownUser        = fmt.Errorf("%w: user not found", ErrUnauthenticated)
)

// UserFinder resolves a user id to its stored record.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Gate turns an Authorization header into an authenticated user.
// Every call re-verifies the token and re-reads the user.
type Gate struct {
	tokens *TokenManager
	users  UserFinder
}

// NewGate constructs a gate.
func NewGate(tokens *TokenManager, users UserFinder) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// Authenticate resolves rawHeader to a user. Rejections wrap ErrUnauthenticated;
// store failures other than a missing user are returned unchanged.
func (g *Gate) Authenticate(ctx context.Context, rawHeader string) (*domain.User, error) {
	token, ok := bearerToken(rawHeader)
	if !ok {
		return nil, ErrMissingCredentials
	}

	userID, err := g.tokens.Verify(token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := g.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	return user, nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
