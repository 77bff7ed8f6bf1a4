package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cancelshield/api/internal/domain"
	apperrors "github.com/cancelshield/api/pkg/util/errorutil"
)

const userKey = "auth_user"

// AuthMiddleware validates bearer tokens and loads the calling user.
type AuthMiddleware struct {
	gate *Gate
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(gate *Gate) *AuthMiddleware {
	return &AuthMiddleware{gate: gate}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	user, err := m.gate.Authenticate(c.UserContext(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingCredentials):
			return apperrors.NewUnauthorized("Not authenticated")
		case errors.Is(err, ErrInvalidCredentials):
			return apperrors.NewUnauthorized("Invalid token")
		case errors.Is(err, ErrUnknownUser):
			return apperrors.NewUnauthorized("User not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(userKey, user)
	return c.Next()
}

// UserFromContext retrieves the authenticated user.
func UserFromContext(c *fiber.Ctx) (*domain.User, bool) {
	user, ok := c.Locals(userKey).(*domain.User)
	return user, ok && user != nil
}
