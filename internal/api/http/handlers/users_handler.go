package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/cancelshield/api/internal/api/dto"
	"github.com/cancelshield/api/internal/service"
	apperrors "github.com/cancelshield/api/pkg/util/errorutil"
)

// UsersHandler exposes registration and login.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := decodeJSON(c, &req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	_, token, _, err := h.auth.RegisterUser(c.UserContext(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		return apperrors.NewBadRequest("Email and password required")
	case errors.Is(err, service.ErrPasswordTooLong):
		return apperrors.NewBadRequest("Password must be at most 72 bytes")
	case errors.Is(err, service.ErrEmailTaken):
		return apperrors.NewConflict("Email already exists", http.StatusBadRequest)
	case err != nil:
		return apperrors.MapError(err)
	}

	return c.JSON(dto.AuthResponse{AccessToken: token})
}

// Login handles POST /api/auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	_, token, _, err := h.auth.LoginUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return apperrors.NewUnauthorized("Invalid credentials")
		}
		return apperrors.MapError(err)
	}

	return c.JSON(dto.AuthResponse{AccessToken: token})
}

// decodeJSON reads the body as JSON whatever Content-Type the client sent.
func decodeJSON(c *fiber.Ctx, out any) error {
	return c.App().Config().JSONDecoder(c.Body(), out)
}
