package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cancelshield/api/internal/api/dto"
	"github.com/cancelshield/api/internal/auth"
	"github.com/cancelshield/api/internal/service"
	apperrors "github.com/cancelshield/api/pkg/util/errorutil"
)

// AlertsHandler triggers reminder emails.
type AlertsHandler struct {
	alerts *service.AlertService
}

// NewAlertsHandler constructs handler.
func NewAlertsHandler(alertService *service.AlertService) *AlertsHandler {
	return &AlertsHandler{alerts: alertService}
}

// SendTest POST /api/alerts/test.
func (h *AlertsHandler) SendTest(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}
	if err := h.alerts.SendTestAlert(c.UserContext(), user); err != nil {
		return apperrors.NewUpstreamFailure("Failed to send test alert", err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
