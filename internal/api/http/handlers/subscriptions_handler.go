package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cancelshield/api/internal/api/dto"
	"github.com/cancelshield/api/internal/auth"
	"github.com/cancelshield/api/internal/domain"
	"github.com/cancelshield/api/internal/service"
	apperrors "github.com/cancelshield/api/pkg/util/errorutil"
)

// SubscriptionsHandler manages the caller's subscriptions.
type SubscriptionsHandler struct {
	service *service.SubscriptionService
}

// NewSubscriptionsHandler constructs handler.
func NewSubscriptionsHandler(subscriptionService *service.SubscriptionService) *SubscriptionsHandler {
	return &SubscriptionsHandler{service: subscriptionService}
}

// List GET /api/subscriptions.
func (h *SubscriptionsHandler) List(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}
	subs, err := h.service.ListForUser(c.UserContext(), user.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]dto.SubscriptionResponse, 0, len(subs))
	for i := range subs {
		items = append(items, subscriptionResponse(&subs[i]))
	}
	return c.JSON(items)
}

// Create POST /api/subscriptions.
func (h *SubscriptionsHandler) Create(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}
	var req dto.CreateSubscriptionRequest
	if err := decodeJSON(c, &req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	missing := map[string]any{}
	if req.Company == nil {
		missing["company"] = "required"
	}
	if req.Amount == nil {
		missing["amount"] = "required"
	}
	if req.RenewalDate == nil {
		missing["renewal_date"] = "required"
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("company, amount, renewal_date required", missing)
	}

	_, err := h.service.Create(c.UserContext(), user.ID, service.SubscriptionCreateInput{
		Company:     *req.Company,
		Amount:      *req.Amount,
		RenewalDate: *req.RenewalDate,
	})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			details := make(map[string]any, len(verr.Fields))
			for field, reason := range verr.Fields {
				details[field] = reason
			}
			return apperrors.NewValidationError("invalid subscription", details)
		}
		return apperrors.MapError(err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

func subscriptionResponse(s *domain.Subscription) dto.SubscriptionResponse {
	return dto.SubscriptionResponse{
		SubscriptionID: s.ID,
		UserID:         s.UserID,
		Company:        s.Company,
		Amount:         s.Amount,
		RenewalDate:    s.RenewalDate,
		Status:         string(s.Status),
		CreatedAt:      s.CreatedAt,
	}
}
