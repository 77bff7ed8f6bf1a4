package dto

import "time"

// CreateSubscriptionRequest payload. Pointers distinguish absent fields from zero values.
type CreateSubscriptionRequest struct {
	Company     *string  `json:"company"`
	Amount      *float64 `json:"amount"`
	RenewalDate *string  `json:"renewal_date"`
}

// SubscriptionResponse is a stored subscription as returned to its owner.
type SubscriptionResponse struct {
	SubscriptionID string    `json:"subscription_id"`
	UserID         string    `json:"user_id"`
	Company        string    `json:"company"`
	Amount         float64   `json:"amount"`
	RenewalDate    time.Time `json:"renewal_date"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// SuccessResponse acknowledges a side-effecting request.
type SuccessResponse struct {
	Success bool `json:"success"`
}
