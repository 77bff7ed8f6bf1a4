package domain

import "time"

// SubscriptionStatus is the lifecycle state of a tracked subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusActive SubscriptionStatus = "active"
)

// Subscription is a recurring payment a user monitors.
type Subscription struct {
	ID          string
	UserID      string
	Company     string
	Amount      float64
	RenewalDate time.Time
	Status      SubscriptionStatus
	CreatedAt   time.Time
}
