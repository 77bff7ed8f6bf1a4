package domain

import "time"

// DefaultSubscriptionTier is assigned to every newly registered user.
const DefaultSubscriptionTier = "free"

// User is the domain model for registered account holders.
type User struct {
	ID               string
	Email            string
	Name             string
	PasswordHash     string
	SubscriptionTier string
	CreatedAt        time.Time
}
