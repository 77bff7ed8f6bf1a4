package service

import (
	"strings"

	"github.com/google/uuid"
)

const (
	userIDPrefix         = "user_"
	subscriptionIDPrefix = "sub_"
)

// newID returns prefix followed by 12 random hex characters.
func newID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
