package user

import (
	"github.com/google/uuid"
)

// Profile is the display data used to enrich bookings. Accounts themselves
// are managed elsewhere.
type Profile struct {
	ID          uuid.UUID
	DisplayName string
	Email       string
	Role        Role
}
