package property

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive        Status = "active"
	StatusInactive      Status = "inactive"
	StatusPendingReview Status = "pending_review"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusPendingReview:
		return true
	default:
		return false
	}
}

// Property is the read-only listing data the booking lifecycle depends on.
type Property struct {
	ID                   uuid.UUID
	HostID               uuid.UUID
	Title                string
	City                 string
	MonthlyPriceCents    int64
	CleaningFeeCents     int64
	SecurityDepositCents int64
	MinimumStayWeeks     int
	MaximumStayMonths    int
	MaxGuests            int
	Status               Status
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (p *Property) IsActive() bool {
	return p.Status == StatusActive
}

func (p *Property) IsHostedBy(userID uuid.UUID) bool {
	return p.HostID == userID
}
