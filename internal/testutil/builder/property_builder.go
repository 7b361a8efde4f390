//go:build unit || e2e

package builder

import (
	"time"

	"sublet-booking/internal/domain/property"

	"github.com/google/uuid"
)

type PropertyBuilder struct {
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
	Status               property.Status
}

// NewPropertyBuilder defaults to the listing used in the booking walkthrough:
// 1200.00/month, 80.00 cleaning, 2 to 12 weeks/months, 2 guests.
func NewPropertyBuilder() *PropertyBuilder {
	return &PropertyBuilder{
		ID:                uuid.New(),
		HostID:            uuid.New(),
		Title:             "Sunny room near campus",
		City:              "Boston",
		MonthlyPriceCents: 120000,
		CleaningFeeCents:  8000,
		MinimumStayWeeks:  2,
		MaximumStayMonths: 12,
		MaxGuests:         2,
		Status:            property.StatusActive,
	}
}

func (p *PropertyBuilder) With(mutate func(*PropertyBuilder)) *PropertyBuilder {
	mutate(p)
	return p
}

func (p *PropertyBuilder) WithHost(id uuid.UUID) *PropertyBuilder {
	p.HostID = id
	return p
}

func (p *PropertyBuilder) WithStatus(s property.Status) *PropertyBuilder {
	p.Status = s
	return p
}

func (p *PropertyBuilder) WithPricing(monthly, cleaning, deposit int64) *PropertyBuilder {
	p.MonthlyPriceCents = monthly
	p.CleaningFeeCents = cleaning
	p.SecurityDepositCents = deposit
	return p
}

func (p *PropertyBuilder) Build() *property.Property {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return &property.Property{
		ID:                   p.ID,
		HostID:               p.HostID,
		Title:                p.Title,
		City:                 p.City,
		MonthlyPriceCents:    p.MonthlyPriceCents,
		CleaningFeeCents:     p.CleaningFeeCents,
		SecurityDepositCents: p.SecurityDepositCents,
		MinimumStayWeeks:     p.MinimumStayWeeks,
		MaximumStayMonths:    p.MaximumStayMonths,
		MaxGuests:            p.MaxGuests,
		Status:               p.Status,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}
