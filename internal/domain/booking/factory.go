package booking

import (
	"sublet-booking/internal/domain/property"
	"sublet-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
	Policy          StayPolicy
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator, policy StayPolicy) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
		Policy:          policy,
	}
}

// Quote validates the stay against the property and prices it without
// looking at the calendar.
func (f *Factory) Quote(prop *property.Property, req StayRequest) (PriceBreakdown, error) {
	if err := f.Policy.Validate(prop, req, clock.Today(f.Clock)); err != nil {
		return PriceBreakdown{}, err
	}
	return f.PriceCalculator.Calculate(PriceInput{
		MonthlyPriceCents:    prop.MonthlyPriceCents,
		CleaningFeeCents:     prop.CleaningFeeCents,
		SecurityDepositCents: prop.SecurityDepositCents,
		Nights:               req.Dates.Nights(),
	}), nil
}

// CreateBooking returns a pending booking when req passes every rule and
// does not conflict with any active entry of existing.
func (f *Factory) CreateBooking(prop *property.Property, req StayRequest, existing []Occupied) (*Booking, error) {
	price, err := f.Quote(prop, req)
	if err != nil {
		return nil, err
	}
	if !IsAvailable(req.Dates, existing) {
		return nil, ErrDatesUnavailable
	}

	now := f.Clock.Now()
	return &Booking{
		id:            uuid.New(),
		propertyID:    prop.ID,
		guestID:       req.GuestID,
		hostID:        prop.HostID,
		dates:         req.Dates,
		guestCount:    req.GuestCount,
		price:         price,
		status:        StatusPending,
		paymentStatus: PaymentPending,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}
