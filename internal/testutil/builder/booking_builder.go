//go:build unit || e2e

package builder

import (
	"time"

	"sublet-booking/internal/domain/booking"
	"sublet-booking/internal/domain/property"
	"sublet-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

// Today is the fixed "current date" booking tests run against.
var Today = time.Date(2025, 12, 1, 9, 30, 0, 0, time.UTC)

type BookingBuilder struct {
	Property   *property.Property
	GuestID    uuid.UUID
	CheckIn    string
	CheckOut   string
	GuestCount int
	Now        time.Time
	Policy     booking.StayPolicy
	FeePercent int64
	Existing   []booking.Occupied
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		Property:   NewPropertyBuilder().Build(),
		GuestID:    uuid.New(),
		CheckIn:    "2026-01-01",
		CheckOut:   "2026-01-15",
		GuestCount: 2,
		Now:        Today,
		Policy:     booking.StayPolicy{MinStayWeeks: 2},
		FeePercent: 10,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithDates(checkIn, checkOut string) *BookingBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}

func (b *BookingBuilder) WithProperty(p *property.Property) *BookingBuilder {
	b.Property = p
	return b
}

func (b *BookingBuilder) Factory() *booking.Factory {
	return booking.NewFactory(
		clock.NewMockClock(b.Now),
		booking.NewDefaultPriceCalculator(b.FeePercent),
		b.Policy,
	)
}

func (b *BookingBuilder) StayRequest() (booking.StayRequest, error) {
	dates, err := booking.ParseDateRange(b.CheckIn, b.CheckOut)
	if err != nil {
		return booking.StayRequest{}, err
	}
	return booking.StayRequest{GuestID: b.GuestID, Dates: dates, GuestCount: b.GuestCount}, nil
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	req, err := b.StayRequest()
	if err != nil {
		return nil, err
	}
	return b.Factory().CreateBooking(b.Property, req, b.Existing)
}

// MustBuild panics on invalid input; use it only where the defaults are known good.
func (b *BookingBuilder) MustBuild() *booking.Booking {
	bk, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return bk
}

// BuildWithStatus reconstructs a booking already in status, with the audit
// fields a real transition would have left behind.
func (b *BookingBuilder) BuildWithStatus(status booking.Status, payment booking.PaymentStatus) *booking.Booking {
	snap := b.MustBuild().Snapshot()
	snap.Status = status
	snap.PaymentStatus = payment
	at := b.Now
	switch status {
	case booking.StatusConfirmed:
		snap.ConfirmedAt = &at
	case booking.StatusCompleted:
		snap.ConfirmedAt = &at
		snap.CompletedAt = &at
	case booking.StatusCancelled:
		by := snap.GuestID
		snap.CancelledBy = &by
		snap.CancelledAt = &at
	}
	bk, err := booking.Reconstruct(snap)
	if err != nil {
		panic(err)
	}
	return bk
}
