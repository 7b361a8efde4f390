//go:build unit || e2e

package builder

import (
	"sublet-booking/internal/domain/booking"
	"sublet-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// NewBookingView returns the read model of a 14-night stay priced like the
// default property: 56000 subtotal, 5600 fee, 8000 cleaning.
func NewBookingView(id, guestID, hostID uuid.UUID, status booking.Status) *queries.BookingView {
	title := "Sunny room near campus"
	return &queries.BookingView{
		ID:               id,
		PropertyID:       uuid.New(),
		PropertyTitle:    &title,
		GuestID:          guestID,
		HostID:           hostID,
		CheckInDate:      "2026-01-01",
		CheckOutDate:     "2026-01-15",
		Nights:           14,
		GuestCount:       2,
		DailyRateCents:   4000,
		SubtotalCents:    56000,
		ServiceFeeCents:  5600,
		CleaningFeeCents: 8000,
		TotalCents:       69600,
		BookingStatus:    status.String(),
		PaymentStatus:    booking.PaymentPending.String(),
		CreatedAt:        Today,
		UpdatedAt:        Today,
	}
}
