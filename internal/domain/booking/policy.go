package booking

import (
	"time"

	"sublet-booking/internal/domain/property"
	"sublet-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrPropertyNotActive   = errs.BadRequest("property is not accepting bookings")
	ErrSelfBooking         = errs.BadRequest("hosts cannot book their own property")
	ErrInvalidGuestCount   = errs.BadRequest("guest count must be at least 1")
	ErrGuestCountExceeded  = errs.BadRequest("guest count exceeds property maximum")
	ErrCheckInInPast       = errs.BadRequest("check-in date cannot be in the past")
	ErrMinimumStayNotMet   = errs.BadRequest("stay is shorter than the minimum stay")
	ErrMaximumStayExceeded = errs.BadRequest("stay is longer than the maximum stay")
	ErrDatesUnavailable    = errs.BadRequest("property is not available for the selected dates")
)

// StayPolicy holds the platform-wide stay rules layered over each property's own.
type StayPolicy struct {
	MinStayWeeks int
}

type StayRequest struct {
	GuestID    uuid.UUID
	Dates      DateRange
	GuestCount int
}

// Validate checks every precondition pricing relies on. It does not consult
// existing bookings; availability is checked separately.
func (p StayPolicy) Validate(prop *property.Property, req StayRequest, today time.Time) error {
	if !prop.IsActive() {
		return ErrPropertyNotActive
	}
	if prop.IsHostedBy(req.GuestID) {
		return ErrSelfBooking
	}
	if req.GuestCount < 1 {
		return ErrInvalidGuestCount
	}
	if req.GuestCount > prop.MaxGuests {
		return errs.Wrapf(ErrGuestCountExceeded, "%d guests requested, maximum is %d", req.GuestCount, prop.MaxGuests)
	}
	if req.Dates.CheckIn().Before(truncateDate(today)) {
		return ErrCheckInInPast
	}

	nights := req.Dates.Nights()
	minWeeks := max(p.MinStayWeeks, prop.MinimumStayWeeks)
	if nights < minWeeks*7 {
		return errs.Wrapf(ErrMinimumStayNotMet, "%d nights requested, minimum is %d weeks", nights, minWeeks)
	}
	if prop.MaximumStayMonths > 0 && nights > prop.MaximumStayMonths*DaysPerMonth {
		return errs.Wrapf(ErrMaximumStayExceeded, "%d nights requested, maximum is %d months", nights, prop.MaximumStayMonths)
	}
	return nil
}
