package booking

import (
	"time"

	"sublet-booking/internal/pkg/errs"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDate      = errs.BadRequest("dates must be in YYYY-MM-DD format")
	ErrInvalidDateRange = errs.BadRequest("check-out date must be after check-in date")
)

// ParseDate parses an ISO-8601 calendar date into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange is the half-open stay interval [checkIn, checkOut): the checkout
// date itself is free for the next guest.
type DateRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	in, out := truncateDate(checkIn), truncateDate(checkOut)
	if !in.Before(out) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{checkIn: in, checkOut: out}, nil
}

func ParseDateRange(checkIn, checkOut string) (DateRange, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return DateRange{}, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(in, out)
}

func (r DateRange) CheckIn() time.Time  { return r.checkIn }
func (r DateRange) CheckOut() time.Time { return r.checkOut }

func (r DateRange) Nights() int {
	return int(r.checkOut.Sub(r.checkIn).Hours() / 24)
}

// Overlaps is the single conflict predicate for stays: [a1,a2) and [b1,b2)
// conflict iff a1 < b2 && b1 < a2.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.checkIn.Before(other.checkOut) && other.checkIn.Before(r.checkOut)
}

func (r DateRange) String() string {
	return r.checkIn.Format(DateLayout) + ".." + r.checkOut.Format(DateLayout)
}

// Occupied is the minimal view of an existing booking the availability check needs.
type Occupied struct {
	BookingID string
	Dates     DateRange
	Status    Status
}

// Conflicts returns the active entries of existing that overlap candidate.
func Conflicts(candidate DateRange, existing []Occupied) []Occupied {
	var out []Occupied
	for _, o := range existing {
		if o.Status.IsActive() && candidate.Overlaps(o.Dates) {
			out = append(out, o)
		}
	}
	return out
}

// IsAvailable reports whether candidate conflicts with none of existing.
func IsAvailable(candidate DateRange, existing []Occupied) bool {
	return len(Conflicts(candidate, existing)) == 0
}
