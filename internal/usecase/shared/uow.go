package shared

import (
	"context"
	"time"

	"sublet-booking/internal/domain/booking"
	"sublet-booking/internal/domain/payout"
	"sublet-booking/internal/domain/property"
	"sublet-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrStatusChanged is returned by a conditional status update that matched
// no row because the booking left the expected status in the meantime.
var ErrStatusChanged = errs.Conflict("booking status changed concurrently")

type UnitOfWork interface {
	// Within runs fn atomically. Units sharing a LockKey never interleave.
	Within(ctx context.Context, key LockKey, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: validation reads outside any unit of work
	CommandReads() CommandReads
}

// LockKey names the aggregate a unit of work serializes on.
type LockKey struct {
	Scope string
	ID    uuid.UUID
}

func (k LockKey) String() string {
	return k.Scope + ":" + k.ID.String()
}

func PropertyLock(id uuid.UUID) LockKey { return LockKey{Scope: "property", ID: id} }
func BookingLock(id uuid.UUID) LockKey  { return LockKey{Scope: "booking", ID: id} }
func HostLock(id uuid.UUID) LockKey     { return LockKey{Scope: "host", ID: id} }

type Tx interface {
	Bookings() BookingRepository
	Payouts() PayoutRepository
	Reads() CommandReads
}

type CommandReads interface {
	PropertyByID(ctx context.Context, id uuid.UUID) (*property.Property, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// BookingsForProperty lists the calendar entries of a property in the given statuses.
	BookingsForProperty(ctx context.Context, propertyID uuid.UUID, statuses []booking.Status) ([]booking.Occupied, error)
	// CompletedPaidBookings lists the host's completed bookings with a completed
	// payment, restricted to bookingIDs when it is non-empty.
	CompletedPaidBookings(ctx context.Context, hostID uuid.UUID, bookingIDs []uuid.UUID) ([]payout.Earning, error)
	ExistingPayoutBookingIDs(ctx context.Context, bookingIDs []uuid.UUID) ([]uuid.UUID, error)
	// ConfirmedCheckingOutBefore lists confirmed bookings whose check-out is before cutoff.
	ConfirmedCheckingOutBefore(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error)
}

type BookingRepository interface {
	Insert(ctx context.Context, b *booking.Booking) error
	// UpdateStatus persists b's status and audit fields only if the stored
	// status still equals expected; otherwise it returns ErrStatusChanged.
	UpdateStatus(ctx context.Context, b *booking.Booking, expected booking.Status) error
	UpdatePaymentStatus(ctx context.Context, b *booking.Booking) error
}

type PayoutRepository interface {
	InsertMany(ctx context.Context, payouts []*payout.Payout) error
}
