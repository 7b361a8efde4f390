package booking

import (
	"time"

	"sublet-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNotHost          = errs.Forbidden("only the host can respond to this booking")
	ErrNotParticipant   = errs.Forbidden("only the guest or host can cancel this booking")
	ErrCompletionNotDue = errs.BadRequest("booking cannot be completed before its checkout grace period has passed")
)

// IllegalTransition builds the BadRequest returned when a transition is
// attempted from a state that does not allow it.
func IllegalTransition(t Transition, current Status) error {
	return errs.BadRequestf("cannot %s booking in status %s", t, current)
}

type Booking struct {
	id                 uuid.UUID
	propertyID         uuid.UUID
	guestID            uuid.UUID
	hostID             uuid.UUID
	dates              DateRange
	guestCount         int
	price              PriceBreakdown
	status             Status
	paymentStatus      PaymentStatus
	cancellationReason *string
	cancelledBy        *uuid.UUID
	cancelledAt        *time.Time
	confirmedAt        *time.Time
	completedAt        *time.Time
	createdAt          time.Time
	updatedAt          time.Time
}

// Snapshot is the flat persisted form of a Booking.
type Snapshot struct {
	ID                 uuid.UUID
	PropertyID         uuid.UUID
	GuestID            uuid.UUID
	HostID             uuid.UUID
	CheckIn            time.Time
	CheckOut           time.Time
	GuestCount         int
	Price              PriceBreakdown
	Status             Status
	PaymentStatus      PaymentStatus
	CancellationReason *string
	CancelledBy        *uuid.UUID
	CancelledAt        *time.Time
	ConfirmedAt        *time.Time
	CompletedAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func Reconstruct(s Snapshot) (*Booking, error) {
	dates, err := NewDateRange(s.CheckIn, s.CheckOut)
	if err != nil {
		return nil, errs.Wrapf(err, "booking %s", s.ID)
	}
	if !s.Status.IsValid() {
		return nil, errs.Newf("booking %s has unknown status %q", s.ID, s.Status)
	}
	if !s.PaymentStatus.IsValid() {
		return nil, errs.Newf("booking %s has unknown payment status %q", s.ID, s.PaymentStatus)
	}
	return &Booking{
		id:                 s.ID,
		propertyID:         s.PropertyID,
		guestID:            s.GuestID,
		hostID:             s.HostID,
		dates:              dates,
		guestCount:         s.GuestCount,
		price:              s.Price,
		status:             s.Status,
		paymentStatus:      s.PaymentStatus,
		cancellationReason: s.CancellationReason,
		cancelledBy:        s.CancelledBy,
		cancelledAt:        s.CancelledAt,
		confirmedAt:        s.ConfirmedAt,
		completedAt:        s.CompletedAt,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
	}, nil
}

func (b *Booking) Snapshot() Snapshot {
	return Snapshot{
		ID:                 b.id,
		PropertyID:         b.propertyID,
		GuestID:            b.guestID,
		HostID:             b.hostID,
		CheckIn:            b.dates.CheckIn(),
		CheckOut:           b.dates.CheckOut(),
		GuestCount:         b.guestCount,
		Price:              b.price,
		Status:             b.status,
		PaymentStatus:      b.paymentStatus,
		CancellationReason: b.cancellationReason,
		CancelledBy:        b.cancelledBy,
		CancelledAt:        b.cancelledAt,
		ConfirmedAt:        b.confirmedAt,
		CompletedAt:        b.completedAt,
		CreatedAt:          b.createdAt,
		UpdatedAt:          b.updatedAt,
	}
}

// Accept confirms a pending booking. Only the host may accept.
func (b *Booking) Accept(actor uuid.UUID, now time.Time) error {
	if actor != b.hostID {
		return ErrNotHost
	}
	if err := b.checkSource(TransitionAccept); err != nil {
		return err
	}
	b.status = TransitionAccept.Target()
	b.confirmedAt = &now
	b.updatedAt = now
	return nil
}

// Decline is a host-initiated cancellation of a pending booking.
func (b *Booking) Decline(actor uuid.UUID, reason string, now time.Time) error {
	if actor != b.hostID {
		return ErrNotHost
	}
	if err := b.checkSource(TransitionDecline); err != nil {
		return err
	}
	b.markCancelled(TransitionDecline, actor, reason, now)
	return nil
}

// Cancel checks the terminal state before the actor, so cancelling a
// finished booking is a BadRequest for everyone.
func (b *Booking) Cancel(actor uuid.UUID, reason string, now time.Time) error {
	if err := b.checkSource(TransitionCancel); err != nil {
		return err
	}
	if !b.IsParticipant(actor) {
		return ErrNotParticipant
	}
	b.markCancelled(TransitionCancel, actor, reason, now)
	return nil
}

// Complete closes a confirmed stay once checkout plus graceDays has been reached.
func (b *Booking) Complete(now time.Time, graceDays int) error {
	if err := b.checkSource(TransitionComplete); err != nil {
		return err
	}
	if !b.CompletionDue(now, graceDays) {
		return errs.Wrapf(ErrCompletionNotDue, "due on %s", b.CompletableOn(graceDays).Format(DateLayout))
	}
	b.status = TransitionComplete.Target()
	b.completedAt = &now
	b.updatedAt = now
	return nil
}

func (b *Booking) CompletableOn(graceDays int) time.Time {
	return b.dates.CheckOut().AddDate(0, 0, graceDays)
}

func (b *Booking) CompletionDue(now time.Time, graceDays int) bool {
	return !truncateDate(now).Before(b.CompletableOn(graceDays))
}

// RecordPayment stores the payment gateway outcome. Cancelled bookings can
// only move to refunded or partial.
func (b *Booking) RecordPayment(status PaymentStatus, now time.Time) error {
	if !status.IsValid() {
		return errs.BadRequestf("unknown payment status %q", status)
	}
	if b.status == StatusCancelled && status == PaymentCompleted {
		return errs.BadRequest("cannot record a completed payment on a cancelled booking")
	}
	b.paymentStatus = status
	b.updatedAt = now
	return nil
}

func (b *Booking) IsParticipant(userID uuid.UUID) bool {
	return userID == b.guestID || userID == b.hostID
}

func (b *Booking) checkSource(t Transition) error {
	if !t.AllowedFrom(b.status) {
		return IllegalTransition(t, b.status)
	}
	return nil
}

func (b *Booking) markCancelled(t Transition, actor uuid.UUID, reason string, now time.Time) {
	b.status = t.Target()
	if reason != "" {
		b.cancellationReason = &reason
	}
	b.cancelledBy = &actor
	b.cancelledAt = &now
	b.updatedAt = now
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) PropertyID() uuid.UUID        { return b.propertyID }
func (b *Booking) GuestID() uuid.UUID           { return b.guestID }
func (b *Booking) HostID() uuid.UUID            { return b.hostID }
func (b *Booking) Dates() DateRange             { return b.dates }
func (b *Booking) Nights() int                  { return b.dates.Nights() }
func (b *Booking) GuestCount() int              { return b.guestCount }
func (b *Booking) Price() PriceBreakdown        { return b.price }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) CancellationReason() *string  { return b.cancellationReason }
func (b *Booking) CancelledBy() *uuid.UUID      { return b.cancelledBy }
func (b *Booking) CancelledAt() *time.Time      { return b.cancelledAt }
func (b *Booking) ConfirmedAt() *time.Time      { return b.confirmedAt }
func (b *Booking) CompletedAt() *time.Time      { return b.completedAt }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
