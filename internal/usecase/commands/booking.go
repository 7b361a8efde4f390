package commands

//go:generate mockgen -source=booking.go -destination=../../mock/commandsmock/booking.go -package=commandsmock

import (
	"context"
	"errors"
	"log/slog"

	"sublet-booking/internal/domain/booking"
	"sublet-booking/internal/pkg/clock"
	"sublet-booking/internal/pkg/errs"
	"sublet-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound  = errs.NotFound("booking not found")
	ErrPropertyNotFound = errs.NotFound("property not found")
)

const DefaultCompleteDueBatch = 500

type CreateBookingRequest struct {
	PropertyID uuid.UUID
	CheckIn    string
	CheckOut   string
	GuestCount int
}

type BookingResult struct {
	BookingID uuid.UUID
	Status    booking.Status
}

type CompleteDueResult struct {
	Completed []uuid.UUID
	Failed    []uuid.UUID
}

type BookingCommands interface {
	Create(ctx context.Context, req CreateBookingRequest, guestID uuid.UUID) (*BookingResult, error)
	Accept(ctx context.Context, bookingID, actorID uuid.UUID) (*BookingResult, error)
	Decline(ctx context.Context, bookingID, actorID uuid.UUID, reason string) (*BookingResult, error)
	Cancel(ctx context.Context, bookingID, actorID uuid.UUID, reason string) (*BookingResult, error)
	Complete(ctx context.Context, bookingID uuid.UUID) (*BookingResult, error)
	// CompleteDue completes every confirmed booking whose grace period has passed.
	CompleteDue(ctx context.Context, limit int) (*CompleteDueResult, error)
	RecordPayment(ctx context.Context, bookingID uuid.UUID, status booking.PaymentStatus) (*BookingResult, error)
}

type bookingUseCaseImpl struct {
	uow       shared.UnitOfWork
	factory   *booking.Factory
	clock     clock.Clock
	graceDays int
}

func NewBookingUseCase(uow shared.UnitOfWork, factory *booking.Factory, clk clock.Clock, completionGraceDays int) BookingCommands {
	return &bookingUseCaseImpl{uow: uow, factory: factory, clock: clk, graceDays: completionGraceDays}
}

func (uc *bookingUseCaseImpl) Create(ctx context.Context, req CreateBookingRequest, guestID uuid.UUID) (*BookingResult, error) {
	dates, err := booking.ParseDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	stay := booking.StayRequest{GuestID: guestID, Dates: dates, GuestCount: req.GuestCount}

	var created *booking.Booking
	err = uc.uow.Within(ctx, shared.PropertyLock(req.PropertyID), func(ctx context.Context, tx shared.Tx) error {
		prop, derr := tx.Reads().PropertyByID(ctx, req.PropertyID)
		if derr != nil {
			if errs.Is(derr, errs.ErrNotFound) {
				return ErrPropertyNotFound
			}
			return derr
		}
		existing, derr := tx.Reads().BookingsForProperty(ctx, prop.ID, booking.ActiveStatuses)
		if derr != nil {
			return derr
		}
		bk, derr := uc.factory.CreateBooking(prop, stay, existing)
		if derr != nil {
			return derr
		}
		if derr = tx.Bookings().Insert(ctx, bk); derr != nil {
			return derr
		}
		created = bk
		return nil
	})
	if errors.Is(err, booking.ErrDatesUnavailable) {
		// lost the race to a concurrent booking; storage detail stays in the log
		return nil, booking.ErrDatesUnavailable
	}
	if err != nil {
		return nil, err
	}

	slog.Info("booking created",
		"booking_id", created.ID(),
		"property_id", created.PropertyID(),
		"guest_id", guestID,
		"dates", dates.String(),
		"total_cents", created.Price().TotalCents)
	return &BookingResult{BookingID: created.ID(), Status: created.Status()}, nil
}

func (uc *bookingUseCaseImpl) Accept(ctx context.Context, bookingID, actorID uuid.UUID) (*BookingResult, error) {
	return uc.transition(ctx, bookingID, booking.TransitionAccept, func(b *booking.Booking) error {
		return b.Accept(actorID, uc.clock.Now())
	})
}

func (uc *bookingUseCaseImpl) Decline(ctx context.Context, bookingID, actorID uuid.UUID, reason string) (*BookingResult, error) {
	return uc.transition(ctx, bookingID, booking.TransitionDecline, func(b *booking.Booking) error {
		return b.Decline(actorID, reason, uc.clock.Now())
	})
}

func (uc *bookingUseCaseImpl) Cancel(ctx context.Context, bookingID, actorID uuid.UUID, reason string) (*BookingResult, error) {
	return uc.transition(ctx, bookingID, booking.TransitionCancel, func(b *booking.Booking) error {
		return b.Cancel(actorID, reason, uc.clock.Now())
	})
}

func (uc *bookingUseCaseImpl) Complete(ctx context.Context, bookingID uuid.UUID) (*BookingResult, error) {
	return uc.transition(ctx, bookingID, booking.TransitionComplete, func(b *booking.Booking) error {
		return b.Complete(uc.clock.Now(), uc.graceDays)
	})
}

func (uc *bookingUseCaseImpl) CompleteDue(ctx context.Context, limit int) (*CompleteDueResult, error) {
	if limit <= 0 {
		limit = DefaultCompleteDueBatch
	}
	// check-out + grace <= today
	cutoff := clock.Today(uc.clock).AddDate(0, 0, -uc.graceDays+1)
	ids, err := uc.uow.CommandReads().ConfirmedCheckingOutBefore(ctx, cutoff, limit)
	if err != nil {
		return nil, err
	}

	res := &CompleteDueResult{Completed: []uuid.UUID{}, Failed: []uuid.UUID{}}
	for _, id := range ids {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		if _, err := uc.Complete(ctx, id); err != nil {
			// a booking cancelled since the scan is not a failure
			if !errs.Is(err, errs.ErrBadRequest) {
				slog.Warn("failed to complete booking", "booking_id", id, "error", err.Error())
				res.Failed = append(res.Failed, id)
			}
			continue
		}
		res.Completed = append(res.Completed, id)
	}
	slog.Info("completed due bookings", "completed", len(res.Completed), "failed", len(res.Failed))
	return res, nil
}

func (uc *bookingUseCaseImpl) RecordPayment(ctx context.Context, bookingID uuid.UUID, status booking.PaymentStatus) (*BookingResult, error) {
	var result *BookingResult
	err := uc.uow.Within(ctx, shared.BookingLock(bookingID), func(ctx context.Context, tx shared.Tx) error {
		bk, derr := uc.loadBooking(ctx, tx.Reads(), bookingID)
		if derr != nil {
			return derr
		}
		if derr = bk.RecordPayment(status, uc.clock.Now()); derr != nil {
			return derr
		}
		if derr = tx.Bookings().UpdatePaymentStatus(ctx, bk); derr != nil {
			return derr
		}
		result = &BookingResult{BookingID: bk.ID(), Status: bk.Status()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("booking payment recorded", "booking_id", bookingID, "payment_status", status)
	return result, nil
}

// transition runs one read-validate-write unit. The write is conditional on
// the status that was read; losing that race is reported as the illegal
// transition it has become.
func (uc *bookingUseCaseImpl) transition(
	ctx context.Context,
	bookingID uuid.UUID,
	t booking.Transition,
	apply func(*booking.Booking) error,
) (*BookingResult, error) {
	var result *BookingResult
	err := uc.uow.Within(ctx, shared.BookingLock(bookingID), func(ctx context.Context, tx shared.Tx) error {
		bk, derr := uc.loadBooking(ctx, tx.Reads(), bookingID)
		if derr != nil {
			return derr
		}
		from := bk.Status()
		if derr = apply(bk); derr != nil {
			return derr
		}
		if derr = tx.Bookings().UpdateStatus(ctx, bk, from); derr != nil {
			if errors.Is(derr, shared.ErrStatusChanged) {
				return uc.staleTransition(ctx, tx.Reads(), bookingID, t)
			}
			return derr
		}
		result = &BookingResult{BookingID: bk.ID(), Status: bk.Status()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking transitioned",
		"booking_id", bookingID,
		"transition", t.String(),
		"status", result.Status.String())
	return result, nil
}

func (uc *bookingUseCaseImpl) staleTransition(ctx context.Context, reads shared.CommandReads, id uuid.UUID, t booking.Transition) error {
	current, err := uc.loadBooking(ctx, reads, id)
	if err != nil {
		return err
	}
	slog.Warn("booking status changed during transition",
		"booking_id", id,
		"transition", t.String(),
		"current_status", current.Status().String())
	return booking.IllegalTransition(t, current.Status())
}

func (uc *bookingUseCaseImpl) loadBooking(ctx context.Context, reads shared.CommandReads, id uuid.UUID) (*booking.Booking, error) {
	bk, err := reads.BookingByID(ctx, id)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return bk, nil
}
