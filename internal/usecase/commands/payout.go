package commands

//go:generate mockgen -source=payout.go -destination=../../mock/commandsmock/payout.go -package=commandsmock

import (
	"context"
	"log/slog"

	"sublet-booking/internal/domain/payout"
	"sublet-booking/internal/pkg/clock"
	"sublet-booking/internal/pkg/errs"
	"sublet-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrPayoutConflict = errs.Conflict("a payout was already requested for one of these bookings")

type PayoutCommands interface {
	// Request creates one pending payout per eligible booking of the host.
	// An empty bookingIDs means every eligible booking.
	Request(ctx context.Context, hostID uuid.UUID, bookingIDs []uuid.UUID) (*payout.Summary, error)
}

type payoutUseCaseImpl struct {
	uow        shared.UnitOfWork
	calculator *payout.Calculator
	clock      clock.Clock
}

func NewPayoutUseCase(uow shared.UnitOfWork, calculator *payout.Calculator, clk clock.Clock) PayoutCommands {
	return &payoutUseCaseImpl{uow: uow, calculator: calculator, clock: clk}
}

func (uc *payoutUseCaseImpl) Request(ctx context.Context, hostID uuid.UUID, bookingIDs []uuid.UUID) (*payout.Summary, error) {
	var summary *payout.Summary
	err := uc.uow.Within(ctx, shared.HostLock(hostID), func(ctx context.Context, tx shared.Tx) error {
		candidates, err := tx.Reads().CompletedPaidBookings(ctx, hostID, dedupe(bookingIDs))
		if err != nil {
			return err
		}
		eligible, err := withoutPayout(ctx, tx.Reads(), candidates)
		if err != nil {
			return err
		}
		s, err := uc.calculator.Summarize(eligible, uc.clock.Now())
		if err != nil {
			return err
		}
		if err = tx.Payouts().InsertMany(ctx, s.Payouts); err != nil {
			return err
		}
		summary = s
		return nil
	})
	if errs.Is(err, errs.ErrConflict) {
		slog.Warn("payout insert conflicted", "host_id", hostID, "error", err)
		return nil, ErrPayoutConflict
	}
	if err != nil {
		return nil, err
	}

	slog.Info("payouts requested",
		"host_id", hostID,
		"count", len(summary.Payouts),
		"net_amount_cents", summary.TotalNetAmountCents)
	return summary, nil
}

func withoutPayout(ctx context.Context, reads shared.CommandReads, candidates []payout.Earning) ([]payout.Earning, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, len(candidates))
	for i, c := range candidates {
		ids[i] = c.BookingID
	}
	paid, err := reads.ExistingPayoutBookingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]struct{}, len(paid))
	for _, id := range paid {
		seen[id] = struct{}{}
	}

	out := make([]payout.Earning, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.BookingID]; !ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
