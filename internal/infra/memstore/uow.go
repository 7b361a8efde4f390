package memstore

import (
	"context"
	"time"

	"sublet-booking/internal/domain/booking"
	"sublet-booking/internal/domain/payout"
	"sublet-booking/internal/domain/property"
	"sublet-booking/internal/infra"
	"sublet-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type UnitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) shared.UnitOfWork {
	return &UnitOfWork{store: store}
}

// Within holds the key's mutex for the whole unit. Writes are staged and
// applied at once on success; on error nothing is applied.
func (u *UnitOfWork) Within(ctx context.Context, key shared.LockKey, fn func(ctx context.Context, tx shared.Tx) error) error {
	unlock, err := u.store.locks.Lock(ctx, key.String())
	if err != nil {
		return err
	}
	defer unlock()

	tx := newMemTx(u.store)
	if err := fn(ctx, tx); err != nil {
		return err
	}
	return u.store.commit(tx)
}

func (u *UnitOfWork) CommandReads() shared.CommandReads {
	return &commandReads{store: u.store}
}

type stagedBooking struct {
	snap     booking.Snapshot
	insert   bool
	expected booking.Status
}

type memTx struct {
	store    *Store
	bookings map[uuid.UUID]*stagedBooking
	order    []uuid.UUID
	payouts  []*payout.Payout
}

func newMemTx(s *Store) *memTx {
	return &memTx{store: s, bookings: make(map[uuid.UUID]*stagedBooking)}
}

func (t *memTx) Bookings() shared.BookingRepository { return (*txBookings)(t) }
func (t *memTx) Payouts() shared.PayoutRepository   { return (*txPayouts)(t) }
func (t *memTx) Reads() shared.CommandReads         { return &commandReads{store: t.store, tx: t} }

func (t *memTx) stage(sb *stagedBooking) {
	if _, ok := t.bookings[sb.snap.ID]; !ok {
		t.order = append(t.order, sb.snap.ID)
	}
	t.bookings[sb.snap.ID] = sb
}

func (t *memTx) current(id uuid.UUID) (booking.Snapshot, bool) {
	if sb, ok := t.bookings[id]; ok {
		return sb.snap, true
	}
	return t.store.booking(id)
}

type txBookings memTx

func (r *txBookings) Insert(_ context.Context, b *booking.Booking) error {
	t := (*memTx)(r)
	if _, ok := t.current(b.ID()); ok {
		return infra.WrapRepoErr("booking already exists", nil, infra.KindDuplicateKey)
	}
	t.stage(&stagedBooking{snap: b.Snapshot(), insert: true})
	return nil
}

func (r *txBookings) UpdateStatus(_ context.Context, b *booking.Booking, expected booking.Status) error {
	return (*memTx)(r).update(b, func(cur booking.Snapshot) (booking.Snapshot, error) {
		if cur.Status != expected {
			return cur, shared.ErrStatusChanged
		}
		next := b.Snapshot()
		cur.Status = next.Status
		cur.CancellationReason = next.CancellationReason
		cur.CancelledBy = next.CancelledBy
		cur.CancelledAt = next.CancelledAt
		cur.ConfirmedAt = next.ConfirmedAt
		cur.CompletedAt = next.CompletedAt
		cur.UpdatedAt = next.UpdatedAt
		return cur, nil
	})
}

func (r *txBookings) UpdatePaymentStatus(_ context.Context, b *booking.Booking) error {
	return (*memTx)(r).update(b, func(cur booking.Snapshot) (booking.Snapshot, error) {
		cur.PaymentStatus = b.PaymentStatus()
		cur.UpdatedAt = b.UpdatedAt()
		return cur, nil
	})
}

func (t *memTx) update(b *booking.Booking, apply func(booking.Snapshot) (booking.Snapshot, error)) error {
	staged, isStaged := t.bookings[b.ID()]
	cur, ok := t.current(b.ID())
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	next, err := apply(cur)
	if err != nil {
		return err
	}

	sb := &stagedBooking{snap: next, expected: cur.Status}
	if isStaged {
		sb.insert = staged.insert
		sb.expected = staged.expected
	}
	t.stage(sb)
	return nil
}

type txPayouts memTx

func (r *txPayouts) InsertMany(_ context.Context, payouts []*payout.Payout) error {
	t := (*memTx)(r)
	t.payouts = append(t.payouts, payouts...)
	return nil
}

// commit re-checks the storage constraints against committed state and
// applies every staged write, or none.
func (s *Store) commit(t *memTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accepted := make(map[uuid.UUID]booking.Snapshot, len(t.order))
	for _, id := range t.order {
		sb := t.bookings[id]
		cur, exists := s.bookings[id]
		switch {
		case sb.insert && exists:
			return infra.WrapRepoErr("booking already exists", nil, infra.KindDuplicateKey)
		case !sb.insert && !exists:
			return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
		case !sb.insert && cur.Status != sb.expected:
			return shared.ErrStatusChanged
		}
		if sb.insert && sb.snap.Status.IsActive() {
			if err := s.checkOverlapLocked(sb.snap, accepted); err != nil {
				return err
			}
		}
		accepted[id] = sb.snap
	}

	seen := make(map[uuid.UUID]struct{}, len(t.payouts))
	for _, p := range t.payouts {
		_, dup := seen[p.BookingID]
		if _, exists := s.payoutByBooking[p.BookingID]; exists || dup {
			return infra.WrapRepoErr("payout already exists for booking "+p.BookingID.String(), nil, infra.KindDuplicateKey)
		}
		seen[p.BookingID] = struct{}{}
	}

	for id, snap := range accepted {
		s.bookings[id] = snap
	}
	for _, p := range t.payouts {
		s.payouts = append(s.payouts, p)
		s.payoutByBooking[p.BookingID] = p.ID
	}
	return nil
}

func (s *Store) checkOverlapLocked(candidate booking.Snapshot, accepted map[uuid.UUID]booking.Snapshot) error {
	dates, err := booking.NewDateRange(candidate.CheckIn, candidate.CheckOut)
	if err != nil {
		return err
	}
	var existing []booking.Occupied
	collect := func(b booking.Snapshot) {
		if b.ID == candidate.ID || b.PropertyID != candidate.PropertyID {
			return
		}
		if o, err := occupiedOf(b); err == nil {
			existing = append(existing, o)
		}
	}
	for _, b := range s.bookings {
		if _, replaced := accepted[b.ID]; !replaced {
			collect(b)
		}
	}
	for _, b := range accepted {
		collect(b)
	}
	if !booking.IsAvailable(dates, existing) {
		return infra.WrapRepoErr("booking overlaps an active booking", booking.ErrDatesUnavailable, infra.KindExclusionViolated)
	}
	return nil
}

// commandReads sees committed state, overlaid with tx's staged writes when
// bound to a unit of work.
type commandReads struct {
	store *Store
	tx    *memTx
}

var _ shared.CommandReads = (*commandReads)(nil)

func (r *commandReads) PropertyByID(_ context.Context, id uuid.UUID) (*property.Property, error) {
	p, ok := r.store.property(id)
	if !ok {
		return nil, infra.WrapRepoErr("property not found", nil, infra.KindNotFound)
	}
	return &p, nil
}

func (r *commandReads) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	var (
		snap booking.Snapshot
		ok   bool
	)
	if r.tx != nil {
		snap, ok = r.tx.current(id)
	} else {
		snap, ok = r.store.booking(id)
	}
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return booking.Reconstruct(snap)
}

func (r *commandReads) bookings(match func(booking.Snapshot) bool) []booking.Snapshot {
	committed := r.store.bookingsWhere(func(b booking.Snapshot) bool {
		if r.tx != nil {
			if _, staged := r.tx.bookings[b.ID]; staged {
				return false
			}
		}
		return match(b)
	})
	if r.tx == nil {
		return committed
	}
	for _, id := range r.tx.order {
		if snap := r.tx.bookings[id].snap; match(snap) {
			committed = append(committed, snap)
		}
	}
	sortNewestFirst(committed)
	return committed
}

func (r *commandReads) BookingsForProperty(_ context.Context, propertyID uuid.UUID, statuses []booking.Status) ([]booking.Occupied, error) {
	snaps := r.bookings(func(b booking.Snapshot) bool {
		return b.PropertyID == propertyID && hasStatus(b.Status, statuses)
	})
	out := make([]booking.Occupied, 0, len(snaps))
	for _, b := range snaps {
		o, err := occupiedOf(b)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *commandReads) CompletedPaidBookings(_ context.Context, hostID uuid.UUID, bookingIDs []uuid.UUID) ([]payout.Earning, error) {
	want := make(map[uuid.UUID]struct{}, len(bookingIDs))
	for _, id := range bookingIDs {
		want[id] = struct{}{}
	}
	snaps := r.bookings(func(b booking.Snapshot) bool {
		if b.HostID != hostID || !booking.PayoutEligible(b.Status, b.PaymentStatus) {
			return false
		}
		if len(want) == 0 {
			return true
		}
		_, ok := want[b.ID]
		return ok
	})

	out := make([]payout.Earning, 0, len(snaps))
	for i := len(snaps) - 1; i >= 0; i-- {
		b := snaps[i]
		out = append(out, payout.Earning{
			BookingID:        b.ID,
			HostID:           b.HostID,
			SubtotalCents:    b.Price.SubtotalCents,
			CleaningFeeCents: b.Price.CleaningFeeCents,
		})
	}
	return out, nil
}

func (r *commandReads) ExistingPayoutBookingIDs(_ context.Context, bookingIDs []uuid.UUID) ([]uuid.UUID, error) {
	out := r.store.payoutBookingIDs(bookingIDs)
	if r.tx == nil {
		return out, nil
	}
	for _, p := range r.tx.payouts {
		for _, id := range bookingIDs {
			if p.BookingID == id {
				out = append(out, id)
			}
		}
	}
	return out, nil
}

func (r *commandReads) ConfirmedCheckingOutBefore(_ context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	snaps := r.bookings(func(b booking.Snapshot) bool {
		return b.Status == booking.StatusConfirmed && b.CheckOut.Before(cutoff)
	})
	out := make([]uuid.UUID, 0, min(len(snaps), limit))
	for i := len(snaps) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, snaps[i].ID)
	}
	return out, nil
}
