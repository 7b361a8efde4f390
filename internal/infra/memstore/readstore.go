package memstore

import (
	"context"
	"sort"
	"strings"

	"sublet-booking/internal/domain/booking"
	"sublet-booking/internal/domain/property"
	"sublet-booking/internal/infra"
	"sublet-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingReadStore struct {
	store *Store
}

func NewBookingReadStore(store *Store) *BookingReadStore {
	return &BookingReadStore{store: store}
}

var _ queries.BookingReadStore = (*BookingReadStore)(nil)

func (r *BookingReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	b, ok := r.store.booking(id)
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return r.store.bookingView(b), nil
}

func (r *BookingReadStore) List(_ context.Context, filter queries.BookingViewFilter) ([]*queries.BookingView, int64, error) {
	matched := r.store.bookingsWhere(func(b booking.Snapshot) bool {
		if filter.Status != nil && b.Status != *filter.Status {
			return false
		}
		return (filter.AsGuest && b.GuestID == filter.UserID) || (filter.AsHost && b.HostID == filter.UserID)
	})

	start := min(filter.Offset, len(matched))
	end := min(start+filter.Limit, len(matched))
	items := make([]*queries.BookingView, 0, end-start)
	for _, b := range matched[start:end] {
		items = append(items, r.store.bookingView(b))
	}
	return items, int64(len(matched)), nil
}

func (s *Store) bookingView(b booking.Snapshot) *queries.BookingView {
	v := &queries.BookingView{
		ID:                   b.ID,
		PropertyID:           b.PropertyID,
		GuestID:              b.GuestID,
		HostID:               b.HostID,
		CheckInDate:          b.CheckIn.Format(booking.DateLayout),
		CheckOutDate:         b.CheckOut.Format(booking.DateLayout),
		Nights:               b.Price.Nights,
		GuestCount:           b.GuestCount,
		DailyRateCents:       b.Price.DailyRateCents,
		SubtotalCents:        b.Price.SubtotalCents,
		ServiceFeeCents:      b.Price.ServiceFeeCents,
		CleaningFeeCents:     b.Price.CleaningFeeCents,
		SecurityDepositCents: b.Price.SecurityDepositCents,
		TotalCents:           b.Price.TotalCents,
		BookingStatus:        b.Status.String(),
		PaymentStatus:        b.PaymentStatus.String(),
		CancellationReason:   b.CancellationReason,
		CancelledBy:          b.CancelledBy,
		CancelledAt:          b.CancelledAt,
		ConfirmedAt:          b.ConfirmedAt,
		CompletedAt:          b.CompletedAt,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.properties[b.PropertyID]; ok {
		v.PropertyTitle = &p.Title
		v.PropertyCity = &p.City
	}
	if g, ok := s.users[b.GuestID]; ok {
		v.GuestName = &g.DisplayName
	}
	if h, ok := s.users[b.HostID]; ok {
		v.HostName = &h.DisplayName
	}
	return v
}

type PropertyReadStore struct {
	store *Store
}

func NewPropertyReadStore(store *Store) *PropertyReadStore {
	return &PropertyReadStore{store: store}
}

var _ queries.PropertyReadStore = (*PropertyReadStore)(nil)

func (r *PropertyReadStore) FindByID(_ context.Context, id uuid.UUID) (*property.Property, error) {
	p, ok := r.store.property(id)
	if !ok {
		return nil, infra.WrapRepoErr("property not found", nil, infra.KindNotFound)
	}
	return &p, nil
}

func (r *PropertyReadStore) SearchActive(_ context.Context, filter queries.PropertySearchFilter) ([]*property.Property, error) {
	r.store.mu.RLock()
	out := make([]*property.Property, 0)
	for _, p := range r.store.properties {
		if !p.IsActive() || p.MaxGuests < filter.MinGuests {
			continue
		}
		if filter.City != nil && !strings.EqualFold(p.City, *filter.City) {
			continue
		}
		if filter.MaxMonthlyPriceCents != nil && p.MonthlyPriceCents > *filter.MaxMonthlyPriceCents {
			continue
		}
		out = append(out, &p)
	}
	r.store.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *PropertyReadStore) Calendar(_ context.Context, propertyIDs []uuid.UUID) (map[uuid.UUID][]booking.Occupied, error) {
	want := make(map[uuid.UUID]struct{}, len(propertyIDs))
	for _, id := range propertyIDs {
		want[id] = struct{}{}
	}
	snaps := r.store.bookingsWhere(func(b booking.Snapshot) bool {
		_, ok := want[b.PropertyID]
		return ok && b.Status.IsActive()
	})

	cal := make(map[uuid.UUID][]booking.Occupied, len(propertyIDs))
	for _, b := range snaps {
		o, err := occupiedOf(b)
		if err != nil {
			return nil, err
		}
		cal[b.PropertyID] = append(cal[b.PropertyID], o)
	}
	return cal, nil
}

type PayoutReadStore struct {
	store *Store
}

func NewPayoutReadStore(store *Store) *PayoutReadStore {
	return &PayoutReadStore{store: store}
}

var _ queries.PayoutReadStore = (*PayoutReadStore)(nil)

func (r *PayoutReadStore) ListByHost(_ context.Context, hostID uuid.UUID, limit, offset int) ([]*queries.PayoutView, int64, error) {
	r.store.mu.RLock()
	var views []*queries.PayoutView
	for _, p := range r.store.payouts {
		if p.HostID != hostID {
			continue
		}
		views = append(views, &queries.PayoutView{
			ID:               p.ID,
			HostID:           p.HostID,
			BookingID:        p.BookingID,
			AmountCents:      p.AmountCents,
			PlatformFeeCents: p.PlatformFeeCents,
			NetAmountCents:   p.NetAmountCents,
			PayoutStatus:     p.Status.String(),
			ScheduledFor:     p.ScheduledFor,
			CreatedAt:        p.CreatedAt,
		})
	}
	r.store.mu.RUnlock()

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	start := min(offset, len(views))
	end := min(start+limit, len(views))
	return views[start:end], int64(len(views)), nil
}
