// Package memstore keeps every aggregate in process memory. It implements
// the same ports as the Postgres stores and enforces the same constraints:
// no overlapping active bookings per property and one payout per booking.
package memstore

import (
	"sort"
	"sync"

	"sublet-booking/internal/domain/booking"
	"sublet-booking/internal/domain/payout"
	"sublet-booking/internal/domain/property"
	"sublet-booking/internal/domain/user"
	"sublet-booking/internal/pkg/keylock"

	"github.com/google/uuid"
)

type Store struct {
	mu              sync.RWMutex
	users           map[uuid.UUID]user.Profile
	properties      map[uuid.UUID]property.Property
	bookings        map[uuid.UUID]booking.Snapshot
	payouts         []*payout.Payout
	payoutByBooking map[uuid.UUID]uuid.UUID

	locks *keylock.Locker
}

func New() *Store {
	return &Store{
		users:           make(map[uuid.UUID]user.Profile),
		properties:      make(map[uuid.UUID]property.Property),
		bookings:        make(map[uuid.UUID]booking.Snapshot),
		payoutByBooking: make(map[uuid.UUID]uuid.UUID),
		locks:           keylock.New(),
	}
}

func (s *Store) AddUser(u user.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *Store) AddProperty(p property.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties[p.ID] = p
}

// PutBooking stores b as is, bypassing the overlap check. Used for seeding.
func (s *Store) PutBooking(b *booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID()] = b.Snapshot()
}

func (s *Store) property(id uuid.UUID) (property.Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.properties[id]
	return p, ok
}

func (s *Store) booking(id uuid.UUID) (booking.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	return b, ok
}

// bookingsWhere returns matching committed bookings, newest first.
func (s *Store) bookingsWhere(match func(booking.Snapshot) bool) []booking.Snapshot {
	s.mu.RLock()
	out := make([]booking.Snapshot, 0)
	for _, b := range s.bookings {
		if match(b) {
			out = append(out, b)
		}
	}
	s.mu.RUnlock()
	sortNewestFirst(out)
	return out
}

func (s *Store) payoutBookingIDs(ids []uuid.UUID) []uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []uuid.UUID
	for _, id := range ids {
		if _, ok := s.payoutByBooking[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func sortNewestFirst(bs []booking.Snapshot) {
	sort.Slice(bs, func(i, j int) bool {
		if !bs[i].CreatedAt.Equal(bs[j].CreatedAt) {
			return bs[i].CreatedAt.After(bs[j].CreatedAt)
		}
		return bs[i].ID.String() < bs[j].ID.String()
	})
}

func occupiedOf(b booking.Snapshot) (booking.Occupied, error) {
	dates, err := booking.NewDateRange(b.CheckIn, b.CheckOut)
	if err != nil {
		return booking.Occupied{}, err
	}
	return booking.Occupied{BookingID: b.ID.String(), Dates: dates, Status: b.Status}, nil
}

func hasStatus(s booking.Status, statuses []booking.Status) bool {
	for _, st := range statuses {
		if st == s {
			return true
		}
	}
	return false
}
