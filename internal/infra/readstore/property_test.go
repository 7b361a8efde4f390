//go:build unit

package readstore

import (
	"context"
	"testing"

	"sublet-booking/internal/domain/booking"
	"sublet-booking/internal/infra/query"
	"sublet-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPropertyReadStore_SearchActive(t *testing.T) {
	ctx := context.Background()
	city := "Boston"
	maxPrice := int64(150000)

	tests := []struct {
		name   string
		filter queries.PropertySearchFilter
		want   query.SearchPropertiesParams
	}{
		{
			name:   "guests only",
			filter: queries.PropertySearchFilter{MinGuests: 1},
			want:   query.SearchPropertiesParams{MinGuests: 1},
		},
		{
			name:   "all filters",
			filter: queries.PropertySearchFilter{MinGuests: 3, City: &city, MaxMonthlyPriceCents: &maxPrice},
			want: query.SearchPropertiesParams{
				MinGuests:            3,
				City:                 pgtype.Text{String: "Boston", Valid: true},
				MaxMonthlyPriceCents: pgtype.Int8{Int64: 150000, Valid: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockQueries)
			store := NewPropertyReadStore(mockQueries, nil)
			mockQueries.On("SearchProperties", ctx, mock.Anything, tt.want).
				Return([]query.Property{{ID: uuid.New(), Status: "active", MaxGuests: 4}}, nil)

			props, err := store.SearchActive(ctx, tt.filter)

			require.NoError(t, err)
			require.Len(t, props, 1)
			assert.Equal(t, 4, props[0].MaxGuests)
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestPropertyReadStore_Calendar(t *testing.T) {
	ctx := context.Background()
	p1, p2 := uuid.New(), uuid.New()

	t.Run("groups active bookings by property", func(t *testing.T) {
		mockQueries := new(MockQueries)
		store := NewPropertyReadStore(mockQueries, nil)
		mockQueries.On("ListCalendar", ctx, mock.Anything, []uuid.UUID{p1, p2}, []string{"pending", "confirmed"}).
			Return([]query.CalendarRow{
				{ID: uuid.New(), PropertyID: p1, CheckInDate: date(2026, 1, 1), CheckOutDate: date(2026, 1, 15), BookingStatus: "pending"},
				{ID: uuid.New(), PropertyID: p1, CheckInDate: date(2026, 2, 1), CheckOutDate: date(2026, 3, 1), BookingStatus: "confirmed"},
			}, nil)

		cal, err := store.Calendar(ctx, []uuid.UUID{p1, p2})

		require.NoError(t, err)
		require.Len(t, cal[p1], 2)
		assert.Empty(t, cal[p2])
		assert.Equal(t, 14, cal[p1][0].Dates.Nights())
		assert.Equal(t, booking.StatusConfirmed, cal[p1][1].Status)
	})

	t.Run("rejects rows with inverted dates", func(t *testing.T) {
		mockQueries := new(MockQueries)
		store := NewPropertyReadStore(mockQueries, nil)
		mockQueries.On("ListCalendar", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return([]query.CalendarRow{
				{ID: uuid.New(), PropertyID: p1, CheckInDate: date(2026, 1, 15), CheckOutDate: date(2026, 1, 1), BookingStatus: "pending"},
			}, nil)

		_, err := store.Calendar(ctx, []uuid.UUID{p1})
		require.Error(t, err)
	})
}
