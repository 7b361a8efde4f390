//go:build unit

package readstore

import (
	"context"

	"sublet-booking/internal/infra/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/mock"
)

type MockQueries struct {
	mock.Mock
}

func (m *MockQueries) GetBookingView(ctx context.Context, db query.DBTX, id uuid.UUID) (query.BookingViewRow, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(query.BookingViewRow), args.Error(1)
}

func (m *MockQueries) ListBookingViews(ctx context.Context, db query.DBTX, arg query.ListBookingViewsParams) ([]query.BookingViewRow, error) {
	args := m.Called(ctx, db, arg)
	rows, _ := args.Get(0).([]query.BookingViewRow)
	return rows, args.Error(1)
}

func (m *MockQueries) CountBookingViews(ctx context.Context, db query.DBTX, arg query.ListBookingViewsParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQueries) GetProperty(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Property, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(query.Property), args.Error(1)
}

func (m *MockQueries) SearchProperties(ctx context.Context, db query.DBTX, arg query.SearchPropertiesParams) ([]query.Property, error) {
	args := m.Called(ctx, db, arg)
	rows, _ := args.Get(0).([]query.Property)
	return rows, args.Error(1)
}

func (m *MockQueries) ListCalendar(ctx context.Context, db query.DBTX, propertyIDs []uuid.UUID, statuses []string) ([]query.CalendarRow, error) {
	args := m.Called(ctx, db, propertyIDs, statuses)
	rows, _ := args.Get(0).([]query.CalendarRow)
	return rows, args.Error(1)
}

func (m *MockQueries) GetBooking(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Booking, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(query.Booking), args.Error(1)
}

func (m *MockQueries) ListCompletedPaidBookings(ctx context.Context, db query.DBTX, hostID uuid.UUID, bookingIDs []uuid.UUID) ([]query.EarningRow, error) {
	args := m.Called(ctx, db, hostID, bookingIDs)
	rows, _ := args.Get(0).([]query.EarningRow)
	return rows, args.Error(1)
}

func (m *MockQueries) ListPayoutBookingIDs(ctx context.Context, db query.DBTX, bookingIDs []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, db, bookingIDs)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

func (m *MockQueries) ListConfirmedCheckingOutBefore(ctx context.Context, db query.DBTX, cutoff pgtype.Date, limit int32) ([]uuid.UUID, error) {
	args := m.Called(ctx, db, cutoff, limit)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

func (m *MockQueries) ListPayoutsByHost(ctx context.Context, db query.DBTX, hostID uuid.UUID, limit, offset int32) ([]query.Payout, error) {
	args := m.Called(ctx, db, hostID, limit, offset)
	rows, _ := args.Get(0).([]query.Payout)
	return rows, args.Error(1)
}

func (m *MockQueries) CountPayoutsByHost(ctx context.Context, db query.DBTX, hostID uuid.UUID) (int64, error) {
	args := m.Called(ctx, db, hostID)
	return args.Get(0).(int64), args.Error(1)
}

func date(y, m, d int) pgtype.Date {
	return pgtype.Date{Time: timeDate(y, m, d), Valid: true}
}
