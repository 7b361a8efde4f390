package readstore

import (
	"context"

	"sublet-booking/internal/domain/booking"
	"sublet-booking/internal/domain/property"
	"sublet-booking/internal/infra"
	"sublet-booking/internal/infra/query"
	"sublet-booking/internal/infra/repository/converter"
	"sublet-booking/internal/pkg/pgconv"
	"sublet-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PropertyReadQueries interface {
	GetProperty(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Property, error)
	SearchProperties(ctx context.Context, db query.DBTX, arg query.SearchPropertiesParams) ([]query.Property, error)
	ListCalendar(ctx context.Context, db query.DBTX, propertyIDs []uuid.UUID, statuses []string) ([]query.CalendarRow, error)
}

type PropertyReadStore struct {
	queries PropertyReadQueries
	db      query.DBTX
}

func NewPropertyReadStore(queries PropertyReadQueries, db query.DBTX) *PropertyReadStore {
	return &PropertyReadStore{
		queries: queries,
		db:      db,
	}
}

var _ queries.PropertyReadStore = (*PropertyReadStore)(nil)

func (r *PropertyReadStore) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	row, err := r.queries.GetProperty(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get property", err)
	}
	return converter.PropertyFromRow(row), nil
}

func (r *PropertyReadStore) SearchActive(ctx context.Context, filter queries.PropertySearchFilter) ([]*property.Property, error) {
	params := query.SearchPropertiesParams{
		MinGuests: int32(filter.MinGuests),
		City:      pgconv.StringPtrToPgtype(filter.City),
	}
	if filter.MaxMonthlyPriceCents != nil {
		params.MaxMonthlyPriceCents = pgtype.Int8{Int64: *filter.MaxMonthlyPriceCents, Valid: true}
	}

	rows, err := r.queries.SearchProperties(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search properties", err)
	}
	props := make([]*property.Property, 0, len(rows))
	for _, row := range rows {
		props = append(props, converter.PropertyFromRow(row))
	}
	return props, nil
}

func (r *PropertyReadStore) Calendar(ctx context.Context, propertyIDs []uuid.UUID) (map[uuid.UUID][]booking.Occupied, error) {
	return loadCalendar(ctx, r.queries, r.db, propertyIDs, booking.ActiveStatuses)
}

type calendarQueries interface {
	ListCalendar(ctx context.Context, db query.DBTX, propertyIDs []uuid.UUID, statuses []string) ([]query.CalendarRow, error)
}

func loadCalendar(ctx context.Context, q calendarQueries, db query.DBTX, propertyIDs []uuid.UUID, statuses []booking.Status) (map[uuid.UUID][]booking.Occupied, error) {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = s.String()
	}
	rows, err := q.ListCalendar(ctx, db, propertyIDs, names)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booking calendar", err)
	}

	cal := make(map[uuid.UUID][]booking.Occupied, len(propertyIDs))
	for _, row := range rows {
		o, err := converter.OccupiedFromRow(row)
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt booking dates", err)
		}
		cal[row.PropertyID] = append(cal[row.PropertyID], o)
	}
	return cal, nil
}
