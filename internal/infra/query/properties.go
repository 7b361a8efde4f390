package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const propertyColumns = `id, host_id, title, city, monthly_price_cents, cleaning_fee_cents,
       security_deposit_cents, minimum_stay_weeks, maximum_stay_months, max_guests, status,
       created_at, updated_at`

func scanProperty(row pgx.Row) (Property, error) {
	var i Property
	err := row.Scan(
		&i.ID,
		&i.HostID,
		&i.Title,
		&i.City,
		&i.MonthlyPriceCents,
		&i.CleaningFeeCents,
		&i.SecurityDepositCents,
		&i.MinimumStayWeeks,
		&i.MaximumStayMonths,
		&i.MaxGuests,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getProperty = `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

func (q *Queries) GetProperty(ctx context.Context, db DBTX, id uuid.UUID) (Property, error) {
	return scanProperty(db.QueryRow(ctx, getProperty, id))
}

const searchProperties = `SELECT ` + propertyColumns + `
FROM properties
WHERE status = 'active'
  AND max_guests >= $1
  AND ($2::text IS NULL OR lower(city) = lower($2::text))
  AND ($3::bigint IS NULL OR monthly_price_cents <= $3::bigint)
ORDER BY created_at DESC, id`

type SearchPropertiesParams struct {
	MinGuests            int32
	City                 pgtype.Text
	MaxMonthlyPriceCents pgtype.Int8
}

// SearchProperties returns every active listing matching the static filters.
// Calendar filtering and paging happen in the caller.
func (q *Queries) SearchProperties(ctx context.Context, db DBTX, arg SearchPropertiesParams) ([]Property, error) {
	rows, err := db.Query(ctx, searchProperties, arg.MinGuests, arg.City, arg.MaxMonthlyPriceCents)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Property
	for rows.Next() {
		i, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
