package queries

//go:generate mockgen -source=property.go -destination=../../mock/queriesmock/property.go -package=queriesmock

import (
	"context"

	"sublet-booking/internal/domain/booking"
	"sublet-booking/internal/domain/property"
	"sublet-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrPropertyNotFound     = errs.NotFound("property not found")
	ErrIncompleteDateFilter = errs.BadRequest("check_in and check_out must be given together")
)

type DateRangeView struct {
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

type AvailabilityView struct {
	PropertyID   uuid.UUID       `json:"property_id"`
	CheckInDate  string          `json:"check_in_date"`
	CheckOutDate string          `json:"check_out_date"`
	Nights       int             `json:"nights"`
	Available    bool            `json:"available"`
	Conflicts    []DateRangeView `json:"conflicts"`
}

type QuoteView struct {
	PropertyID           uuid.UUID `json:"property_id"`
	CheckInDate          string    `json:"check_in_date"`
	CheckOutDate         string    `json:"check_out_date"`
	Nights               int       `json:"nights"`
	GuestCount           int       `json:"guest_count"`
	DailyRateCents       int64     `json:"daily_rate_cents"`
	SubtotalCents        int64     `json:"subtotal_cents"`
	ServiceFeeCents      int64     `json:"service_fee_cents"`
	CleaningFeeCents     int64     `json:"cleaning_fee_cents"`
	SecurityDepositCents int64     `json:"security_deposit_cents"`
	TotalCents           int64     `json:"total_cents"`
	Available            bool      `json:"available"`
}

type PropertyListItem struct {
	ID                   uuid.UUID `json:"id"`
	HostID               uuid.UUID `json:"host_id"`
	Title                string    `json:"title"`
	City                 string    `json:"city"`
	MonthlyPriceCents    int64     `json:"monthly_price_cents"`
	CleaningFeeCents     int64     `json:"cleaning_fee_cents"`
	SecurityDepositCents int64     `json:"security_deposit_cents"`
	MinimumStayWeeks     int       `json:"minimum_stay_weeks"`
	MaximumStayMonths    int       `json:"maximum_stay_months"`
	MaxGuests            int       `json:"max_guests"`
}

type PropertyPage struct {
	Items []*PropertyListItem `json:"items"`
	PageInfo
}

type QuoteRequest struct {
	PropertyID uuid.UUID
	GuestID    uuid.UUID
	CheckIn    string
	CheckOut   string
	GuestCount int
}

type SearchCriteria struct {
	CheckIn              string
	CheckOut             string
	Guests               int
	City                 string
	MaxMonthlyPriceCents *int64
	Pagination
}

// PropertySearchFilter holds the static listing filters a read store applies.
type PropertySearchFilter struct {
	MinGuests            int
	City                 *string
	MaxMonthlyPriceCents *int64
}

type PropertyReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error)
	SearchActive(ctx context.Context, filter PropertySearchFilter) ([]*property.Property, error)
	// Calendar returns the pending and confirmed bookings of each property.
	Calendar(ctx context.Context, propertyIDs []uuid.UUID) (map[uuid.UUID][]booking.Occupied, error)
}

type PropertyQueries interface {
	Availability(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut string) (*AvailabilityView, error)
	Quote(ctx context.Context, req QuoteRequest) (*QuoteView, error)
	Search(ctx context.Context, criteria SearchCriteria) (*PropertyPage, error)
}

type propertyQueriesImpl struct {
	store   PropertyReadStore
	factory *booking.Factory
}

func NewPropertyQueries(store PropertyReadStore, factory *booking.Factory) PropertyQueries {
	return &propertyQueriesImpl{store: store, factory: factory}
}

func (q *propertyQueriesImpl) Availability(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut string) (*AvailabilityView, error) {
	dates, err := booking.ParseDateRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	prop, err := q.findProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	cal, err := q.store.Calendar(ctx, []uuid.UUID{prop.ID})
	if err != nil {
		return nil, err
	}

	conflicts := booking.Conflicts(dates, cal[prop.ID])
	view := &AvailabilityView{
		PropertyID:   prop.ID,
		CheckInDate:  dates.CheckIn().Format(booking.DateLayout),
		CheckOutDate: dates.CheckOut().Format(booking.DateLayout),
		Nights:       dates.Nights(),
		Available:    prop.IsActive() && len(conflicts) == 0,
		Conflicts:    make([]DateRangeView, 0, len(conflicts)),
	}
	for _, c := range conflicts {
		view.Conflicts = append(view.Conflicts, DateRangeView{
			CheckInDate:  c.Dates.CheckIn().Format(booking.DateLayout),
			CheckOutDate: c.Dates.CheckOut().Format(booking.DateLayout),
		})
	}
	return view, nil
}

// Quote prices a stay with the same rules booking creation applies, without
// reserving anything.
func (q *propertyQueriesImpl) Quote(ctx context.Context, req QuoteRequest) (*QuoteView, error) {
	dates, err := booking.ParseDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	prop, err := q.findProperty(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	price, err := q.factory.Quote(prop, booking.StayRequest{GuestID: req.GuestID, Dates: dates, GuestCount: req.GuestCount})
	if err != nil {
		return nil, err
	}
	cal, err := q.store.Calendar(ctx, []uuid.UUID{prop.ID})
	if err != nil {
		return nil, err
	}

	return &QuoteView{
		PropertyID:           prop.ID,
		CheckInDate:          dates.CheckIn().Format(booking.DateLayout),
		CheckOutDate:         dates.CheckOut().Format(booking.DateLayout),
		Nights:               price.Nights,
		GuestCount:           req.GuestCount,
		DailyRateCents:       price.DailyRateCents,
		SubtotalCents:        price.SubtotalCents,
		ServiceFeeCents:      price.ServiceFeeCents,
		CleaningFeeCents:     price.CleaningFeeCents,
		SecurityDepositCents: price.SecurityDepositCents,
		TotalCents:           price.TotalCents,
		Available:            booking.IsAvailable(dates, cal[prop.ID]),
	}, nil
}

func (q *propertyQueriesImpl) Search(ctx context.Context, criteria SearchCriteria) (*PropertyPage, error) {
	var dates *booking.DateRange
	switch {
	case criteria.CheckIn != "" && criteria.CheckOut != "":
		r, err := booking.ParseDateRange(criteria.CheckIn, criteria.CheckOut)
		if err != nil {
			return nil, err
		}
		dates = &r
	case criteria.CheckIn != "" || criteria.CheckOut != "":
		return nil, ErrIncompleteDateFilter
	}

	filter := PropertySearchFilter{MinGuests: max(criteria.Guests, 1), MaxMonthlyPriceCents: criteria.MaxMonthlyPriceCents}
	if criteria.City != "" {
		filter.City = &criteria.City
	}
	props, err := q.store.SearchActive(ctx, filter)
	if err != nil {
		return nil, err
	}

	if dates != nil && len(props) > 0 {
		ids := make([]uuid.UUID, 0, len(props))
		for _, p := range props {
			ids = append(ids, p.ID)
		}
		cal, err := q.store.Calendar(ctx, ids)
		if err != nil {
			return nil, err
		}
		free := make([]*property.Property, 0, len(props))
		for _, p := range props {
			if booking.IsAvailable(*dates, cal[p.ID]) {
				free = append(free, p)
			}
		}
		props = free
	}

	p := criteria.Pagination.Normalize()
	page := pageOf(props, p)
	items := make([]*PropertyListItem, 0, len(page))
	for _, prop := range page {
		items = append(items, toPropertyListItem(prop))
	}
	return &PropertyPage{Items: items, PageInfo: NewPageInfo(p, int64(len(props)))}, nil
}

func (q *propertyQueriesImpl) findProperty(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	prop, err := q.store.FindByID(ctx, id)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return prop, nil
}

func toPropertyListItem(p *property.Property) *PropertyListItem {
	return &PropertyListItem{
		ID:                   p.ID,
		HostID:               p.HostID,
		Title:                p.Title,
		City:                 p.City,
		MonthlyPriceCents:    p.MonthlyPriceCents,
		CleaningFeeCents:     p.CleaningFeeCents,
		SecurityDepositCents: p.SecurityDepositCents,
		MinimumStayWeeks:     p.MinimumStayWeeks,
		MaximumStayMonths:    p.MaximumStayMonths,
		MaxGuests:            p.MaxGuests,
	}
}
