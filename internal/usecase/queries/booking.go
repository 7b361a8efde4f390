package queries

//go:generate mockgen -source=booking.go -destination=../../mock/queriesmock/booking.go -package=queriesmock

import (
	"context"
	"time"

	"sublet-booking/internal/domain/booking"
	"sublet-booking/internal/domain/user"
	"sublet-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.NotFound("booking not found")
	ErrBookingAccess   = errs.Forbidden("not allowed to view this booking")
	ErrInvalidRole     = errs.BadRequest("role must be one of guest, host, all")
	ErrInvalidStatus   = errs.BadRequest("unknown booking status")
)

// BookingView is a booking plus best-effort display data; the display
// fields are nil when the related record cannot be found.
type BookingView struct {
	ID                   uuid.UUID  `json:"id"`
	PropertyID           uuid.UUID  `json:"property_id"`
	PropertyTitle        *string    `json:"property_title"`
	PropertyCity         *string    `json:"property_city"`
	GuestID              uuid.UUID  `json:"guest_id"`
	GuestName            *string    `json:"guest_name"`
	HostID               uuid.UUID  `json:"host_id"`
	HostName             *string    `json:"host_name"`
	CheckInDate          string     `json:"check_in_date"`
	CheckOutDate         string     `json:"check_out_date"`
	Nights               int        `json:"nights"`
	GuestCount           int        `json:"guest_count"`
	DailyRateCents       int64      `json:"daily_rate_cents"`
	SubtotalCents        int64      `json:"subtotal_cents"`
	ServiceFeeCents      int64      `json:"service_fee_cents"`
	CleaningFeeCents     int64      `json:"cleaning_fee_cents"`
	SecurityDepositCents int64      `json:"security_deposit_cents"`
	TotalCents           int64      `json:"total_cents"`
	BookingStatus        string     `json:"booking_status"`
	PaymentStatus        string     `json:"payment_status"`
	CancellationReason   *string    `json:"cancellation_reason"`
	CancelledBy          *uuid.UUID `json:"cancelled_by"`
	CancelledAt          *time.Time `json:"cancelled_at"`
	ConfirmedAt          *time.Time `json:"confirmed_at"`
	CompletedAt          *time.Time `json:"completed_at"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

type BookingRole string

const (
	BookingRoleGuest BookingRole = "guest"
	BookingRoleHost  BookingRole = "host"
	BookingRoleAll   BookingRole = "all"
)

func (r BookingRole) IsValid() bool {
	return r == BookingRoleGuest || r == BookingRoleHost || r == BookingRoleAll
}

func (r BookingRole) AsGuest() bool { return r == BookingRoleGuest || r == BookingRoleAll }
func (r BookingRole) AsHost() bool  { return r == BookingRoleHost || r == BookingRoleAll }

type BookingListFilter struct {
	Role   BookingRole
	Status *booking.Status
	Pagination
}

// BookingViewFilter is what a read store needs to run one page query.
type BookingViewFilter struct {
	UserID  uuid.UUID
	AsGuest bool
	AsHost  bool
	Status  *booking.Status
	Limit   int
	Offset  int
}

type BookingPage struct {
	Items []*BookingView `json:"items"`
	PageInfo
}

// Actor is the authenticated caller of a query.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, filter BookingViewFilter) ([]*BookingView, int64, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, userID uuid.UUID, filter BookingListFilter) (*BookingPage, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

// GetByID is visible to the booking's guest and host, and to operators.
func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*BookingView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if v.GuestID != actor.ID && v.HostID != actor.ID && !actor.Role.AtLeast(user.RoleOperator) {
		return nil, ErrBookingAccess
	}
	return v, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, userID uuid.UUID, filter BookingListFilter) (*BookingPage, error) {
	if filter.Role == "" {
		filter.Role = BookingRoleAll
	}
	if !filter.Role.IsValid() {
		return nil, ErrInvalidRole
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	p := filter.Pagination.Normalize()

	items, total, err := q.store.List(ctx, BookingViewFilter{
		UserID:  userID,
		AsGuest: filter.Role.AsGuest(),
		AsHost:  filter.Role.AsHost(),
		Status:  filter.Status,
		Limit:   p.Limit,
		Offset:  p.Offset(),
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*BookingView{}
	}
	return &BookingPage{Items: items, PageInfo: NewPageInfo(p, total)}, nil
}
