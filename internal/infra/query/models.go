package query

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Property struct {
	ID                   uuid.UUID
	HostID               uuid.UUID
	Title                string
	City                 string
	MonthlyPriceCents    int64
	CleaningFeeCents     int64
	SecurityDepositCents int64
	MinimumStayWeeks     int32
	MaximumStayMonths    int32
	MaxGuests            int32
	Status               string
	CreatedAt            pgtype.Timestamptz
	UpdatedAt            pgtype.Timestamptz
}

type Booking struct {
	ID                   uuid.UUID
	PropertyID           uuid.UUID
	GuestID              uuid.UUID
	HostID               uuid.UUID
	CheckInDate          pgtype.Date
	CheckOutDate         pgtype.Date
	Nights               int32
	GuestCount           int32
	DailyRateCents       int64
	SubtotalCents        int64
	ServiceFeeCents      int64
	CleaningFeeCents     int64
	SecurityDepositCents int64
	TotalCents           int64
	BookingStatus        string
	PaymentStatus        string
	CancellationReason   pgtype.Text
	CancelledBy          pgtype.UUID
	CancelledAt          pgtype.Timestamptz
	ConfirmedAt          pgtype.Timestamptz
	CompletedAt          pgtype.Timestamptz
	CreatedAt            pgtype.Timestamptz
	UpdatedAt            pgtype.Timestamptz
}

type Payout struct {
	ID               uuid.UUID
	HostID           uuid.UUID
	BookingID        uuid.UUID
	AmountCents      int64
	PlatformFeeCents int64
	NetAmountCents   int64
	PayoutStatus     string
	ScheduledFor     pgtype.Timestamptz
	CreatedAt        pgtype.Timestamptz
}

// CalendarRow is the slice of a booking availability checks need.
type CalendarRow struct {
	ID            uuid.UUID
	PropertyID    uuid.UUID
	CheckInDate   pgtype.Date
	CheckOutDate  pgtype.Date
	BookingStatus string
}

// BookingViewRow is a booking with best-effort display data from LEFT JOINs.
type BookingViewRow struct {
	Booking
	PropertyTitle pgtype.Text
	PropertyCity  pgtype.Text
	GuestName     pgtype.Text
	HostName      pgtype.Text
}
