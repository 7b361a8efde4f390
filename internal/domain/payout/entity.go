package payout

import (
	"time"

	"sublet-booking/internal/pkg/errs"
	"sublet-booking/internal/pkg/money"

	"github.com/google/uuid"
)

var (
	ErrNoEligibleBookings = errs.BadRequest("no eligible bookings for payout")
	ErrNonPositiveNet     = errs.BadRequest("payout net amount must be positive")
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusPaid       Status = "paid"
	StatusFailed     Status = "failed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusPaid, StatusFailed:
		return true
	default:
		return false
	}
}

// Earning is what a completed, paid booking contributes to its host.
type Earning struct {
	BookingID        uuid.UUID
	HostID           uuid.UUID
	SubtotalCents    int64
	CleaningFeeCents int64
}

type Payout struct {
	ID               uuid.UUID
	HostID           uuid.UUID
	BookingID        uuid.UUID
	AmountCents      int64
	PlatformFeeCents int64
	NetAmountCents   int64
	Status           Status
	ScheduledFor     time.Time
	CreatedAt        time.Time
}

type Summary struct {
	Payouts               []*Payout
	TotalAmountCents      int64
	TotalPlatformFeeCents int64
	TotalNetAmountCents   int64
}

type Calculator struct {
	PlatformFeePercent int64
	Delay              time.Duration
}

func NewCalculator(platformFeePercent int64, delay time.Duration) *Calculator {
	return &Calculator{PlatformFeePercent: platformFeePercent, Delay: delay}
}

// For prices a single booking: the host earns subtotal plus cleaning, minus
// the platform's cut.
func (c *Calculator) For(e Earning, now time.Time) *Payout {
	amount := e.SubtotalCents + e.CleaningFeeCents
	fee := money.Percent(amount, c.PlatformFeePercent)
	return &Payout{
		ID:               uuid.New(),
		HostID:           e.HostID,
		BookingID:        e.BookingID,
		AmountCents:      amount,
		PlatformFeeCents: fee,
		NetAmountCents:   amount - fee,
		Status:           StatusPending,
		ScheduledFor:     now.Add(c.Delay),
		CreatedAt:        now,
	}
}

// Summarize builds one payout per earning and rejects an empty or
// non-positive batch before anything is persisted.
func (c *Calculator) Summarize(earnings []Earning, now time.Time) (*Summary, error) {
	if len(earnings) == 0 {
		return nil, ErrNoEligibleBookings
	}
	s := &Summary{Payouts: make([]*Payout, 0, len(earnings))}
	for _, e := range earnings {
		p := c.For(e, now)
		s.Payouts = append(s.Payouts, p)
		s.TotalAmountCents += p.AmountCents
		s.TotalPlatformFeeCents += p.PlatformFeeCents
		s.TotalNetAmountCents += p.NetAmountCents
	}
	if s.TotalNetAmountCents <= 0 {
		return nil, ErrNonPositiveNet
	}
	return s, nil
}
