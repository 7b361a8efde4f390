package converter

import (
	"sublet-booking/internal/domain/booking"
	"sublet-booking/internal/domain/payout"
	"sublet-booking/internal/domain/property"
	"sublet-booking/internal/infra/query"
	"sublet-booking/internal/pkg/errs"
	"sublet-booking/internal/pkg/pgconv"
)

func BookingToInsertParams(b *booking.Booking) query.InsertBookingParams {
	price := b.Price()
	return query.InsertBookingParams{
		ID:                   b.ID(),
		PropertyID:           b.PropertyID(),
		GuestID:              b.GuestID(),
		HostID:               b.HostID(),
		CheckInDate:          pgconv.DateToPgtype(b.Dates().CheckIn()),
		CheckOutDate:         pgconv.DateToPgtype(b.Dates().CheckOut()),
		Nights:               int32(b.Nights()),
		GuestCount:           int32(b.GuestCount()),
		DailyRateCents:       price.DailyRateCents,
		SubtotalCents:        price.SubtotalCents,
		ServiceFeeCents:      price.ServiceFeeCents,
		CleaningFeeCents:     price.CleaningFeeCents,
		SecurityDepositCents: price.SecurityDepositCents,
		TotalCents:           price.TotalCents,
		BookingStatus:        b.Status().String(),
		PaymentStatus:        b.PaymentStatus().String(),
		CreatedAt:            pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:            pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

func BookingToStatusParams(b *booking.Booking, expected booking.Status) query.UpdateBookingStatusParams {
	return query.UpdateBookingStatusParams{
		ID:                 b.ID(),
		ExpectedStatus:     expected.String(),
		BookingStatus:      b.Status().String(),
		CancellationReason: pgconv.StringPtrToPgtype(b.CancellationReason()),
		CancelledBy:        pgconv.UUIDPtrToPgtype(b.CancelledBy()),
		CancelledAt:        pgconv.TimePtrToPgtype(b.CancelledAt()),
		ConfirmedAt:        pgconv.TimePtrToPgtype(b.ConfirmedAt()),
		CompletedAt:        pgconv.TimePtrToPgtype(b.CompletedAt()),
		UpdatedAt:          pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

func BookingSnapshotFromRow(row query.Booking) booking.Snapshot {
	return booking.Snapshot{
		ID:         row.ID,
		PropertyID: row.PropertyID,
		GuestID:    row.GuestID,
		HostID:     row.HostID,
		CheckIn:    pgconv.DateFromPgtype(row.CheckInDate),
		CheckOut:   pgconv.DateFromPgtype(row.CheckOutDate),
		GuestCount: int(row.GuestCount),
		Price: booking.PriceBreakdown{
			DailyRateCents:       row.DailyRateCents,
			Nights:               int(row.Nights),
			SubtotalCents:        row.SubtotalCents,
			ServiceFeeCents:      row.ServiceFeeCents,
			CleaningFeeCents:     row.CleaningFeeCents,
			SecurityDepositCents: row.SecurityDepositCents,
			TotalCents:           row.TotalCents,
		},
		Status:             booking.Status(row.BookingStatus),
		PaymentStatus:      booking.PaymentStatus(row.PaymentStatus),
		CancellationReason: pgconv.StringPtrFromPgtype(row.CancellationReason),
		CancelledBy:        pgconv.UUIDPtrFromPgtype(row.CancelledBy),
		CancelledAt:        pgconv.TimePtrFromPgtype(row.CancelledAt),
		ConfirmedAt:        pgconv.TimePtrFromPgtype(row.ConfirmedAt),
		CompletedAt:        pgconv.TimePtrFromPgtype(row.CompletedAt),
		CreatedAt:          row.CreatedAt.Time.UTC(),
		UpdatedAt:          row.UpdatedAt.Time.UTC(),
	}
}

func BookingFromRow(row query.Booking) (*booking.Booking, error) {
	return booking.Reconstruct(BookingSnapshotFromRow(row))
}

func PropertyFromRow(row query.Property) *property.Property {
	return &property.Property{
		ID:                   row.ID,
		HostID:               row.HostID,
		Title:                row.Title,
		City:                 row.City,
		MonthlyPriceCents:    row.MonthlyPriceCents,
		CleaningFeeCents:     row.CleaningFeeCents,
		SecurityDepositCents: row.SecurityDepositCents,
		MinimumStayWeeks:     int(row.MinimumStayWeeks),
		MaximumStayMonths:    int(row.MaximumStayMonths),
		MaxGuests:            int(row.MaxGuests),
		Status:               property.Status(row.Status),
		CreatedAt:            row.CreatedAt.Time.UTC(),
		UpdatedAt:            row.UpdatedAt.Time.UTC(),
	}
}

func OccupiedFromRow(row query.CalendarRow) (booking.Occupied, error) {
	dates, err := booking.NewDateRange(pgconv.DateFromPgtype(row.CheckInDate), pgconv.DateFromPgtype(row.CheckOutDate))
	if err != nil {
		return booking.Occupied{}, errs.Wrapf(err, "booking %s", row.ID)
	}
	return booking.Occupied{
		BookingID: row.ID.String(),
		Dates:     dates,
		Status:    booking.Status(row.BookingStatus),
	}, nil
}

func PayoutToInsertParams(p *payout.Payout) query.InsertPayoutParams {
	return query.InsertPayoutParams{
		ID:               p.ID,
		HostID:           p.HostID,
		BookingID:        p.BookingID,
		AmountCents:      p.AmountCents,
		PlatformFeeCents: p.PlatformFeeCents,
		NetAmountCents:   p.NetAmountCents,
		PayoutStatus:     p.Status.String(),
		ScheduledFor:     pgconv.TimeToPgtype(p.ScheduledFor),
		CreatedAt:        pgconv.TimeToPgtype(p.CreatedAt),
	}
}

func EarningFromRow(row query.EarningRow) payout.Earning {
	return payout.Earning{
		BookingID:        row.ID,
		HostID:           row.HostID,
		SubtotalCents:    row.SubtotalCents,
		CleaningFeeCents: row.CleaningFeeCents,
	}
}
