//go:build unit || e2e

package bootstrap_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"sublet-booking/cmd/bootstrap"
	"sublet-booking/internal/domain/user"
	resdto "sublet-booking/internal/handler/dto/response"
	"sublet-booking/internal/pkg/clock"
	"sublet-booking/internal/pkg/config"
	"sublet-booking/internal/pkg/jwt"
	"sublet-booking/internal/testutil/builder"
	"sublet-booking/internal/testutil/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

// marketplace is the cast of a booking walkthrough: one listing, its host,
// two guests competing for the same dates and an operator.
type marketplace struct {
	propertyID uuid.UUID
	hostID     uuid.UUID
	guestID    uuid.UUID
	rivalID    uuid.UUID
	operatorID uuid.UUID
}

type testApp struct {
	router *gin.Engine
	tokens *jwt.Service
	clock  *clock.MockClock
}

func startApp(t *testing.T, cfg config.Config) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ta := &testApp{clock: clock.NewMockClock(builder.Today)}
	app := fx.New(
		bootstrap.Module(cfg),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		fx.Decorate(func(clock.Clock) clock.Clock { return ta.clock }),
		fx.Populate(&ta.router, &ta.tokens),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx))
	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		assert.NoError(t, app.Stop(stopCtx))
	})
	return ta
}

func (ta *testApp) token(t *testing.T, id uuid.UUID, role user.Role) string {
	t.Helper()
	tok, err := ta.tokens.GenerateToken(id, role)
	require.NoError(t, err)
	return tok
}

// runBookingLifecycle drives one stay from quote to payout through HTTP.
func runBookingLifecycle(t *testing.T, ta *testApp, m marketplace) {
	guest := ta.token(t, m.guestID, user.RoleUser)
	rival := ta.token(t, m.rivalID, user.RoleUser)
	host := ta.token(t, m.hostID, user.RoleUser)
	operator := ta.token(t, m.operatorID, user.RoleOperator)
	prop := m.propertyID.String()

	var quote resdto.QuoteResponse
	w := httptest.PerformRequest(t, ta.router, http.MethodGet,
		"/api/properties/"+prop+"/quote?check_in=2026-01-01&check_out=2026-01-15&guests=2", nil, guest)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &quote)
	assert.Equal(t, 14, quote.Nights)
	assert.Equal(t, int64(69600), quote.TotalCents)
	assert.True(t, quote.Available)

	var created resdto.BookingResponse
	w = httptest.PerformRequest(t, ta.router, http.MethodPost, "/api/bookings", map[string]any{
		"property_id":    m.propertyID,
		"check_in_date":  "2026-01-01",
		"check_out_date": "2026-01-15",
		"guest_count":    2,
	}, guest)
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "pending", created.BookingStatus)
	assert.Equal(t, int64(69600), created.TotalCents)
	id := created.ID.String()

	w = httptest.PerformRequest(t, ta.router, http.MethodPost, "/api/bookings", map[string]any{
		"property_id":    m.propertyID,
		"check_in_date":  "2026-01-10",
		"check_out_date": "2026-01-31",
		"guest_count":    1,
	}, rival)
	httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "not available")

	w = httptest.PerformRequest(t, ta.router, http.MethodGet, "/api/bookings/"+id, nil, rival)
	httptest.AssertErrorResponse(t, w, http.StatusForbidden, "not allowed")

	w = httptest.PerformRequest(t, ta.router, http.MethodPost, "/api/bookings/"+id+"/accept", nil, guest)
	httptest.AssertErrorResponse(t, w, http.StatusForbidden, "only the host")

	var accepted resdto.BookingResponse
	w = httptest.PerformRequest(t, ta.router, http.MethodPost, "/api/bookings/"+id+"/accept", nil, host)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &accepted)
	assert.Equal(t, "confirmed", accepted.BookingStatus)
	assert.NotNil(t, accepted.ConfirmedAt)

	w = httptest.PerformRequest(t, ta.router, http.MethodPost, "/api/admin/bookings/"+id+"/complete", nil, operator)
	httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "grace period")

	w = httptest.PerformRequest(t, ta.router, http.MethodPost, "/api/admin/bookings/complete-due", nil, host)
	httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")

	ta.clock.Set(time.Date(2026, 1, 16, 8, 0, 0, 0, time.UTC))
	var due resdto.CompleteDueResponse
	w = httptest.PerformRequest(t, ta.router, http.MethodPost, "/api/admin/bookings/complete-due", nil, operator)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &due)
	assert.Equal(t, []uuid.UUID{created.ID}, due.Completed)
	assert.Empty(t, due.Failed)

	w = httptest.PerformRequest(t, ta.router, http.MethodPost, "/api/payouts", nil, host)
	httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "no eligible bookings")

	var paid resdto.BookingResponse
	w = httptest.PerformRequest(t, ta.router, http.MethodPost, "/api/admin/bookings/"+id+"/payment",
		map[string]any{"payment_status": "completed"}, operator)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &paid)
	assert.Equal(t, "completed", paid.BookingStatus)
	assert.Equal(t, "completed", paid.PaymentStatus)

	var summary resdto.PayoutSummaryResponse
	w = httptest.PerformRequest(t, ta.router, http.MethodPost, "/api/payouts", nil, host)
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &summary)
	require.Len(t, summary.Payouts, 1)
	assert.Equal(t, int64(64000), summary.TotalAmountCents)
	assert.Equal(t, int64(6400), summary.TotalPlatformFeeCents)
	assert.Equal(t, int64(57600), summary.TotalNetAmountCents)

	w = httptest.PerformRequest(t, ta.router, http.MethodPost, "/api/payouts",
		map[string]any{"booking_ids": []uuid.UUID{created.ID}}, host)
	httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "no eligible bookings")

	var payouts resdto.PayoutListResponse
	w = httptest.PerformRequest(t, ta.router, http.MethodGet, "/api/payouts", nil, host)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &payouts)
	require.Len(t, payouts.Items, 1)
	assert.Equal(t, created.ID, payouts.Items[0].BookingID)
	assert.Equal(t, "pending", payouts.Items[0].PayoutStatus)

	var list resdto.BookingListResponse
	w = httptest.PerformRequest(t, ta.router, http.MethodGet, "/api/bookings?role=host&status=completed", nil, host)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, created.ID, list.Items[0].ID)
	assert.NotNil(t, list.Items[0].PropertyTitle)
}
