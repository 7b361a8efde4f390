package api

import (
	"net/http"

	reqdto "sublet-booking/internal/handler/dto/request"
	resdto "sublet-booking/internal/handler/dto/response"
	"sublet-booking/internal/handler/httperr"
	"sublet-booking/internal/usecase/commands"
	"sublet-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the operator-only booking endpoints.
type AdminHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewAdminHandler(cmds commands.BookingCommands, q queries.BookingQueries) *AdminHandler {
	return &AdminHandler{cmds: cmds, q: q}
}

// @Summary Complete booking
// @Description Close a confirmed stay whose checkout grace period has passed
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/admin/bookings/{id}/complete [post]
func (h *AdminHandler) Complete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if _, err := h.cmds.Complete(c.Request.Context(), id); err != nil {
		httperr.AbortWithKind(c, err, "Complete booking failed")
		return
	}
	respondWithBooking(c, h.q, http.StatusOK, actor, id)
}

// @Summary Complete due bookings
// @Description Complete every confirmed booking whose checkout grace period has passed
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum bookings to process (default 500)"
// @Success 200 {object} resdto.CompleteDueResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/admin/bookings/complete-due [post]
func (h *AdminHandler) CompleteDue(c *gin.Context) {
	var query reqdto.CompleteDueQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	result, err := h.cmds.CompleteDue(c.Request.Context(), query.BatchSize())
	if err != nil {
		httperr.AbortWithKind(c, err, "Complete due bookings failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromCompleteDueResult(result))
}

// @Summary Record payment status
// @Description Store the payment gateway outcome of a booking
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.RecordPaymentRequest true "Payment status"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/admin/bookings/{id}/payment [post]
func (h *AdminHandler) RecordPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req reqdto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	if _, err := h.cmds.RecordPayment(c.Request.Context(), id, req.ToDomain()); err != nil {
		httperr.AbortWithKind(c, err, "Record payment failed")
		return
	}
	respondWithBooking(c, h.q, http.StatusOK, actor, id)
}
