package api

import (
	"context"
	"net/http"

	reqdto "sublet-booking/internal/handler/dto/request"
	resdto "sublet-booking/internal/handler/dto/response"
	"sublet-booking/internal/handler/httperr"
	"sublet-booking/internal/usecase/commands"
	"sublet-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Request a stay at a property. The booking starts pending until the host responds.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), req.ToCommand(), actor.ID)
	if err != nil {
		httperr.AbortWithKind(c, err, "Create booking failed")
		return
	}
	respondWithBooking(c, h.q, http.StatusCreated, actor, result.BookingID)
}

// @Summary List bookings
// @Description List the caller's bookings as guest, host or both
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param role query string false "guest, host or all (default all)"
// @Param status query string false "pending, confirmed, cancelled or completed"
// @Param page query int false "Page number, 1-based"
// @Param limit query int false "Items per page (default 20, max 100)"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var query reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortInvalidRequest(c, err)
		return
	}

	page, err := h.q.List(c.Request.Context(), actor.ID, query.ToFilter())
	if err != nil {
		httperr.AbortWithKind(c, err, "Failed to list bookings")
		return
	}
	resp, err := resdto.FromBookingPage(page)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list bookings", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get booking
// @Description Get a booking visible to its guest, its host or an operator
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	respondWithBooking(c, h.q, http.StatusOK, actor, id)
}

// @Summary Accept booking
// @Description Host confirms a pending booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id}/accept [post]
func (h *BookingHandler) Accept(c *gin.Context) {
	h.transition(c, "Accept booking failed", func(ctx context.Context, id uuid.UUID, actor queries.Actor, _ string) error {
		_, err := h.cmds.Accept(ctx, id, actor.ID)
		return err
	})
}

// @Summary Decline booking
// @Description Host declines a pending booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ReasonRequest false "Optional reason"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id}/decline [post]
func (h *BookingHandler) Decline(c *gin.Context) {
	h.transition(c, "Decline booking failed", func(ctx context.Context, id uuid.UUID, actor queries.Actor, reason string) error {
		_, err := h.cmds.Decline(ctx, id, actor.ID, reason)
		return err
	})
}

// @Summary Cancel booking
// @Description Guest or host cancels a pending or confirmed booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ReasonRequest false "Optional reason"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, "Cancel booking failed", func(ctx context.Context, id uuid.UUID, actor queries.Actor, reason string) error {
		_, err := h.cmds.Cancel(ctx, id, actor.ID, reason)
		return err
	})
}

type transitionFunc func(ctx context.Context, id uuid.UUID, actor queries.Actor, reason string) error

func (h *BookingHandler) transition(c *gin.Context, failMsg string, apply transitionFunc) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req reqdto.ReasonRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	if err := apply(c.Request.Context(), id, actor, req.Reason); err != nil {
		httperr.AbortWithKind(c, err, failMsg)
		return
	}
	respondWithBooking(c, h.q, http.StatusOK, actor, id)
}

func respondWithBooking(c *gin.Context, q queries.BookingQueries, status int, actor queries.Actor, id uuid.UUID) {
	view, err := q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		httperr.AbortWithKind(c, err, "Failed to load booking")
		return
	}
	resp, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking", nil)
		return
	}
	c.JSON(status, resp)
}
