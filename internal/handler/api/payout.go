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

type PayoutHandler struct {
	cmds commands.PayoutCommands
	q    queries.PayoutQueries
}

func NewPayoutHandler(cmds commands.PayoutCommands, q queries.PayoutQueries) *PayoutHandler {
	return &PayoutHandler{cmds: cmds, q: q}
}

// @Summary Request payout
// @Description Create one pending payout per completed, paid booking of the caller that has not been paid out yet
// @Tags payouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RequestPayoutRequest false "Restrict to these bookings"
// @Success 201 {object} resdto.PayoutSummaryResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/payouts [post]
func (h *PayoutHandler) Request(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req reqdto.RequestPayoutRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	summary, err := h.cmds.Request(c.Request.Context(), actor.ID, req.BookingIDs)
	if err != nil {
		httperr.AbortWithKind(c, err, "Payout request failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPayoutSummary(summary))
}

// @Summary List payouts
// @Description List the caller's payouts, newest first
// @Tags payouts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, 1-based"
// @Param limit query int false "Items per page (default 20, max 100)"
// @Success 200 {object} resdto.PayoutListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/payouts [get]
func (h *PayoutHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var query reqdto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortInvalidRequest(c, err)
		return
	}

	page, err := h.q.ListByHost(c.Request.Context(), actor.ID, query.ToPagination())
	if err != nil {
		httperr.AbortWithKind(c, err, "Failed to list payouts")
		return
	}
	resp, err := resdto.FromPayoutPage(page)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list payouts", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
