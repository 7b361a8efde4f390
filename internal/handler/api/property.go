package api

import (
	"net/http"

	reqdto "sublet-booking/internal/handler/dto/request"
	resdto "sublet-booking/internal/handler/dto/response"
	"sublet-booking/internal/handler/httperr"
	"sublet-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	q queries.PropertyQueries
}

func NewPropertyHandler(q queries.PropertyQueries) *PropertyHandler {
	return &PropertyHandler{q: q}
}

// @Summary Search properties
// @Description Active properties matching capacity, city and price, excluding those booked over the given dates
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param check_in query string false "YYYY-MM-DD, requires check_out"
// @Param check_out query string false "YYYY-MM-DD, requires check_in"
// @Param guests query int false "Minimum capacity"
// @Param city query string false "City, case-insensitive"
// @Param max_monthly_price_cents query int false "Maximum monthly price"
// @Param page query int false "Page number, 1-based"
// @Param limit query int false "Items per page (default 20, max 100)"
// @Success 200 {object} resdto.PropertyListResponse
// @Failure 400 {object} httperr.Response
// @Router /api/properties/search [get]
func (h *PropertyHandler) Search(c *gin.Context) {
	var query reqdto.SearchPropertiesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	page, err := h.q.Search(c.Request.Context(), query.ToCriteria())
	if err != nil {
		httperr.AbortWithKind(c, err, "Property search failed")
		return
	}
	resp, err := resdto.FromPropertyPage(page)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Property search failed", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Property availability
// @Description Whether a property is free over a date range, with the conflicting stays
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param check_in query string true "YYYY-MM-DD"
// @Param check_out query string true "YYYY-MM-DD"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/properties/{id}/availability [get]
func (h *PropertyHandler) Availability(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var query reqdto.StayQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	view, err := h.q.Availability(c.Request.Context(), id, query.CheckIn, query.CheckOut)
	if err != nil {
		httperr.AbortWithKind(c, err, "Availability check failed")
		return
	}
	resp, err := resdto.FromAvailabilityView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Availability check failed", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Price quote
// @Description Price a stay for the caller with the same rules as booking creation, without reserving
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param check_in query string true "YYYY-MM-DD"
// @Param check_out query string true "YYYY-MM-DD"
// @Param guests query int false "Guest count (default 1)"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/properties/{id}/quote [get]
func (h *PropertyHandler) Quote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var query reqdto.StayQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	view, err := h.q.Quote(c.Request.Context(), query.ToQuote(id, actor.ID))
	if err != nil {
		httperr.AbortWithKind(c, err, "Quote failed")
		return
	}
	resp, err := resdto.FromQuoteView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Quote failed", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
