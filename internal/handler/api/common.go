package api

import (
	"net/http"

	reqdto "sublet-booking/internal/handler/dto/request"
	"sublet-booking/internal/handler/httperr"
	"sublet-booking/internal/handler/middleware"
	"sublet-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func currentActor(c *gin.Context) (queries.Actor, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return queries.Actor{}, false
	}
	role, _ := middleware.GetUserRole(c)
	return queries.Actor{ID: userID, Role: role}, true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func abortInvalidRequest(c *gin.Context, err error) {
	if fields := reqdto.FieldErrors(err); fields != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", fields)
		return
	}
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
}

// bindOptionalJSON binds the body only when one was sent.
func bindOptionalJSON(c *gin.Context, obj any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(obj); err != nil {
		abortInvalidRequest(c, err)
		return false
	}
	return true
}
