package httperr

import (
	"net/http"

	"sublet-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		err = errs.New(msg)
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// StatusOf maps an error kind to its HTTP status. Unmarked errors are 500.
func StatusOf(err error) int {
	switch errs.KindOf(err) {
	case errs.ErrNotFound:
		return http.StatusNotFound
	case errs.ErrForbidden:
		return http.StatusForbidden
	case errs.ErrBadRequest:
		return http.StatusBadRequest
	case errs.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// AbortWithKind aborts with the status of err's kind. Kinded errors expose
// their message; anything else is reported as fallback.
func AbortWithKind(c *gin.Context, err error, fallback string) {
	status := StatusOf(err)
	msg := fallback
	if status != http.StatusInternalServerError {
		msg = err.Error()
	}
	AbortWithError(c, status, err, msg, nil)
}
