package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error"`
	Message string `json:"message,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Status(kind Kind) int {
	switch kind {
	case KindTenantNotFound, KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict, KindInvalidTransition:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as the response. Non-business errors become a 500 and
// are attached to the context for the access log.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) || be.Kind == KindInternal {
		_ = c.Error(err)
		Write(c, http.StatusInternalServerError, "internal_error", "Internal server error")
		return
	}
	Write(c, Status(be.Kind), be.Code, be.Message)
}
