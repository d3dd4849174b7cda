package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError maps a domain error to its HTTP shape. Unexpected errors come
// back as a generic internal failure without leaking details.
func FromError(c *gin.Context, err error) {
	kind, ok := KindOf(err)
	if !ok {
		Internal(c, "internal_error", "something went wrong")
		return
	}

	switch kind {
	case KindConflict:
		Conflict(c, err.Error(), err.Error())
	case KindPayment:
		Write(c, http.StatusPaymentRequired, err.Error(), err.Error())
	default:
		BadRequest(c, err.Error(), err.Error())
	}
}
