package httperr

import (
	"errors"
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

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond writes err as the error envelope. Business errors keep their code
// and message; anything else becomes a generic 500 and is attached to the
// gin context so the request logger can report it.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		msg := be.Message
		if msg == "" {
			msg = be.Code
		}
		Write(c, be.Kind.Status(), be.Code, msg)
		return
	}

	_ = c.Error(err)
	Internal(c, "internal_error", "An unexpected error occurred.")
}
