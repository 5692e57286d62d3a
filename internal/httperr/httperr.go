package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type HTTPError struct {
	Code    string            `json:"error_code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
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

func Validation(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, HTTPError{
		Code:    "invalid_request",
		Message: "Dados inválidos.",
		Fields:  fields,
	})
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Unprocessable(c *gin.Context, code, message string) {
	Write(c, http.StatusUnprocessableEntity, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// Respond maps a use case error to its HTTP response. Errors that are not
// a BusinessError are logged and hidden behind fallbackCode.
func Respond(c *gin.Context, log *logrus.Logger, err error, fallbackCode string) {
	var be BusinessError
	if !errors.As(err, &be) {
		log.WithError(err).
			WithField("path", c.FullPath()).
			Error(fallbackCode)
		Internal(c, fallbackCode, "Erro interno do servidor.")
		return
	}

	switch be.Kind {
	case KindInvalidInput:
		BadRequest(c, be.Code, messageFor(be.Code))
	case KindNotFound:
		NotFound(c, be.Code, messageFor(be.Code))
	case KindConflict:
		Conflict(c, be.Code, messageFor(be.Code))
	default:
		Unprocessable(c, be.Code, messageFor(be.Code))
	}
}
