package handlers

import (
	"bytes"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/validators"
)

// uintParam reads a positive numeric path parameter, answering 400 when
// it is not one.
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(v), true
}

// bindJSON binds the request body into req and writes the 400 response
// itself when binding fails.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if fields := validators.FormatValidationErrors(err); len(fields) > 0 {
			httperr.Validation(c, fields)
			return false
		}
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return false
	}
	return true
}

// flexID accepts an identifier sent either as a JSON number or string.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	*f = flexID(bytes.Trim(b, `"`))
	return nil
}

func (f flexID) Uint() (uint, bool) {
	v, err := strconv.ParseUint(string(f), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
