package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/juliabase/juliabase/internal/domain/common"
)

// Remote-protocol error codes. Clients branch on the numeric code, not on
// the HTTP status, so the codes are part of the wire contract.
const (
	CodeFormError        = 1
	CodeNotFound         = 2
	CodeMissingParameter = 3
	CodeAuthFailed       = 4
	CodeInvalidParameter = 5
	CodeAccessDenied     = 6
)

// ErrorResponse is the error payload of every failing endpoint.
type ErrorResponse struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
}

// InfoResponse carries a human-readable confirmation message.
type InfoResponse struct {
	Message string `json:"message"`
}

func httpStatusOf(code int) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeMissingParameter:
		return http.StatusUnprocessableEntity
	case CodeAuthFailed:
		return http.StatusUnauthorized
	case CodeAccessDenied:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// writeError maps a service error onto the protocol code and HTTP status.
func writeError(ctx *gin.Context, err error) {
	code := CodeFormError
	switch {
	case errors.Is(err, common.ErrNotFound):
		code = CodeNotFound
	case errors.Is(err, common.ErrAuthFailed):
		code = CodeAuthFailed
	case errors.Is(err, common.ErrAccessDenied):
		code = CodeAccessDenied
	case errors.Is(err, common.ErrInvalidParameter), errors.Is(err, common.ErrConflict):
		code = CodeInvalidParameter
	}
	writeErrorCode(ctx, code, err.Error())
}

func writeErrorCode(ctx *gin.Context, code int, message string) {
	ctx.AbortWithStatusJSON(httpStatusOf(code), ErrorResponse{
		ErrorCode: code,
		Message:   message,
	})
}

func writeFormError(ctx *gin.Context, err error) {
	writeErrorCode(ctx, CodeFormError, err.Error())
}

func writeMissingParameter(ctx *gin.Context, name string) {
	writeErrorCode(ctx, CodeMissingParameter, fmt.Sprintf("missing parameter %q", name))
}
