package remote

import (
	"errors"
	"fmt"
)

// Remote-protocol error codes, mirrored from the server. Callers branch on
// the numeric code, not on HTTP statuses.
const (
	CodeFormError        = 1
	CodeNotFound         = 2
	CodeMissingParameter = 3
	CodeAuthFailed       = 4
	CodeInvalidParameter = 5
	CodeAccessDenied     = 6
)

// ProtocolError is the decoded error payload of a failing call.
type ProtocolError struct {
	Code    int    `json:"error_code"`
	Message string `json:"message"`
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("remote error %d: %s", e.Code, e.Message)
}

// IsCode reports whether err is a ProtocolError with the given code.
func IsCode(err error, code int) bool {
	var protocolErr *ProtocolError
	if errors.As(err, &protocolErr) {
		return protocolErr.Code == code
	}
	return false
}

// IsNotFound reports whether err is the server's not-found error.
func IsNotFound(err error) bool {
	return IsCode(err, CodeNotFound)
}
