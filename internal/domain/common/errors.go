// Package common holds the error sentinels shared by all domain packages.
// The REST layer maps them onto the numeric codes of the remote protocol.
package common

import "errors"

var (
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a unique field (sample name, deposition
	// number, topic name, login name) is already taken.
	ErrConflict = errors.New("already exists")

	// ErrAccessDenied is returned when the acting user lacks permission for
	// the operation.
	ErrAccessDenied = errors.New("access denied")

	// ErrAuthFailed is returned for bad credentials or invalid tokens.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrInvalidParameter is returned when an input value is structurally
	// well-formed but semantically unusable (for example a layer-edit
	// position outside the layer list).
	ErrInvalidParameter = errors.New("invalid parameter")
)
