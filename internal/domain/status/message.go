package status

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// StatusMessage is an informal per-apparatus notice ("chamber 2 down until
// Friday") shown to users working with that process kind. Messages are
// withdrawn, never deleted.
type StatusMessage struct {
	ID            string    `validate:"required,uuid4"`
	ProcessKind   string    `validate:"required,min=1,max=50"`
	OperatorID    string    `validate:"required,uuid4"`
	Begin         time.Time `validate:"required"`
	End           time.Time `validate:"required"`
	Message       string    `validate:"required,max=2000"`
	Withdrawn     bool      ``
	DateTimeAdded time.Time `validate:"required"`
}

// Validate for validating StatusMessage struct
func (m *StatusMessage) Validate() error {
	validate := validator.New()

	err := validate.Struct(m)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	if !m.End.After(m.Begin) {
		return fmt.Errorf("validation failed: end must be after begin")
	}

	return nil
}
