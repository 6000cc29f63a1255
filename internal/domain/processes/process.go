package processes

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Well-known process kinds. Institute packages register further kinds as
// plain strings; permissions are granted per kind.
const (
	KindSampleSplit = "sample-split"
	KindDeposition  = "deposition"
	KindMeasurement = "measurement"
)

// Process entity. The base record of anything that happened to samples:
// depositions, measurements, splits. A process is attached to one or more
// samples.
type Process struct {
	ID         string    `validate:"required,uuid4"`
	Kind       string    `validate:"required,min=1,max=50"`
	OperatorID string    `validate:"required,uuid4"`
	Timestamp  time.Time `validate:"required"`
	Comments   string    `validate:"max=2000"`
	SampleIDs  []string  `validate:"required,min=1,dive,uuid4"`
}

// Validate for validating Process struct
func (p *Process) Validate() error {
	validate := validator.New()

	err := validate.Struct(p)
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

	return nil
}

// ProcessQuery carries list filters for process histories.
type ProcessQuery struct {
	SampleID   string `validate:"omitempty,uuid4"`
	Kind       string `validate:"max=50"`
	OperatorID string `validate:"omitempty,uuid4"`

	Limit     int    `validate:"min=0,max=500"`
	Offset    int    `validate:"min=0"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewProcessQuery creates a ProcessQuery with sensible defaults. Process
// histories read newest-first.
func NewProcessQuery() *ProcessQuery {
	return &ProcessQuery{
		Limit:     100,
		Offset:    0,
		SortOrder: "desc",
	}
}

// Validate for validating ProcessQuery struct
func (q *ProcessQuery) Validate() error {
	validate := validator.New()

	err := validate.Struct(q)
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

	return nil
}
