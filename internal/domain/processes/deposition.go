package processes

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Layer is one step of a deposition run. Numbers are consecutive starting
// at 1 and maintained by the layer-edit engine, never by callers.
type Layer struct {
	Number      int                `validate:"min=1"`
	Thickness   float64            `validate:"min=0"` // nm
	Temperature float64            ``                 // °C
	Power       float64            `validate:"min=0"` // W
	Duration    float64            `validate:"min=0"` // s
	GasFlows    map[string]float64 `validate:"omitempty,dive,min=0"` // channel -> sccm
}

// Deposition is a process with a number and an ordered list of layers. The
// number is immutable after creation and follows the "<YY>D-<serial>"
// scheme, serial counting per calendar year.
type Deposition struct {
	ID         string    `validate:"required,uuid4"`
	Number     string    `validate:"required,min=1,max=15"`
	OperatorID string    `validate:"required,uuid4"`
	Timestamp  time.Time `validate:"required"`
	Comments   string    `validate:"max=2000"`
	SampleIDs  []string  `validate:"required,min=1,dive,uuid4"`
	Layers     []Layer   `validate:"dive"`
	Finished   bool      ``
}

// Validate for validating Deposition struct. A finished deposition must
// carry at least one layer; unfinished ones may be empty while under edit.
func (d *Deposition) Validate() error {
	validate := validator.New()

	err := validate.Struct(d)
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

	if d.Finished && len(d.Layers) == 0 {
		return fmt.Errorf("validation failed: a finished deposition needs at least one layer")
	}

	for i, layer := range d.Layers {
		if layer.Number != i+1 {
			return fmt.Errorf("validation failed: layer at position %d numbered %d, want %d", i, layer.Number, i+1)
		}
	}

	return nil
}

// Process returns the process view of the deposition, as stored in the
// shared process table.
func (d *Deposition) Process() *Process {
	return &Process{
		ID:         d.ID,
		Kind:       KindDeposition,
		OperatorID: d.OperatorID,
		Timestamp:  d.Timestamp,
		Comments:   d.Comments,
		SampleIDs:  d.SampleIDs,
	}
}

// DepositionQuery carries list filters for depositions.
type DepositionQuery struct {
	OperatorID string `validate:"omitempty,uuid4"`
	SampleID   string `validate:"omitempty,uuid4"`
	Year       int    `validate:"min=0"`

	Limit     int    `validate:"min=0,max=500"`
	Offset    int    `validate:"min=0"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewDepositionQuery creates a DepositionQuery with sensible defaults.
func NewDepositionQuery() *DepositionQuery {
	return &DepositionQuery{
		Limit:     100,
		Offset:    0,
		SortOrder: "desc",
	}
}

// Validate for validating DepositionQuery struct
func (q *DepositionQuery) Validate() error {
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

// DepositionNumber formats a deposition number for the given year and
// serial, e.g. 2025, 7 -> "25D-007".
func DepositionNumber(year, serial int) string {
	return fmt.Sprintf("%02dD-%03d", year%100, serial)
}
