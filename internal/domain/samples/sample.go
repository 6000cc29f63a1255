package samples

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Sample entity. The physical specimen tracked by the system. Names are
// unique across the database; former names stay resolvable through aliases.
type Sample struct {
	ID                           string    `validate:"required,uuid4"`
	Name                         string    `validate:"required,min=1,max=30,excludesall= "`
	Tags                         string    `validate:"max=255"`
	Purpose                      string    `validate:"max=80"`
	CurrentLocation              string    `validate:"max=50"`
	CurrentlyResponsiblePersonID string    `validate:"required,uuid4"`
	TopicID                      *string   `validate:"omitempty,uuid4"`
	SplitOriginID                *string   `validate:"omitempty,uuid4"`
	DateTimeCreated              time.Time `validate:"required"`
}

// Validate for validating Sample struct
func (s *Sample) Validate() error {
	validate := validator.New()

	err := validate.Struct(s)
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

// SampleQuery carries list filters, pagination and sorting.
type SampleQuery struct {
	NameContains        string `validate:"max=30"`
	TopicID             string `validate:"omitempty,uuid4"`
	ResponsiblePersonID string `validate:"omitempty,uuid4"`

	Limit     int    `validate:"min=0,max=500"`
	Offset    int    `validate:"min=0"`
	SortBy    string `validate:"omitempty,oneof=name date_time_created current_location"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewSampleQuery creates a SampleQuery with sensible defaults.
func NewSampleQuery() *SampleQuery {
	return &SampleQuery{
		Limit:     100,
		Offset:    0,
		SortBy:    "name",
		SortOrder: "asc",
	}
}

// Validate for validating SampleQuery struct
func (q *SampleQuery) Validate() error {
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
