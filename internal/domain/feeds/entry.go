package feeds

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Feed entry kinds, one per reported database change.
const (
	KindNewSample      = "new-sample"
	KindEditedSample   = "edited-sample"
	KindNewProcess     = "new-process"
	KindNewTopicMember = "new-topic-member"
	KindStatusMessage  = "status-message"
)

// Event is what the service layer reports after a change. The feed service
// resolves it into recipients: users watching any of the samples, members of
// the topic, plus explicitly named users — minus the originator, who does
// not need news about their own edit.
type Event struct {
	Kind         string    `validate:"required,oneof=new-sample edited-sample new-process new-topic-member status-message"`
	Title        string    `validate:"required,max=200"`
	Summary      string    `validate:"max=2000"`
	Link         string    `validate:"max=200"`
	OriginatorID string    `validate:"required,uuid4"`
	Timestamp    time.Time `validate:"required"`

	SampleIDs    []string `validate:"dive,uuid4"`
	TopicID      string   `validate:"omitempty,uuid4"`
	RecipientIDs []string `validate:"dive,uuid4"`
}

// Validate for validating Event struct
func (e *Event) Validate() error {
	validate := validator.New()

	err := validate.Struct(e)
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

// Entry is a stored feed entry as delivered to its recipients.
type Entry struct {
	ID           string
	Kind         string
	Title        string
	Summary      string
	Link         string
	OriginatorID string
	Timestamp    time.Time
}
