package topics

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Topic entity. A topic groups samples and users; confidential topics are
// visible to their members only.
type Topic struct {
	ID           string   `validate:"required,uuid4"`
	Name         string   `validate:"required,min=1,max=80"`
	Confidential bool     ``
	ManagerID    string   `validate:"required,uuid4"`
	MemberIDs    []string `validate:"dive,uuid4"`
}

// Validate for validating Topic struct
func (t *Topic) Validate() error {
	validate := validator.New()

	err := validate.Struct(t)
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

// HasMember reports whether the user is a member or the manager.
func (t *Topic) HasMember(userID string) bool {
	if t.ManagerID == userID {
		return true
	}
	for _, id := range t.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// VisibleTo reports whether the topic may be shown to the user at all.
func (t *Topic) VisibleTo(userID string, isAdmin bool) bool {
	if !t.Confidential || isAdmin {
		return true
	}
	return t.HasMember(userID)
}
