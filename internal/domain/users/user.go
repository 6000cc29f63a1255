package users

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// User entity
type User struct {
	ID             string    `validate:"required,uuid4"`
	LoginName      string    `validate:"required,min=1,max=150,excludesall= "`
	DisplayName    string    `validate:"max=150"`
	Email          string    `validate:"omitempty,email"`
	HashedPassword string    `validate:"required"`
	IsActive       bool      ``
	IsAdmin        bool      ``
	DateJoined     time.Time `validate:"required"`
}

// Validate for validating User struct
func (u *User) Validate() error {
	validate := validator.New()

	err := validate.Struct(u)
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

// UserDetails holds per-user working state: the "My Samples" set and the
// secret token that addresses the user's Atom feed.
type UserDetails struct {
	UserID      string   `validate:"required,uuid4"`
	FeedToken   string   `validate:"required,min=16"`
	MySampleIDs []string `validate:"dive,uuid4"`
}

// Validate for validating UserDetails struct
func (d *UserDetails) Validate() error {
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

	return nil
}

// Permission verbs grantable per process kind.
const (
	PermissionAdd  = "add"
	PermissionEdit = "edit"
	PermissionView = "view"
)
