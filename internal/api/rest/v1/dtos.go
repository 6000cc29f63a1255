package v1

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/juliabase/juliabase/internal/domain/feeds"
	"github.com/juliabase/juliabase/internal/domain/processes"
	"github.com/juliabase/juliabase/internal/domain/samples"
	"github.com/juliabase/juliabase/internal/domain/status"
	"github.com/juliabase/juliabase/internal/domain/topics"
	"github.com/juliabase/juliabase/internal/domain/users"
)

func validateStruct(s interface{}) error {
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

// LoginRequest carries the credentials of the login endpoint.
type LoginRequest struct {
	LoginName string `json:"login_name" validate:"required,min=1,max=50"`
	Password  string `json:"password" validate:"required"`
}

// Validate for validating LoginRequest struct
func (r *LoginRequest) Validate() error {
	return validateStruct(r)
}

// TokenResponse is the login result: a bearer token and its expiry.
type TokenResponse struct {
	Token  string       `json:"token"`
	Expiry int64        `json:"expiry"`
	User   UserResponse `json:"user"`
}

// CreateUserRequest registers a new account. Admin only.
type CreateUserRequest struct {
	LoginName   string `json:"login_name" validate:"required,min=1,max=50,excludesall= "`
	DisplayName string `json:"display_name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
}

// Validate for validating CreateUserRequest struct
func (r *CreateUserRequest) Validate() error {
	return validateStruct(r)
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID          string    `json:"id"`
	LoginName   string    `json:"login_name"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	IsActive    bool      `json:"is_active"`
	IsAdmin     bool      `json:"is_admin"`
	DateJoined  time.Time `json:"date_joined"`
}

func newUserResponse(user *users.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		LoginName:   user.LoginName,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		IsActive:    user.IsActive,
		IsAdmin:     user.IsAdmin,
		DateJoined:  user.DateJoined,
	}
}

// PermissionRequest grants or revokes a permission verb on a process kind.
type PermissionRequest struct {
	UserID      string `json:"user_id" validate:"required,uuid4"`
	ProcessKind string `json:"process_kind" validate:"required,min=1,max=50"`
	Permission  string `json:"permission" validate:"required,oneof=add edit view"`
}

// Validate for validating PermissionRequest struct
func (r *PermissionRequest) Validate() error {
	return validateStruct(r)
}

// CreateSampleRequest carries a new sample's fields.
type CreateSampleRequest struct {
	Name            string  `json:"name" validate:"required,min=1,max=30,excludesall= "`
	Tags            string  `json:"tags" validate:"max=255"`
	Purpose         string  `json:"purpose" validate:"max=80"`
	CurrentLocation string  `json:"current_location" validate:"max=50"`
	TopicID         *string `json:"topic_id" validate:"omitempty,uuid4"`
}

// Validate for validating CreateSampleRequest struct
func (r *CreateSampleRequest) Validate() error {
	return validateStruct(r)
}

// UpdateSampleRequest carries the editable fields of a sample. Nil fields
// stay unchanged.
type UpdateSampleRequest struct {
	Tags                         *string `json:"tags" validate:"omitempty,max=255"`
	Purpose                      *string `json:"purpose" validate:"omitempty,max=80"`
	CurrentLocation              *string `json:"current_location" validate:"omitempty,max=50"`
	CurrentlyResponsiblePersonID *string `json:"currently_responsible_person_id" validate:"omitempty,uuid4"`
	TopicID                      *string `json:"topic_id" validate:"omitempty,uuid4"`
}

// Validate for validating UpdateSampleRequest struct
func (r *UpdateSampleRequest) Validate() error {
	return validateStruct(r)
}

// RenameSampleRequest carries the new name of a sample.
type RenameSampleRequest struct {
	NewName string `json:"new_name" validate:"required,min=1,max=30,excludesall= "`
}

// Validate for validating RenameSampleRequest struct
func (r *RenameSampleRequest) Validate() error {
	return validateStruct(r)
}

// SplitSampleRequest carries the piece count of a sample split.
type SplitSampleRequest struct {
	Pieces int `json:"pieces" validate:"required,min=2,max=100"`
}

// Validate for validating SplitSampleRequest struct
func (r *SplitSampleRequest) Validate() error {
	return validateStruct(r)
}

// SampleResponse is the API view of a sample.
type SampleResponse struct {
	ID                           string    `json:"id"`
	Name                         string    `json:"name"`
	Tags                         string    `json:"tags"`
	Purpose                      string    `json:"purpose"`
	CurrentLocation              string    `json:"current_location"`
	CurrentlyResponsiblePersonID string    `json:"currently_responsible_person_id"`
	TopicID                      *string   `json:"topic_id,omitempty"`
	SplitOriginID                *string   `json:"split_origin_id,omitempty"`
	DateTimeCreated              time.Time `json:"date_time_created"`
}

func newSampleResponse(sample *samples.Sample) SampleResponse {
	return SampleResponse{
		ID:                           sample.ID,
		Name:                         sample.Name,
		Tags:                         sample.Tags,
		Purpose:                      sample.Purpose,
		CurrentLocation:              sample.CurrentLocation,
		CurrentlyResponsiblePersonID: sample.CurrentlyResponsiblePersonID,
		TopicID:                      sample.TopicID,
		SplitOriginID:                sample.SplitOriginID,
		DateTimeCreated:              sample.DateTimeCreated,
	}
}

func newSampleListResponse(sampleList []*samples.Sample) []SampleResponse {
	listResponse := []SampleResponse{}
	for _, sample := range sampleList {
		listResponse = append(listResponse, newSampleResponse(sample))
	}
	return listResponse
}

// MySamplesUpdateRequest adds and removes samples from the caller's working
// set in one request.
type MySamplesUpdateRequest struct {
	Add    []string `json:"add" validate:"omitempty,dive,uuid4"`
	Remove []string `json:"remove" validate:"omitempty,dive,uuid4"`
}

// Validate for validating MySamplesUpdateRequest struct
func (r *MySamplesUpdateRequest) Validate() error {
	return validateStruct(r)
}

// LayerDTO mirrors a deposition layer on the wire.
type LayerDTO struct {
	Number      int                `json:"number"`
	Thickness   float64            `json:"thickness" validate:"min=0"`
	Temperature float64            `json:"temperature"`
	Power       float64            `json:"power" validate:"min=0"`
	Duration    float64            `json:"duration" validate:"min=0"`
	GasFlows    map[string]float64 `json:"gas_flows,omitempty" validate:"omitempty,dive,min=0"`
}

func (d *LayerDTO) toDomain() processes.Layer {
	return processes.Layer{
		Number:      d.Number,
		Thickness:   d.Thickness,
		Temperature: d.Temperature,
		Power:       d.Power,
		Duration:    d.Duration,
		GasFlows:    d.GasFlows,
	}
}

func newLayerDTO(layer processes.Layer) LayerDTO {
	return LayerDTO{
		Number:      layer.Number,
		Thickness:   layer.Thickness,
		Temperature: layer.Temperature,
		Power:       layer.Power,
		Duration:    layer.Duration,
		GasFlows:    layer.GasFlows,
	}
}

// LayerEditRequest is one structural layer operation.
type LayerEditRequest struct {
	Action   string    `json:"action" validate:"required,oneof=add delete duplicate move-up move-down"`
	Position int       `json:"position" validate:"min=0"`
	Layer    *LayerDTO `json:"layer,omitempty"`
}

func (r *LayerEditRequest) toDomain() processes.LayerEdit {
	edit := processes.LayerEdit{
		Action:   r.Action,
		Position: r.Position,
	}
	if r.Layer != nil {
		layer := r.Layer.toDomain()
		edit.Layer = &layer
	}
	return edit
}

// CreateDepositionRequest carries a new deposition. An empty number is
// assigned from the year's serial counter.
type CreateDepositionRequest struct {
	Number    string     `json:"number" validate:"omitempty,max=15"`
	Timestamp *time.Time `json:"timestamp"`
	Comments  string     `json:"comments" validate:"max=2000"`
	SampleIDs []string   `json:"sample_ids" validate:"required,min=1,dive,uuid4"`
	Layers    []LayerDTO `json:"layers" validate:"dive"`
	Finished  bool       `json:"finished"`
}

// Validate for validating CreateDepositionRequest struct
func (r *CreateDepositionRequest) Validate() error {
	return validateStruct(r)
}

// UpdateDepositionRequest carries a deposition edit. Nil fields stay
// unchanged; layer edits are applied in order.
type UpdateDepositionRequest struct {
	Comments   *string            `json:"comments" validate:"omitempty,max=2000"`
	SampleIDs  []string           `json:"sample_ids" validate:"omitempty,min=1,dive,uuid4"`
	LayerEdits []LayerEditRequest `json:"layer_edits" validate:"omitempty,dive"`
	Finished   *bool              `json:"finished"`
}

// Validate for validating UpdateDepositionRequest struct
func (r *UpdateDepositionRequest) Validate() error {
	return validateStruct(r)
}

// DepositionResponse is the API view of a deposition.
type DepositionResponse struct {
	ID         string     `json:"id"`
	Number     string     `json:"number"`
	OperatorID string     `json:"operator_id"`
	Timestamp  time.Time  `json:"timestamp"`
	Comments   string     `json:"comments"`
	SampleIDs  []string   `json:"sample_ids"`
	Layers     []LayerDTO `json:"layers"`
	Finished   bool       `json:"finished"`
}

func newDepositionResponse(deposition *processes.Deposition) DepositionResponse {
	layers := []LayerDTO{}
	for _, layer := range deposition.Layers {
		layers = append(layers, newLayerDTO(layer))
	}
	return DepositionResponse{
		ID:         deposition.ID,
		Number:     deposition.Number,
		OperatorID: deposition.OperatorID,
		Timestamp:  deposition.Timestamp,
		Comments:   deposition.Comments,
		SampleIDs:  deposition.SampleIDs,
		Layers:     layers,
		Finished:   deposition.Finished,
	}
}

// CreateProcessRequest attaches a generic process to samples.
type CreateProcessRequest struct {
	Kind      string     `json:"kind" validate:"required,min=1,max=50"`
	Timestamp *time.Time `json:"timestamp"`
	Comments  string     `json:"comments" validate:"max=2000"`
	SampleIDs []string   `json:"sample_ids" validate:"required,min=1,dive,uuid4"`
}

// Validate for validating CreateProcessRequest struct
func (r *CreateProcessRequest) Validate() error {
	return validateStruct(r)
}

// ProcessResponse is the API view of a process.
type ProcessResponse struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	OperatorID string    `json:"operator_id"`
	Timestamp  time.Time `json:"timestamp"`
	Comments   string    `json:"comments"`
	SampleIDs  []string  `json:"sample_ids"`
}

func newProcessResponse(process *processes.Process) ProcessResponse {
	return ProcessResponse{
		ID:         process.ID,
		Kind:       process.Kind,
		OperatorID: process.OperatorID,
		Timestamp:  process.Timestamp,
		Comments:   process.Comments,
		SampleIDs:  process.SampleIDs,
	}
}

// CreateTopicRequest carries a new topic's fields.
type CreateTopicRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=80"`
	Confidential bool   `json:"confidential"`
}

// Validate for validating CreateTopicRequest struct
func (r *CreateTopicRequest) Validate() error {
	return validateStruct(r)
}

// TopicMemberRequest names the user of a membership change.
type TopicMemberRequest struct {
	UserID string `json:"user_id" validate:"required,uuid4"`
}

// Validate for validating TopicMemberRequest struct
func (r *TopicMemberRequest) Validate() error {
	return validateStruct(r)
}

// TopicResponse is the API view of a topic.
type TopicResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Confidential bool     `json:"confidential"`
	ManagerID    string   `json:"manager_id"`
	MemberIDs    []string `json:"member_ids"`
}

func newTopicResponse(topic *topics.Topic) TopicResponse {
	memberIDs := topic.MemberIDs
	if memberIDs == nil {
		memberIDs = []string{}
	}
	return TopicResponse{
		ID:           topic.ID,
		Name:         topic.Name,
		Confidential: topic.Confidential,
		ManagerID:    topic.ManagerID,
		MemberIDs:    memberIDs,
	}
}

// CreateStatusMessageRequest carries a new apparatus status message.
type CreateStatusMessageRequest struct {
	ProcessKind string    `json:"process_kind" validate:"required,min=1,max=50"`
	Begin       time.Time `json:"begin" validate:"required"`
	End         time.Time `json:"end" validate:"required"`
	Message     string    `json:"message" validate:"required,max=2000"`
}

// Validate for validating CreateStatusMessageRequest struct
func (r *CreateStatusMessageRequest) Validate() error {
	return validateStruct(r)
}

// StatusMessageResponse is the API view of a status message.
type StatusMessageResponse struct {
	ID            string    `json:"id"`
	ProcessKind   string    `json:"process_kind"`
	OperatorID    string    `json:"operator_id"`
	Begin         time.Time `json:"begin"`
	End           time.Time `json:"end"`
	Message       string    `json:"message"`
	Withdrawn     bool      `json:"withdrawn"`
	DateTimeAdded time.Time `json:"date_time_added"`
}

func newStatusMessageResponse(message *status.StatusMessage) StatusMessageResponse {
	return StatusMessageResponse{
		ID:            message.ID,
		ProcessKind:   message.ProcessKind,
		OperatorID:    message.OperatorID,
		Begin:         message.Begin,
		End:           message.End,
		Message:       message.Message,
		Withdrawn:     message.Withdrawn,
		DateTimeAdded: message.DateTimeAdded,
	}
}

// FeedEntryResponse is the JSON view of a stored feed entry.
type FeedEntryResponse struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	Link         string    `json:"link"`
	OriginatorID string    `json:"originator_id"`
	Timestamp    time.Time `json:"timestamp"`
}

func newFeedEntryResponse(entry *feeds.Entry) FeedEntryResponse {
	return FeedEntryResponse{
		ID:           entry.ID,
		Kind:         entry.Kind,
		Title:        entry.Title,
		Summary:      entry.Summary,
		Link:         entry.Link,
		OriginatorID: entry.OriginatorID,
		Timestamp:    entry.Timestamp,
	}
}
