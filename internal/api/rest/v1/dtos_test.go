//go:build unit
// +build unit

package v1

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateSampleRequest_Validate(t *testing.T) {
	topicID := "6b0a9f8e-7d1c-4a2b-85d6-3e2f1a0b9c8d"

	tests := []struct {
		name      string
		request   CreateSampleRequest
		shouldErr bool
	}{
		{"Valid minimal", CreateSampleRequest{Name: "14-TB-1"}, false},
		{"Valid with topic", CreateSampleRequest{Name: "14-TB-1", TopicID: &topicID}, false},
		{"Missing name", CreateSampleRequest{}, true},
		{"Name with space", CreateSampleRequest{Name: "14 TB 1"}, true},
		{"Name too long", CreateSampleRequest{Name: "0123456789012345678901234567890"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestSplitSampleRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   SplitSampleRequest
		shouldErr bool
	}{
		{"Valid two pieces", SplitSampleRequest{Pieces: 2}, false},
		{"Valid many pieces", SplitSampleRequest{Pieces: 100}, false},
		{"Single piece", SplitSampleRequest{Pieces: 1}, true},
		{"Too many pieces", SplitSampleRequest{Pieces: 101}, true},
		{"Zero pieces", SplitSampleRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestLayerEditRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   UpdateDepositionRequest
		shouldErr bool
	}{
		{"Valid add", UpdateDepositionRequest{LayerEdits: []LayerEditRequest{{Action: "add", Layer: &LayerDTO{Thickness: 50}}}}, false},
		{"Valid move", UpdateDepositionRequest{LayerEdits: []LayerEditRequest{{Action: "move-down", Position: 1}}}, false},
		{"Unknown action", UpdateDepositionRequest{LayerEdits: []LayerEditRequest{{Action: "swap", Position: 1}}}, true},
		{"Negative position", UpdateDepositionRequest{LayerEdits: []LayerEditRequest{{Action: "delete", Position: -1}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestLayerEditRequest_ToDomainCarriesLayer(t *testing.T) {
	request := LayerEditRequest{
		Action: "add",
		Layer:  &LayerDTO{Thickness: 50, Temperature: 550, GasFlows: map[string]float64{"SiH4": 2.5}},
	}

	edit := request.toDomain()

	require.Equal(t, "add", edit.Action)
	require.NotNil(t, edit.Layer)
	require.Equal(t, 50.0, edit.Layer.Thickness)
	require.Equal(t, 2.5, edit.Layer.GasFlows["SiH4"])
}

func TestPermissionRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   PermissionRequest
		shouldErr bool
	}{
		{"Valid add", PermissionRequest{UserID: "f47ac10b-58cc-4372-a567-0e02b2c3d479", ProcessKind: "deposition", Permission: "add"}, false},
		{"Valid view", PermissionRequest{UserID: "f47ac10b-58cc-4372-a567-0e02b2c3d479", ProcessKind: "deposition", Permission: "view"}, false},
		{"Unknown verb", PermissionRequest{UserID: "f47ac10b-58cc-4372-a567-0e02b2c3d479", ProcessKind: "deposition", Permission: "own"}, true},
		{"Malformed user ID", PermissionRequest{UserID: "not-a-uuid", ProcessKind: "deposition", Permission: "add"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestErrorResponse_Creation(t *testing.T) {
	errResp := ErrorResponse{
		ErrorCode: CodeNotFound,
		Message:   "sample not found",
	}

	require.Equal(t, 2, errResp.ErrorCode)
	require.Equal(t, "sample not found", errResp.Message)
}

func TestInfoResponse_Creation(t *testing.T) {
	infoResp := InfoResponse{
		Message: "Operation successful",
	}

	require.Equal(t, "Operation successful", infoResp.Message)
}
