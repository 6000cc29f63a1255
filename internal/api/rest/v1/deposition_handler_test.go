//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juliabase/juliabase/internal/domain/common"
	"github.com/juliabase/juliabase/internal/domain/processes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestDeposition() *processes.Deposition {
	return &processes.Deposition{
		ID:         "4f8e7d6c-5b9a-4e0f-a2b3-1c0d9e8f7a6b",
		Number:     "26D-001",
		OperatorID: testActorID,
		Timestamp:  time.Now().UTC(),
		Comments:   "standard recipe",
		SampleIDs:  []string{"1c9e8a7e-2f6d-4b5a-9c3e-8d7f6a5b4c3d"},
		Layers: []processes.Layer{
			{Number: 1, Thickness: 100, Temperature: 550, Power: 20, Duration: 300},
		},
	}
}

func TestDepositionHandler_Create_Success(t *testing.T) {
	mockDepositionService := new(MockDepositionService)

	handler := NewDepositionHandler(mockDepositionService)

	deposition := newTestDeposition()
	mockDepositionService.
		On("Create", mock.Anything, testActorID, mock.AnythingOfType("*processes.Deposition")).
		Return(deposition, nil)

	requestBody := `{
		"sample_ids": ["1c9e8a7e-2f6d-4b5a-9c3e-8d7f6a5b4c3d"],
		"comments": "standard recipe",
		"layers": [{"number": 1, "thickness": 100, "temperature": 550, "power": 20, "duration": 300}]
	}`

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "POST", "/depositions", requestBody)

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "26D-001")
	mockDepositionService.AssertExpectations(t)
}

func TestDepositionHandler_Create_WithoutSamplesRejected(t *testing.T) {
	mockDepositionService := new(MockDepositionService)

	handler := NewDepositionHandler(mockDepositionService)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "POST", "/depositions", `{"comments": "no samples"}`)

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockDepositionService.AssertNotCalled(t, "Create")
}

func TestDepositionHandler_Create_AccessDenied(t *testing.T) {
	mockDepositionService := new(MockDepositionService)

	handler := NewDepositionHandler(mockDepositionService)

	mockDepositionService.
		On("Create", mock.Anything, testActorID, mock.AnythingOfType("*processes.Deposition")).
		Return(nil, common.ErrAccessDenied)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "POST", "/depositions", `{"sample_ids": ["1c9e8a7e-2f6d-4b5a-9c3e-8d7f6a5b4c3d"]}`)

	handler.Create(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":6`)
	mockDepositionService.AssertExpectations(t)
}

func TestDepositionHandler_GetByNumber_Success(t *testing.T) {
	mockDepositionService := new(MockDepositionService)

	handler := NewDepositionHandler(mockDepositionService)

	deposition := newTestDeposition()
	mockDepositionService.
		On("GetByNumber", mock.Anything, testActorID, "26D-001").
		Return(deposition, nil)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "GET", "/depositions/26D-001", "")
	c.Params = gin.Params{gin.Param{Key: "number", Value: "26D-001"}}

	handler.GetByNumber(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), deposition.ID)
	mockDepositionService.AssertExpectations(t)
}

func TestDepositionHandler_GetByNumber_NotFound(t *testing.T) {
	mockDepositionService := new(MockDepositionService)

	handler := NewDepositionHandler(mockDepositionService)

	mockDepositionService.
		On("GetByNumber", mock.Anything, testActorID, "99D-999").
		Return(nil, common.ErrNotFound)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "GET", "/depositions/99D-999", "")
	c.Params = gin.Params{gin.Param{Key: "number", Value: "99D-999"}}

	handler.GetByNumber(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":2`)
	mockDepositionService.AssertExpectations(t)
}

func TestDepositionHandler_List_ValidationError(t *testing.T) {
	mockDepositionService := new(MockDepositionService)

	handler := NewDepositionHandler(mockDepositionService)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "GET", "/depositions?sortOrder=sideways", "")

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockDepositionService.AssertNotCalled(t, "List")
}

func TestDepositionHandler_Update_AppliesLayerEdits(t *testing.T) {
	mockDepositionService := new(MockDepositionService)

	handler := NewDepositionHandler(mockDepositionService)

	deposition := newTestDeposition()
	mockDepositionService.
		On("Update", mock.Anything, testActorID, "26D-001", mock.Anything, mock.Anything,
			mock.MatchedBy(func(edits []processes.LayerEdit) bool {
				return len(edits) == 2 && edits[0].Action == "add" && edits[1].Action == "move-up"
			}), mock.Anything).
		Return(deposition, nil)

	requestBody := `{
		"layer_edits": [
			{"action": "add", "layer": {"number": 1, "thickness": 50}},
			{"action": "move-up", "position": 2}
		]
	}`

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "PUT", "/depositions/26D-001", requestBody)
	c.Params = gin.Params{gin.Param{Key: "number", Value: "26D-001"}}

	handler.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockDepositionService.AssertExpectations(t)
}

func TestDepositionHandler_Update_FinishedFrozen(t *testing.T) {
	mockDepositionService := new(MockDepositionService)

	handler := NewDepositionHandler(mockDepositionService)

	mockDepositionService.
		On("Update", mock.Anything, testActorID, "26D-001", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, common.ErrInvalidParameter)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "PUT", "/depositions/26D-001", `{"comments": "too late"}`)
	c.Params = gin.Params{gin.Param{Key: "number", Value: "26D-001"}}

	handler.Update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":5`)
	mockDepositionService.AssertExpectations(t)
}
