//go:build unit
// +build unit

package v1

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juliabase/juliabase/internal/domain/common"
	"github.com/juliabase/juliabase/internal/domain/processes"
	"github.com/juliabase/juliabase/internal/domain/samples"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testActorID = "f47ac10b-58cc-4372-a567-0e02b2c3d479"

func newTestSample() *samples.Sample {
	return &samples.Sample{
		ID:                           "1c9e8a7e-2f6d-4b5a-9c3e-8d7f6a5b4c3d",
		Name:                         "14-TB-1",
		Tags:                         "silicon",
		CurrentLocation:              "clean room",
		CurrentlyResponsiblePersonID: testActorID,
		DateTimeCreated:              time.Now().UTC(),
	}
}

func authedTestContext(t *testing.T, w *httptest.ResponseRecorder, method, target string, body string) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = bytes.NewBufferString("")
	}
	req, err := http.NewRequest(method, target, reader)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(userIDContextKey, testActorID)
	return c
}

func TestSampleHandler_Create_Success(t *testing.T) {
	mockSampleService := new(MockSampleService)
	mockMySamplesService := new(MockMySamplesService)
	mockProcessService := new(MockProcessService)

	handler := NewSampleHandler(mockSampleService, mockMySamplesService, mockProcessService)

	sample := newTestSample()
	mockSampleService.
		On("Create", mock.Anything, testActorID, mock.AnythingOfType("*samples.Sample")).
		Return(sample, nil)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "POST", "/samples", `{"name": "14-TB-1", "tags": "silicon", "current_location": "clean room"}`)

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "14-TB-1")
	mockSampleService.AssertExpectations(t)
}

func TestSampleHandler_Create_NameWithSpaceRejected(t *testing.T) {
	mockSampleService := new(MockSampleService)
	mockMySamplesService := new(MockMySamplesService)
	mockProcessService := new(MockProcessService)

	handler := NewSampleHandler(mockSampleService, mockMySamplesService, mockProcessService)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "POST", "/samples", `{"name": "14 TB 1"}`)

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":1`)
	mockSampleService.AssertNotCalled(t, "Create")
}

func TestSampleHandler_GetByName_Success(t *testing.T) {
	mockSampleService := new(MockSampleService)
	mockMySamplesService := new(MockMySamplesService)
	mockProcessService := new(MockProcessService)

	handler := NewSampleHandler(mockSampleService, mockMySamplesService, mockProcessService)

	sample := newTestSample()
	mockSampleService.
		On("GetByName", mock.Anything, testActorID, "14-TB-1").
		Return(sample, nil)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "GET", "/samples/14-TB-1", "")
	c.Params = gin.Params{gin.Param{Key: "name", Value: "14-TB-1"}}

	handler.GetByName(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), sample.ID)
	mockSampleService.AssertExpectations(t)
}

func TestSampleHandler_GetByName_NotFound(t *testing.T) {
	mockSampleService := new(MockSampleService)
	mockMySamplesService := new(MockMySamplesService)
	mockProcessService := new(MockProcessService)

	handler := NewSampleHandler(mockSampleService, mockMySamplesService, mockProcessService)

	mockSampleService.
		On("GetByName", mock.Anything, testActorID, "no-such").
		Return(nil, common.ErrNotFound)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "GET", "/samples/no-such", "")
	c.Params = gin.Params{gin.Param{Key: "name", Value: "no-such"}}

	handler.GetByName(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":2`)
	mockSampleService.AssertExpectations(t)
}

func TestSampleHandler_List_ValidationError(t *testing.T) {
	mockSampleService := new(MockSampleService)
	mockMySamplesService := new(MockMySamplesService)
	mockProcessService := new(MockProcessService)

	handler := NewSampleHandler(mockSampleService, mockMySamplesService, mockProcessService)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "GET", "/samples?sortOrder=sideways", "")

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSampleService.AssertNotCalled(t, "List")
}

func TestSampleHandler_Rename_Success(t *testing.T) {
	mockSampleService := new(MockSampleService)
	mockMySamplesService := new(MockMySamplesService)
	mockProcessService := new(MockProcessService)

	handler := NewSampleHandler(mockSampleService, mockMySamplesService, mockProcessService)

	sample := newTestSample()
	mockSampleService.
		On("GetByName", mock.Anything, testActorID, "14-TB-1").
		Return(sample, nil)
	mockSampleService.
		On("Rename", mock.Anything, testActorID, sample.ID, "14-TB-1a").
		Return(nil)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "POST", "/samples/14-TB-1/rename", `{"new_name": "14-TB-1a"}`)
	c.Params = gin.Params{gin.Param{Key: "name", Value: "14-TB-1"}}

	handler.Rename(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "14-TB-1a")
	mockSampleService.AssertExpectations(t)
}

func TestSampleHandler_Rename_Conflict(t *testing.T) {
	mockSampleService := new(MockSampleService)
	mockMySamplesService := new(MockMySamplesService)
	mockProcessService := new(MockProcessService)

	handler := NewSampleHandler(mockSampleService, mockMySamplesService, mockProcessService)

	sample := newTestSample()
	mockSampleService.
		On("GetByName", mock.Anything, testActorID, "14-TB-1").
		Return(sample, nil)
	mockSampleService.
		On("Rename", mock.Anything, testActorID, sample.ID, "14-TB-2").
		Return(common.ErrConflict)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "POST", "/samples/14-TB-1/rename", `{"new_name": "14-TB-2"}`)
	c.Params = gin.Params{gin.Param{Key: "name", Value: "14-TB-1"}}

	handler.Rename(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":5`)
	mockSampleService.AssertExpectations(t)
}

func TestSampleHandler_Split_Success(t *testing.T) {
	mockSampleService := new(MockSampleService)
	mockMySamplesService := new(MockMySamplesService)
	mockProcessService := new(MockProcessService)

	handler := NewSampleHandler(mockSampleService, mockMySamplesService, mockProcessService)

	sample := newTestSample()
	child := newTestSample()
	child.ID = "2d8f9b6c-3a5e-4c7d-8b2a-1f0e9d8c7b6a"
	child.Name = "14-TB-1-1"
	child.SplitOriginID = &sample.ID

	mockSampleService.
		On("GetByName", mock.Anything, testActorID, "14-TB-1").
		Return(sample, nil)
	mockSampleService.
		On("Split", mock.Anything, testActorID, sample.ID, 3).
		Return([]*samples.Sample{child}, nil)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "POST", "/samples/14-TB-1/split", `{"pieces": 3}`)
	c.Params = gin.Params{gin.Param{Key: "name", Value: "14-TB-1"}}

	handler.Split(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "14-TB-1-1")
	mockSampleService.AssertExpectations(t)
}

func TestSampleHandler_Split_SinglePieceRejected(t *testing.T) {
	mockSampleService := new(MockSampleService)
	mockMySamplesService := new(MockMySamplesService)
	mockProcessService := new(MockProcessService)

	handler := NewSampleHandler(mockSampleService, mockMySamplesService, mockProcessService)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "POST", "/samples/14-TB-1/split", `{"pieces": 1}`)
	c.Params = gin.Params{gin.Param{Key: "name", Value: "14-TB-1"}}

	handler.Split(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSampleService.AssertNotCalled(t, "Split")
}

func TestSampleHandler_Update_AccessDenied(t *testing.T) {
	mockSampleService := new(MockSampleService)
	mockMySamplesService := new(MockMySamplesService)
	mockProcessService := new(MockProcessService)

	handler := NewSampleHandler(mockSampleService, mockMySamplesService, mockProcessService)

	sample := newTestSample()
	mockSampleService.
		On("GetByName", mock.Anything, testActorID, "14-TB-1").
		Return(sample, nil)
	mockSampleService.
		On("Update", mock.Anything, testActorID, mock.AnythingOfType("*samples.Sample")).
		Return(common.ErrAccessDenied)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "PUT", "/samples/14-TB-1", `{"purpose": "solar cell"}`)
	c.Params = gin.Params{gin.Param{Key: "name", Value: "14-TB-1"}}

	handler.Update(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":6`)
	mockSampleService.AssertExpectations(t)
}

func TestSampleHandler_ListProcesses_Success(t *testing.T) {
	mockSampleService := new(MockSampleService)
	mockMySamplesService := new(MockMySamplesService)
	mockProcessService := new(MockProcessService)

	handler := NewSampleHandler(mockSampleService, mockMySamplesService, mockProcessService)

	sample := newTestSample()
	process := &processes.Process{
		ID:         "3e7d6c5b-4a8f-4d9e-b1c2-0a9b8c7d6e5f",
		Kind:       "thickness-measurement",
		OperatorID: testActorID,
		Timestamp:  time.Now().UTC(),
		Comments:   "second run",
		SampleIDs:  []string{sample.ID},
	}

	mockSampleService.
		On("GetByName", mock.Anything, testActorID, "14-TB-1").
		Return(sample, nil)
	mockProcessService.
		On("ListForSample", mock.Anything, testActorID, sample.ID).
		Return([]*processes.Process{process}, nil)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "GET", "/samples/14-TB-1/processes", "")
	c.Params = gin.Params{gin.Param{Key: "name", Value: "14-TB-1"}}

	handler.ListProcesses(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "thickness-measurement")
	mockProcessService.AssertExpectations(t)
}

func TestSampleHandler_UpdateMySamples_Success(t *testing.T) {
	mockSampleService := new(MockSampleService)
	mockMySamplesService := new(MockMySamplesService)
	mockProcessService := new(MockProcessService)

	handler := NewSampleHandler(mockSampleService, mockMySamplesService, mockProcessService)

	added := []string{"1c9e8a7e-2f6d-4b5a-9c3e-8d7f6a5b4c3d"}
	removed := []string{"2d8f9b6c-3a5e-4c7d-8b2a-1f0e9d8c7b6a"}

	mockMySamplesService.On("Add", mock.Anything, testActorID, added).Return(nil)
	mockMySamplesService.On("Remove", mock.Anything, testActorID, removed).Return(nil)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "PUT", "/my-samples",
		`{"add": ["1c9e8a7e-2f6d-4b5a-9c3e-8d7f6a5b4c3d"], "remove": ["2d8f9b6c-3a5e-4c7d-8b2a-1f0e9d8c7b6a"]}`)

	handler.UpdateMySamples(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "added 1 and removed 1")
	mockMySamplesService.AssertExpectations(t)
}

func TestSampleHandler_UpdateMySamples_UnknownSample(t *testing.T) {
	mockSampleService := new(MockSampleService)
	mockMySamplesService := new(MockMySamplesService)
	mockProcessService := new(MockProcessService)

	handler := NewSampleHandler(mockSampleService, mockMySamplesService, mockProcessService)

	mockMySamplesService.
		On("Add", mock.Anything, testActorID, mock.Anything).
		Return(fmt.Errorf("1 of 1 samples unknown: %w", common.ErrInvalidParameter))

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "PUT", "/my-samples", `{"add": ["1c9e8a7e-2f6d-4b5a-9c3e-8d7f6a5b4c3d"]}`)

	handler.UpdateMySamples(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":5`)
	mockMySamplesService.AssertExpectations(t)
}
