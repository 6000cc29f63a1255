//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/juliabase/juliabase/internal/domain/common"
	"github.com/juliabase/juliabase/internal/domain/topics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestTopic() *topics.Topic {
	return &topics.Topic{
		ID:           "6b0a9f8e-7d1c-4a2b-c5d6-3e2f1a0b9c8d",
		Name:         "Thin Films",
		Confidential: false,
		ManagerID:    testActorID,
		MemberIDs:    []string{testActorID},
	}
}

func TestTopicHandler_Create_Success(t *testing.T) {
	mockTopicService := new(MockTopicService)

	handler := NewTopicHandler(mockTopicService)

	topic := newTestTopic()
	mockTopicService.
		On("Create", mock.Anything, testActorID, "Thin Films", false).
		Return(topic, nil)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "POST", "/topics", `{"name": "Thin Films"}`)

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Thin Films")
	mockTopicService.AssertExpectations(t)
}

func TestTopicHandler_GetByName_ConfidentialDenied(t *testing.T) {
	mockTopicService := new(MockTopicService)

	handler := NewTopicHandler(mockTopicService)

	mockTopicService.
		On("GetByName", mock.Anything, testActorID, "Secret Project").
		Return(nil, common.ErrAccessDenied)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "GET", "/topics/Secret Project", "")
	c.Params = gin.Params{gin.Param{Key: "name", Value: "Secret Project"}}

	handler.GetByName(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":6`)
	mockTopicService.AssertExpectations(t)
}

func TestTopicHandler_AddMember_Success(t *testing.T) {
	mockTopicService := new(MockTopicService)

	handler := NewTopicHandler(mockTopicService)

	topic := newTestTopic()
	newMemberID := "5a9f8e7d-6c0b-4f1a-b3c4-2d1e0f9a8b7c"

	mockTopicService.
		On("GetByName", mock.Anything, testActorID, "Thin Films").
		Return(topic, nil)
	mockTopicService.
		On("AddMember", mock.Anything, testActorID, topic.ID, newMemberID).
		Return(nil)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "POST", "/topics/Thin Films/members", `{"user_id": "5a9f8e7d-6c0b-4f1a-b3c4-2d1e0f9a8b7c"}`)
	c.Params = gin.Params{gin.Param{Key: "name", Value: "Thin Films"}}

	handler.AddMember(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockTopicService.AssertExpectations(t)
}

func TestTopicHandler_AddMember_NotManagerDenied(t *testing.T) {
	mockTopicService := new(MockTopicService)

	handler := NewTopicHandler(mockTopicService)

	topic := newTestTopic()
	mockTopicService.
		On("GetByName", mock.Anything, testActorID, "Thin Films").
		Return(topic, nil)
	mockTopicService.
		On("AddMember", mock.Anything, testActorID, topic.ID, mock.Anything).
		Return(common.ErrAccessDenied)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "POST", "/topics/Thin Films/members", `{"user_id": "5a9f8e7d-6c0b-4f1a-b3c4-2d1e0f9a8b7c"}`)
	c.Params = gin.Params{gin.Param{Key: "name", Value: "Thin Films"}}

	handler.AddMember(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockTopicService.AssertExpectations(t)
}

func TestTopicHandler_RemoveMember_Success(t *testing.T) {
	mockTopicService := new(MockTopicService)

	handler := NewTopicHandler(mockTopicService)

	topic := newTestTopic()
	memberID := "5a9f8e7d-6c0b-4f1a-b3c4-2d1e0f9a8b7c"

	mockTopicService.
		On("GetByName", mock.Anything, testActorID, "Thin Films").
		Return(topic, nil)
	mockTopicService.
		On("RemoveMember", mock.Anything, testActorID, topic.ID, memberID).
		Return(nil)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "DELETE", "/topics/Thin Films/members/"+memberID, "")
	c.Params = gin.Params{
		gin.Param{Key: "name", Value: "Thin Films"},
		gin.Param{Key: "userId", Value: memberID},
	}

	handler.RemoveMember(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockTopicService.AssertExpectations(t)
}
