package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/juliabase/juliabase/internal/domain/topics"
)

// TopicHandler defines the interface for handling topic operations
type TopicHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByName(ctx *gin.Context)
	AddMember(ctx *gin.Context)
	RemoveMember(ctx *gin.Context)
}

type topicHandler struct {
	topicService topics.TopicService
}

// NewTopicHandler creates a new TopicHandler
func NewTopicHandler(topicService topics.TopicService) TopicHandler {
	return &topicHandler{
		topicService: topicService,
	}
}

// Create handles the POST request to create a topic
// @Summary Create a topic
// @Description Create a topic managed by the caller. Confidential topics hide their samples from non-members.
// @Tags Topic
// @Accept json
// @Produce json
// @Param requestBody body CreateTopicRequest true "Topic data"
// @Success 201 {object} TopicResponse
// @Failure 400 {object} ErrorResponse
// @Router /topics [post]
func (handler *topicHandler) Create(ctx *gin.Context) {
	var request CreateTopicRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		writeFormError(ctx, fmt.Errorf("invalid topic data: %v", err.Error()))
		return
	}
	if err := request.Validate(); err != nil {
		writeFormError(ctx, err)
		return
	}

	topic, err := handler.topicService.Create(ctx, currentUserID(ctx), request.Name, request.Confidential)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newTopicResponse(topic))
}

// List handles the GET request to list topics visible to the caller
// @Summary List topics
// @Description Fetch all topics the caller may see. Confidential topics are omitted for non-members.
// @Tags Topic
// @Produce json
// @Success 200 {array} TopicResponse
// @Router /topics [get]
func (handler *topicHandler) List(ctx *gin.Context) {
	topicList, err := handler.topicService.List(ctx, currentUserID(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}

	listResponse := []TopicResponse{}
	for _, topic := range topicList {
		listResponse = append(listResponse, newTopicResponse(topic))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// GetByName handles the GET request to retrieve a topic by name
// @Summary Retrieve a topic by name
// @Tags Topic
// @Produce json
// @Param name path string true "Topic name"
// @Success 200 {object} TopicResponse
// @Failure 404 {object} ErrorResponse
// @Router /topics/{name} [get]
func (handler *topicHandler) GetByName(ctx *gin.Context) {
	name := ctx.Param("name")
	if name == "" {
		writeMissingParameter(ctx, "name")
		return
	}

	topic, err := handler.topicService.GetByName(ctx, currentUserID(ctx), name)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newTopicResponse(topic))
}

// AddMember handles the POST request to add a user to a topic
// @Summary Add a topic member
// @Description Add a user to the topic. Requires being the topic manager or an admin.
// @Tags Topic
// @Accept json
// @Produce json
// @Param name path string true "Topic name"
// @Param requestBody body TopicMemberRequest true "Member data"
// @Success 200 {object} InfoResponse
// @Failure 403 {object} ErrorResponse
// @Router /topics/{name}/members [post]
func (handler *topicHandler) AddMember(ctx *gin.Context) {
	name := ctx.Param("name")
	if name == "" {
		writeMissingParameter(ctx, "name")
		return
	}

	var request TopicMemberRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		writeFormError(ctx, fmt.Errorf("invalid member data: %v", err.Error()))
		return
	}
	if err := request.Validate(); err != nil {
		writeFormError(ctx, err)
		return
	}

	actorID := currentUserID(ctx)
	topic, err := handler.topicService.GetByName(ctx, actorID, name)
	if err != nil {
		writeError(ctx, err)
		return
	}

	if err := handler.topicService.AddMember(ctx, actorID, topic.ID, request.UserID); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{
		Message: fmt.Sprintf("added user %s to topic %s", request.UserID, name),
	})
}

// RemoveMember handles the DELETE request to remove a user from a topic
// @Summary Remove a topic member
// @Description Remove a user from the topic. Requires being the topic manager or an admin.
// @Tags Topic
// @Produce json
// @Param name path string true "Topic name"
// @Param userId path string true "User ID"
// @Success 200 {object} InfoResponse
// @Failure 403 {object} ErrorResponse
// @Router /topics/{name}/members/{userId} [delete]
func (handler *topicHandler) RemoveMember(ctx *gin.Context) {
	name := ctx.Param("name")
	if name == "" {
		writeMissingParameter(ctx, "name")
		return
	}
	userID := ctx.Param("userId")
	if userID == "" {
		writeMissingParameter(ctx, "userId")
		return
	}

	actorID := currentUserID(ctx)
	topic, err := handler.topicService.GetByName(ctx, actorID, name)
	if err != nil {
		writeError(ctx, err)
		return
	}

	if err := handler.topicService.RemoveMember(ctx, actorID, topic.ID, userID); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{
		Message: fmt.Sprintf("removed user %s from topic %s", userID, name),
	})
}
