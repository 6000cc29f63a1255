package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/juliabase/juliabase/internal/domain/status"
)

// StatusHandler defines the interface for handling status message operations
type StatusHandler interface {
	Add(ctx *gin.Context)
	ListCurrent(ctx *gin.Context)
	Withdraw(ctx *gin.Context)
}

type statusHandler struct {
	statusService status.StatusService
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(statusService status.StatusService) StatusHandler {
	return &statusHandler{
		statusService: statusService,
	}
}

// Add handles the POST request to post an apparatus status message
// @Summary Post a status message
// @Description Announce the availability of an apparatus for a time window. Users holding a permission on the process kind get a feed entry.
// @Tags Status
// @Accept json
// @Produce json
// @Param requestBody body CreateStatusMessageRequest true "Status message data"
// @Success 201 {object} StatusMessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /status [post]
func (handler *statusHandler) Add(ctx *gin.Context) {
	var request CreateStatusMessageRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		writeFormError(ctx, fmt.Errorf("invalid status message data: %v", err.Error()))
		return
	}
	if err := request.Validate(); err != nil {
		writeFormError(ctx, err)
		return
	}

	message := &status.StatusMessage{
		ProcessKind: request.ProcessKind,
		Begin:       request.Begin,
		End:         request.End,
		Message:     request.Message,
	}
	created, err := handler.statusService.Add(ctx, currentUserID(ctx), message)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newStatusMessageResponse(created))
}

// ListCurrent handles the GET request to list current status messages
// @Summary List current status messages
// @Description Fetch non-withdrawn status messages whose time window covers now, optionally restricted to one process kind.
// @Tags Status
// @Produce json
// @Param processKind query string false "Process kind"
// @Success 200 {array} StatusMessageResponse
// @Router /status [get]
func (handler *statusHandler) ListCurrent(ctx *gin.Context) {
	processKind := ctx.Query("processKind")

	messageList, err := handler.statusService.ListCurrent(ctx, processKind)
	if err != nil {
		writeError(ctx, err)
		return
	}

	listResponse := []StatusMessageResponse{}
	for _, message := range messageList {
		listResponse = append(listResponse, newStatusMessageResponse(message))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// Withdraw handles the DELETE request to withdraw a status message
// @Summary Withdraw a status message
// @Description Withdraw a posted status message. Requires being its operator or an admin. Withdrawing twice is a no-op.
// @Tags Status
// @Produce json
// @Param id path string true "Status message ID"
// @Success 200 {object} InfoResponse
// @Failure 403 {object} ErrorResponse
// @Router /status/{id} [delete]
func (handler *statusHandler) Withdraw(ctx *gin.Context) {
	messageID := ctx.Param("id")
	if messageID == "" {
		writeMissingParameter(ctx, "id")
		return
	}

	if err := handler.statusService.Withdraw(ctx, currentUserID(ctx), messageID); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{
		Message: fmt.Sprintf("withdrew status message %s", messageID),
	})
}
