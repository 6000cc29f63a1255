package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/juliabase/juliabase/internal/domain/feeds"
)

// FeedHandler defines the interface for handling news feed operations
type FeedHandler interface {
	Atom(ctx *gin.Context)
	ListEntries(ctx *gin.Context)
}

type feedHandler struct {
	feedService feeds.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService feeds.FeedService) FeedHandler {
	return &feedHandler{
		feedService: feedService,
	}
}

// Atom handles the GET request to render a user's Atom feed
// @Summary Render a user's Atom feed
// @Description Render the Atom 1.0 document of the user's news feed. The token in the path stands in for a session because feed readers cannot send auth headers.
// @Tags Feed
// @Produce xml
// @Param login path string true "Login name"
// @Param token path string true "Feed token"
// @Success 200 {string} string "Atom document"
// @Failure 401 {object} ErrorResponse
// @Router /feeds/{login}/{token} [get]
func (handler *feedHandler) Atom(ctx *gin.Context) {
	login := ctx.Param("login")
	if login == "" {
		writeMissingParameter(ctx, "login")
		return
	}
	token := ctx.Param("token")
	if token == "" {
		writeMissingParameter(ctx, "token")
		return
	}

	document, err := handler.feedService.AtomForUser(ctx, login, token)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "application/atom+xml; charset=utf-8", []byte(document))
}

// ListEntries handles the GET request to list the caller's feed entries
// @Summary List the caller's feed entries as JSON
// @Tags Feed
// @Produce json
// @Success 200 {array} FeedEntryResponse
// @Router /feed [get]
func (handler *feedHandler) ListEntries(ctx *gin.Context) {
	entries, err := handler.feedService.ListForUser(ctx, currentUserID(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}

	listResponse := []FeedEntryResponse{}
	for _, entry := range entries {
		listResponse = append(listResponse, newFeedEntryResponse(entry))
	}
	ctx.JSON(http.StatusOK, listResponse)
}
