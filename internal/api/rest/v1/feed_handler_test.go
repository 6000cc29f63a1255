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
	"github.com/juliabase/juliabase/internal/domain/feeds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestFeedHandler_Atom_Success(t *testing.T) {
	mockFeedService := new(MockFeedService)

	handler := NewFeedHandler(mockFeedService)

	document := `<?xml version="1.0" encoding="UTF-8"?><feed xmlns="http://www.w3.org/2005/Atom"></feed>`
	mockFeedService.
		On("AtomForUser", mock.Anything, "t.bronger", "feed-token").
		Return(document, nil)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "GET", "/feeds/t.bronger/feed-token", "")
	c.Params = gin.Params{
		gin.Param{Key: "login", Value: "t.bronger"},
		gin.Param{Key: "token", Value: "feed-token"},
	}

	handler.Atom(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/atom+xml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, document, w.Body.String())
	mockFeedService.AssertExpectations(t)
}

func TestFeedHandler_Atom_BadToken(t *testing.T) {
	mockFeedService := new(MockFeedService)

	handler := NewFeedHandler(mockFeedService)

	mockFeedService.
		On("AtomForUser", mock.Anything, "t.bronger", "stale-token").
		Return("", common.ErrAuthFailed)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "GET", "/feeds/t.bronger/stale-token", "")
	c.Params = gin.Params{
		gin.Param{Key: "login", Value: "t.bronger"},
		gin.Param{Key: "token", Value: "stale-token"},
	}

	handler.Atom(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":4`)
	mockFeedService.AssertExpectations(t)
}

func TestFeedHandler_ListEntries_Success(t *testing.T) {
	mockFeedService := new(MockFeedService)

	handler := NewFeedHandler(mockFeedService)

	entry := &feeds.Entry{
		ID:           "8d2c1b0a-9f3e-4c4d-e7f8-5a4b3c2d1e0f",
		Kind:         feeds.KindNewSample,
		Title:        "New sample 14-TB-1",
		Summary:      "14-TB-1 was created",
		Link:         "/samples/14-TB-1",
		OriginatorID: testActorID,
		Timestamp:    time.Now().UTC(),
	}
	mockFeedService.
		On("ListForUser", mock.Anything, testActorID).
		Return([]*feeds.Entry{entry}, nil)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "GET", "/feed", "")

	handler.ListEntries(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "New sample 14-TB-1")
	mockFeedService.AssertExpectations(t)
}
