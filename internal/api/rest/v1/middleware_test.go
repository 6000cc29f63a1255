//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/juliabase/juliabase/internal/domain/common"
	"github.com/stretchr/testify/assert"
)

func TestBearerAuth_SetsUserID(t *testing.T) {
	mockTokenService := new(MockTokenService)
	mockTokenService.On("Verify", "good-token").Return(testActorID, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest("GET", "/samples", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	c.Request = req

	BearerAuth(mockTokenService)(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, testActorID, currentUserID(c))
	mockTokenService.AssertExpectations(t)
}

func TestBearerAuth_MissingHeader(t *testing.T) {
	mockTokenService := new(MockTokenService)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest("GET", "/samples", nil)
	c.Request = req

	BearerAuth(mockTokenService)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockTokenService.AssertNotCalled(t, "Verify")
}

func TestBearerAuth_InvalidToken(t *testing.T) {
	mockTokenService := new(MockTokenService)
	mockTokenService.On("Verify", "stale-token").Return("", common.ErrAuthFailed)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest("GET", "/samples", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	c.Request = req

	BearerAuth(mockTokenService)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":4`)
	mockTokenService.AssertExpectations(t)
}
