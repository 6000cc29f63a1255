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
	"github.com/juliabase/juliabase/internal/domain/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestUser(isAdmin bool) *users.User {
	return &users.User{
		ID:             testActorID,
		LoginName:      "t.bronger",
		DisplayName:    "Torsten Bronger",
		Email:          "t.bronger@example.com",
		HashedPassword: "ignored",
		IsActive:       true,
		IsAdmin:        isAdmin,
		DateJoined:     time.Now().UTC(),
	}
}

func TestUserHandler_Login_Success(t *testing.T) {
	mockUserService := new(MockUserService)
	mockTokenService := new(MockTokenService)
	mockPermissionChecker := new(MockPermissionChecker)

	handler := NewUserHandler(mockUserService, mockTokenService, mockPermissionChecker)

	user := newTestUser(false)
	mockUserService.
		On("Authenticate", mock.Anything, "t.bronger", "secret-password").
		Return(user, nil)
	mockTokenService.
		On("Issue", user).
		Return("signed-token", time.Now().Add(time.Hour).Unix(), nil)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "POST", "/login", `{"login_name": "t.bronger", "password": "secret-password"}`)

	handler.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "signed-token")
	assert.Contains(t, w.Body.String(), "t.bronger")
	mockUserService.AssertExpectations(t)
	mockTokenService.AssertExpectations(t)
}

func TestUserHandler_Login_BadCredentials(t *testing.T) {
	mockUserService := new(MockUserService)
	mockTokenService := new(MockTokenService)
	mockPermissionChecker := new(MockPermissionChecker)

	handler := NewUserHandler(mockUserService, mockTokenService, mockPermissionChecker)

	mockUserService.
		On("Authenticate", mock.Anything, "t.bronger", "wrong").
		Return(nil, common.ErrAuthFailed)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "POST", "/login", `{"login_name": "t.bronger", "password": "wrong"}`)

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":4`)
	mockTokenService.AssertNotCalled(t, "Issue")
}

func TestUserHandler_Register_Success(t *testing.T) {
	mockUserService := new(MockUserService)
	mockTokenService := new(MockTokenService)
	mockPermissionChecker := new(MockPermissionChecker)

	handler := NewUserHandler(mockUserService, mockTokenService, mockPermissionChecker)

	admin := newTestUser(true)
	created := newTestUser(false)
	created.ID = "5a9f8e7d-6c0b-4f1a-b3c4-2d1e0f9a8b7c"
	created.LoginName = "m.schmidt"

	mockUserService.On("GetByID", mock.Anything, testActorID).Return(admin, nil)
	mockUserService.
		On("Register", mock.Anything, "m.schmidt", "Maria Schmidt", "m.schmidt@example.com", "longenough").
		Return(created, nil)

	requestBody := `{
		"login_name": "m.schmidt",
		"display_name": "Maria Schmidt",
		"email": "m.schmidt@example.com",
		"password": "longenough"
	}`

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "POST", "/users", requestBody)

	handler.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "m.schmidt")
	mockUserService.AssertExpectations(t)
}

func TestUserHandler_Register_NonAdminDenied(t *testing.T) {
	mockUserService := new(MockUserService)
	mockTokenService := new(MockTokenService)
	mockPermissionChecker := new(MockPermissionChecker)

	handler := NewUserHandler(mockUserService, mockTokenService, mockPermissionChecker)

	mockUserService.On("GetByID", mock.Anything, testActorID).Return(newTestUser(false), nil)

	requestBody := `{
		"login_name": "m.schmidt",
		"display_name": "Maria Schmidt",
		"email": "m.schmidt@example.com",
		"password": "longenough"
	}`

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "POST", "/users", requestBody)

	handler.Register(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":6`)
	mockUserService.AssertNotCalled(t, "Register")
}

func TestUserHandler_GetByLogin_Success(t *testing.T) {
	mockUserService := new(MockUserService)
	mockTokenService := new(MockTokenService)
	mockPermissionChecker := new(MockPermissionChecker)

	handler := NewUserHandler(mockUserService, mockTokenService, mockPermissionChecker)

	user := newTestUser(false)
	mockUserService.On("GetByLogin", mock.Anything, "t.bronger").Return(user, nil)

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "GET", "/users/t.bronger", "")
	c.Params = gin.Params{gin.Param{Key: "login", Value: "t.bronger"}}

	handler.GetByLogin(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Torsten Bronger")
	mockUserService.AssertExpectations(t)
}

func TestUserHandler_GrantPermission_Success(t *testing.T) {
	mockUserService := new(MockUserService)
	mockTokenService := new(MockTokenService)
	mockPermissionChecker := new(MockPermissionChecker)

	handler := NewUserHandler(mockUserService, mockTokenService, mockPermissionChecker)

	mockPermissionChecker.
		On("Grant", mock.Anything, testActorID, "5a9f8e7d-6c0b-4f1a-b3c4-2d1e0f9a8b7c", "deposition", "add").
		Return(nil)

	requestBody := `{
		"user_id": "5a9f8e7d-6c0b-4f1a-b3c4-2d1e0f9a8b7c",
		"process_kind": "deposition",
		"permission": "add"
	}`

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "POST", "/permissions", requestBody)

	handler.GrantPermission(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockPermissionChecker.AssertExpectations(t)
}

func TestUserHandler_GrantPermission_InvalidVerb(t *testing.T) {
	mockUserService := new(MockUserService)
	mockTokenService := new(MockTokenService)
	mockPermissionChecker := new(MockPermissionChecker)

	handler := NewUserHandler(mockUserService, mockTokenService, mockPermissionChecker)

	requestBody := `{
		"user_id": "5a9f8e7d-6c0b-4f1a-b3c4-2d1e0f9a8b7c",
		"process_kind": "deposition",
		"permission": "own"
	}`

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "POST", "/permissions", requestBody)

	handler.GrantPermission(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockPermissionChecker.AssertNotCalled(t, "Grant")
}

func TestUserHandler_RevokePermission_NonAdminDenied(t *testing.T) {
	mockUserService := new(MockUserService)
	mockTokenService := new(MockTokenService)
	mockPermissionChecker := new(MockPermissionChecker)

	handler := NewUserHandler(mockUserService, mockTokenService, mockPermissionChecker)

	mockPermissionChecker.
		On("Revoke", mock.Anything, testActorID, "5a9f8e7d-6c0b-4f1a-b3c4-2d1e0f9a8b7c", "deposition", "add").
		Return(common.ErrAccessDenied)

	requestBody := `{
		"user_id": "5a9f8e7d-6c0b-4f1a-b3c4-2d1e0f9a8b7c",
		"process_kind": "deposition",
		"permission": "add"
	}`

	w := httptest.NewRecorder()
	c := authedTestContext(t, w, "DELETE", "/permissions", requestBody)

	handler.RevokePermission(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockPermissionChecker.AssertExpectations(t)
}
