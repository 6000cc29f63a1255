package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/juliabase/juliabase/internal/domain/users"
)

// UserHandler defines the interface for handling account operations
type UserHandler interface {
	Login(ctx *gin.Context)
	Register(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByLogin(ctx *gin.Context)
	GrantPermission(ctx *gin.Context)
	RevokePermission(ctx *gin.Context)
}

type userHandler struct {
	userService  users.UserService
	tokenService users.TokenService
	permissions  users.PermissionChecker
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService users.UserService, tokenService users.TokenService, permissions users.PermissionChecker) UserHandler {
	return &userHandler{
		userService:  userService,
		tokenService: tokenService,
		permissions:  permissions,
	}
}

// Login handles the POST request to authenticate and issue a bearer token
// @Summary Authenticate and receive a bearer token
// @Description Check login name and password and return a signed token with its expiry.
// @Tags User
// @Accept json
// @Produce json
// @Param requestBody body LoginRequest true "Credentials"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} ErrorResponse
// @Router /login [post]
func (handler *userHandler) Login(ctx *gin.Context) {
	var request LoginRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		writeFormError(ctx, fmt.Errorf("invalid login data: %v", err.Error()))
		return
	}

	if err := request.Validate(); err != nil {
		writeFormError(ctx, err)
		return
	}

	user, err := handler.userService.Authenticate(ctx, request.LoginName, request.Password)
	if err != nil {
		writeError(ctx, err)
		return
	}

	token, expiry, err := handler.tokenService.Issue(user)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, TokenResponse{
		Token:  token,
		Expiry: expiry,
		User:   newUserResponse(user),
	})
}

// Register handles the POST request to create a new account
// @Summary Register a new account
// @Description Create a new user account. Only admins may call this.
// @Tags User
// @Accept json
// @Produce json
// @Param requestBody body CreateUserRequest true "Account data"
// @Success 201 {object} UserResponse
// @Failure 403 {object} ErrorResponse
// @Router /users [post]
func (handler *userHandler) Register(ctx *gin.Context) {
	var request CreateUserRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		writeFormError(ctx, fmt.Errorf("invalid account data: %v", err.Error()))
		return
	}

	if err := request.Validate(); err != nil {
		writeFormError(ctx, err)
		return
	}

	actor, err := handler.userService.GetByID(ctx, currentUserID(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}
	if !actor.IsAdmin {
		writeErrorCode(ctx, CodeAccessDenied, fmt.Sprintf("user %s may not register accounts", actor.LoginName))
		return
	}

	user, err := handler.userService.Register(ctx, request.LoginName, request.DisplayName, request.Email, request.Password)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newUserResponse(user))
}

// List handles the GET request to list all accounts
// @Summary List accounts
// @Tags User
// @Produce json
// @Success 200 {array} UserResponse
// @Router /users [get]
func (handler *userHandler) List(ctx *gin.Context) {
	userList, err := handler.userService.List(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	listResponse := []UserResponse{}
	for _, user := range userList {
		listResponse = append(listResponse, newUserResponse(user))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// GetByLogin handles the GET request to fetch one account by login name
// @Summary Retrieve an account by login name
// @Tags User
// @Produce json
// @Param login path string true "Login name"
// @Success 200 {object} UserResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{login} [get]
func (handler *userHandler) GetByLogin(ctx *gin.Context) {
	loginName := ctx.Param("login")
	if loginName == "" {
		writeMissingParameter(ctx, "login")
		return
	}

	user, err := handler.userService.GetByLogin(ctx, loginName)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newUserResponse(user))
}

// GrantPermission handles the POST request to grant a permission
// @Summary Grant a permission verb on a process kind
// @Description Grant "add", "edit" or "view" on a process kind to a user. Only admins may call this.
// @Tags User
// @Accept json
// @Produce json
// @Param requestBody body PermissionRequest true "Grant"
// @Success 200 {object} InfoResponse
// @Failure 403 {object} ErrorResponse
// @Router /permissions [post]
func (handler *userHandler) GrantPermission(ctx *gin.Context) {
	var request PermissionRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		writeFormError(ctx, fmt.Errorf("invalid permission data: %v", err.Error()))
		return
	}

	if err := request.Validate(); err != nil {
		writeFormError(ctx, err)
		return
	}

	err := handler.permissions.Grant(ctx, currentUserID(ctx), request.UserID, request.ProcessKind, request.Permission)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{
		Message: fmt.Sprintf("granted %s on %s", request.Permission, request.ProcessKind),
	})
}

// RevokePermission handles the DELETE request to revoke a permission
// @Summary Revoke a permission verb on a process kind
// @Tags User
// @Accept json
// @Produce json
// @Param requestBody body PermissionRequest true "Revocation"
// @Success 200 {object} InfoResponse
// @Failure 403 {object} ErrorResponse
// @Router /permissions [delete]
func (handler *userHandler) RevokePermission(ctx *gin.Context) {
	var request PermissionRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		writeFormError(ctx, fmt.Errorf("invalid permission data: %v", err.Error()))
		return
	}

	if err := request.Validate(); err != nil {
		writeFormError(ctx, err)
		return
	}

	err := handler.permissions.Revoke(ctx, currentUserID(ctx), request.UserID, request.ProcessKind, request.Permission)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{
		Message: fmt.Sprintf("revoked %s on %s", request.Permission, request.ProcessKind),
	})
}
