package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stridefoot/footwear-erp-api/logger"
	"github.com/stridefoot/footwear-erp-api/middleware"
	"github.com/stridefoot/footwear-erp-api/services"
)

// UserController serves user provisioning endpoints
type UserController struct {
	users *services.UserService
	log   *logger.Logger
}

func NewUserController(users *services.UserService, log *logger.Logger) *UserController {
	return &UserController{users: users, log: log}
}

// CreateUserRequest is the body of POST /api/users
type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// UpdateRoleRequest is the body of PUT /api/users/:id/role
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// RegisterRequest is the optional body of POST /api/users/me
type RegisterRequest struct {
	Role string `json:"role"`
}

// CreateUser handles POST /api/users
func (ctl *UserController) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := ctl.users.CreateUser(c.Request.Context(), services.NewUser{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	respondSuccess(c, http.StatusCreated, user)
}

// GetUser handles GET /api/users/:id
func (ctl *UserController) GetUser(c *gin.Context) {
	user, err := ctl.users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondSuccess(c, http.StatusOK, user)
}

// UpdateRole handles PUT /api/users/:id/role
func (ctl *UserController) UpdateRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := ctl.users.ChangeRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondSuccess(c, http.StatusOK, user)
}

// GetCurrentUser handles GET /api/users/me for token-authenticated callers
func (ctl *UserController) GetCurrentUser(c *gin.Context) {
	subject, err := middleware.GetUserID(c)
	if err != nil {
		respondFailure(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user ID from token")
		return
	}

	user, err := ctl.users.GetBySubject(c.Request.Context(), subject)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondSuccess(c, http.StatusOK, user)
}

// RegisterCurrentUser handles POST /api/users/me - creates the caller's user
// from the identity provider's profile
func (ctl *UserController) RegisterCurrentUser(c *gin.Context) {
	subject, err := middleware.GetUserID(c)
	if err != nil {
		respondFailure(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user ID from token")
		return
	}
	accessToken, err := middleware.GetAccessToken(c)
	if err != nil {
		respondFailure(c, http.StatusUnauthorized, "MISSING_TOKEN", "Access token not found")
		return
	}

	var req RegisterRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
	}

	user, err := ctl.users.RegisterIdentity(c.Request.Context(), subject, accessToken, req.Role)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondSuccess(c, http.StatusCreated, user)
}
