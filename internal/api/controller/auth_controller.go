package controller

import (
	"ctchen222/bucketlist/internal/api/middleware"
	"ctchen222/bucketlist/internal/api/models"
	"ctchen222/bucketlist/internal/api/response"
	"ctchen222/bucketlist/internal/api/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthController handles registration, login and profile edits.
type AuthController struct {
	authService service.AuthService
}

// NewAuthController creates a new AuthController.
func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Register handles POST /auth/register. A new user gets a token right
// away so the client does not need a follow-up login.
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := ac.authService.Register(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, "registration_success", gin.H{
		"user_id":    result.UserID,
		"user_token": result.Token,
	})
}

// Login handles POST /auth/login.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	token, err := ac.authService.Login(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, "login_success", gin.H{"user_token": token})
}

// EditUser handles POST /auth/edituser. The edited user is always the
// one the token resolved to; the id field in the body is ignored.
func (ac *AuthController) EditUser(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Access Denied. Log in Again.")
		return
	}

	var req models.EditUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	messages, err := ac.authService.EditUser(c.Request.Context(), userID, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Messages(c, messages)
}
