package handlers

import (
	"conduit-api/helper"
	"conduit-api/models"
	"conduit-api/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
	Helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: &helper.HTTPHelper{}}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	response, err := h.authService.Register(req)
	if err != nil {
		h.Helper.SendFromError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Register success", response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	response, err := h.authService.Login(req)
	if err != nil {
		h.Helper.SendFromError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Login success", response)
}

// Logout exists for the route surface; tokens are stateless, dropping the
// token is the client's job.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Helper.SendSuccess(c, "Logout success", h.Helper.EmptyJsonMap())
}

func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
		return
	}

	user, err := h.authService.GetUserByID(userID.(uint))
	if err != nil {
		h.Helper.SendFromError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "User loaded", user)
}

func (h *AuthHandler) UpdateUser(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	user, profile, err := h.authService.UpdateUser(userID.(uint), req)
	if err != nil {
		h.Helper.SendFromError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Settings updated", gin.H{
		"user":    user,
		"profile": profile,
	})
}
