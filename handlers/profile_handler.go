package handlers

import (
	"conduit-api/helper"
	"conduit-api/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService services.ProfileService
	Helper         *helper.HTTPHelper
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, Helper: &helper.HTTPHelper{}}
}

// GetProfile is viewer-aware: with a valid token the response carries the
// following flag relative to the caller.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	var viewerID uint
	if id, exists := c.Get("user_id"); exists {
		viewerID = id.(uint)
	}

	profile, err := h.profileService.GetProfile(c.Param("username"), viewerID)
	if err != nil {
		h.Helper.SendFromError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", profile)
}

func (h *ProfileHandler) Follow(c *gin.Context) {
	userID, _ := c.Get("user_id")

	profile, err := h.profileService.Follow(userID.(uint), c.Param("username"))
	if err != nil {
		h.Helper.SendFromError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Followed", profile)
}

func (h *ProfileHandler) Unfollow(c *gin.Context) {
	userID, _ := c.Get("user_id")

	profile, err := h.profileService.Unfollow(userID.(uint), c.Param("username"))
	if err != nil {
		h.Helper.SendFromError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Unfollowed", profile)
}

func (h *ProfileHandler) Favorite(c *gin.Context) {
	userID, _ := c.Get("user_id")

	article, err := h.profileService.Favorite(userID.(uint), c.Param("slug"))
	if err != nil {
		h.Helper.SendFromError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Favorited", article)
}

func (h *ProfileHandler) Unfavorite(c *gin.Context) {
	userID, _ := c.Get("user_id")

	article, err := h.profileService.Unfavorite(userID.(uint), c.Param("slug"))
	if err != nil {
		h.Helper.SendFromError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Unfavorited", article)
}
