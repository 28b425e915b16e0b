package handlers

import (
	"conduit-api/helper"
	"conduit-api/models"
	"conduit-api/services"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagService services.TagService
	Helper     *helper.HTTPHelper
}

func NewTagHandler(tagService services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService, Helper: &helper.HTTPHelper{}}
}

func (h *TagHandler) AddTag(c *gin.Context) {
	var req models.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	article, err := h.tagService.AddTag(c.Param("slug"), req.Name)
	if err != nil {
		h.Helper.SendFromError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Tag added", article)
}

func (h *TagHandler) RemoveTag(c *gin.Context) {
	var req models.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	article, err := h.tagService.RemoveTag(c.Param("slug"), req.Name)
	if err != nil {
		h.Helper.SendFromError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Tag removed", article)
}

func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.tagService.GetTags()
	if err != nil {
		h.Helper.SendFromError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", tags)
}
