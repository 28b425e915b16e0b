package handlers

import (
	"net/http"
	"strconv"

	"conduit-api/helper"
	"conduit-api/models"
	"conduit-api/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService services.CommentService
	Helper         *helper.HTTPHelper
}

func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService, Helper: &helper.HTTPHelper{}}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	comment, err := h.commentService.CreateComment(c.Param("slug"), req, userID.(uint))
	if err != nil {
		h.Helper.SendFromError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Comment created", comment)
}

func (h *CommentHandler) GetComments(c *gin.Context) {
	comments, err := h.commentService.GetComments(c.Param("slug"))
	if err != nil {
		h.Helper.SendFromError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", comments)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, _ := c.Get("user_id")
	slug := c.Param("slug")

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid comment ID", h.Helper.EmptyJsonMap())
		return
	}

	decision, err := h.commentService.DeleteComment(slug, uint(commentID), userID.(uint))
	if err != nil {
		h.Helper.SendFromError(c, err)
		return
	}

	if decision == models.Denied {
		c.Redirect(http.StatusSeeOther, "/api/v1/articles/"+slug)
		return
	}

	h.Helper.SendSuccess(c, "Comment deleted", h.Helper.EmptyJsonMap())
}
