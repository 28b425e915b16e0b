package handlers

import (
	"net/http"

	"conduit-api/helper"
	"conduit-api/models"
	"conduit-api/services"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	articleService services.ArticleService
	Helper         *helper.HTTPHelper
}

func NewArticleHandler(articleService services.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService, Helper: &helper.HTTPHelper{}}
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req models.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	article, err := h.articleService.CreateArticle(req, userID.(uint))
	if err != nil {
		h.Helper.SendFromError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Article created", article)
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	article, err := h.articleService.GetArticle(c.Param("slug"))
	if err != nil {
		h.Helper.SendFromError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", article)
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	var params models.ArticleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	if params.Page == 0 {
		params.Page = 1
	}
	if params.Limit == 0 {
		params.Limit = 10
	}

	articles, total, err := h.articleService.GetArticles(params)
	if err != nil {
		h.Helper.SendFromError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", gin.H{
		"articles":   articles,
		"pagination": h.Helper.GeneratePaging(c, 0, 0, params.Limit, params.Page, int(total)),
	})
}

func (h *ArticleHandler) GetFeed(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var params models.ArticleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	if params.Page == 0 {
		params.Page = 1
	}
	if params.Limit == 0 {
		params.Limit = 10
	}

	articles, total, err := h.articleService.GetFeed(userID.(uint), params.Page, params.Limit)
	if err != nil {
		h.Helper.SendFromError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", gin.H{
		"articles":   articles,
		"pagination": h.Helper.GeneratePaging(c, 0, 0, params.Limit, params.Page, int(total)),
	})
}

func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	userID, _ := c.Get("user_id")
	slug := c.Param("slug")

	var req models.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	article, decision, err := h.articleService.UpdateArticle(slug, req, userID.(uint))
	if err != nil {
		h.Helper.SendFromError(c, err)
		return
	}

	// A non-owner is sent back to the read view, no error surfaced.
	if decision == models.Denied {
		c.Redirect(http.StatusSeeOther, "/api/v1/articles/"+slug)
		return
	}

	h.Helper.SendSuccess(c, "Article updated", article)
}

func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	userID, _ := c.Get("user_id")
	slug := c.Param("slug")

	decision, err := h.articleService.DeleteArticle(slug, userID.(uint))
	if err != nil {
		h.Helper.SendFromError(c, err)
		return
	}

	if decision == models.Denied {
		c.Redirect(http.StatusSeeOther, "/api/v1/articles/"+slug)
		return
	}

	h.Helper.SendSuccess(c, "Article deleted", h.Helper.EmptyJsonMap())
}
