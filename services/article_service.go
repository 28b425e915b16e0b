package services

import (
	"errors"

	"conduit-api/helper"
	"conduit-api/models"
	"conduit-api/repositories"

	"gorm.io/gorm"
)

type ArticleService interface {
	CreateArticle(req models.CreateArticleRequest, userID uint) (*models.Article, error)
	GetArticle(slug string) (*models.Article, error)
	GetArticles(params models.ArticleListParams) ([]models.Article, int64, error)
	GetFeed(userID uint, page, limit int) ([]models.Article, int64, error)
	UpdateArticle(slug string, req models.UpdateArticleRequest, userID uint) (*models.Article, models.Decision, error)
	DeleteArticle(slug string, userID uint) (models.Decision, error)
}

type articleService struct {
	articleRepo repositories.ArticleRepository
	tagRepo     repositories.TagRepository
	profileRepo repositories.ProfileRepository
}

func NewArticleService(articleRepo repositories.ArticleRepository, tagRepo repositories.TagRepository, profileRepo repositories.ProfileRepository) ArticleService {
	return &articleService{
		articleRepo: articleRepo,
		tagRepo:     tagRepo,
		profileRepo: profileRepo,
	}
}

func (s *articleService) CreateArticle(req models.CreateArticleRequest, userID uint) (*models.Article, error) {
	tags, err := s.resolveTags(req.Tags)
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		AuthorID:    userID,
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		Tags:        tags,
	}

	if err := helper.EnsureArticleSlug(article); err != nil {
		return nil, err
	}

	if err := s.articleRepo.Create(article); err != nil {
		return nil, err
	}

	return s.GetArticle(article.Slug)
}

func (s *articleService) GetArticle(slug string) (*models.Article, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "article not found"}
		}
		return nil, err
	}

	article.FavoritesCount, err = s.profileRepo.CountFavorites(article.ID)
	if err != nil {
		return nil, err
	}

	return article, nil
}

func (s *articleService) GetArticles(params models.ArticleListParams) ([]models.Article, int64, error) {
	articles, total, err := s.articleRepo.GetList(params)
	if err != nil {
		return nil, 0, err
	}

	if err := s.fillFavoritesCounts(articles); err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

func (s *articleService) GetFeed(userID uint, page, limit int) ([]models.Article, int64, error) {
	viewer, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, models.ErrorNotFound{Message: "profile not found"}
		}
		return nil, 0, err
	}

	authorIDs, err := s.profileRepo.GetFollowedUserIDs(viewer.ID)
	if err != nil {
		return nil, 0, err
	}

	articles, total, err := s.articleRepo.GetFeed(authorIDs, page, limit)
	if err != nil {
		return nil, 0, err
	}

	if err := s.fillFavoritesCounts(articles); err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

// UpdateArticle edits title, description and body. The slug assigned at
// creation is never recomputed, so the URL survives title edits. A
// non-owner gets Denied and the unchanged article back.
func (s *articleService) UpdateArticle(slug string, req models.UpdateArticleRequest, userID uint) (*models.Article, models.Decision, error) {
	article, err := s.GetArticle(slug)
	if err != nil {
		return nil, models.Authorized, err
	}

	if article.AuthorID != userID {
		return article, models.Denied, nil
	}

	if req.Title != "" {
		article.Title = req.Title
	}
	if req.Description != "" {
		article.Description = req.Description
	}
	if req.Body != "" {
		article.Body = req.Body
	}

	if err := s.articleRepo.Update(article); err != nil {
		return nil, models.Authorized, err
	}

	return article, models.Authorized, nil
}

func (s *articleService) DeleteArticle(slug string, userID uint) (models.Decision, error) {
	article, err := s.GetArticle(slug)
	if err != nil {
		return models.Authorized, err
	}

	if article.AuthorID != userID {
		return models.Denied, nil
	}

	return models.Authorized, s.articleRepo.Delete(article)
}

// resolveTags turns raw tag texts into tag records, one per normalized
// key. Texts that normalize to nothing are dropped.
func (s *articleService) resolveTags(rawTags []string) ([]models.Tag, error) {
	var tags []models.Tag
	seen := make(map[string]bool)

	for _, raw := range rawTags {
		key := helper.NormalizeTag(raw)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		tag := models.Tag{Name: raw, Slug: key}
		if err := s.tagRepo.GetOrCreate(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

func (s *articleService) fillFavoritesCounts(articles []models.Article) error {
	for i := range articles {
		count, err := s.profileRepo.CountFavorites(articles[i].ID)
		if err != nil {
			return err
		}
		articles[i].FavoritesCount = count
	}
	return nil
}
