package services

import (
	"errors"

	"conduit-api/helper"
	"conduit-api/models"
	"conduit-api/repositories"

	"gorm.io/gorm"
)

type TagService interface {
	AddTag(slug string, rawText string) (*models.Article, error)
	RemoveTag(slug string, rawText string) (*models.Article, error)
	GetTags() ([]models.Tag, error)
}

type tagService struct {
	tagRepo     repositories.TagRepository
	articleRepo repositories.ArticleRepository
}

func NewTagService(tagRepo repositories.TagRepository, articleRepo repositories.ArticleRepository) TagService {
	return &tagService{
		tagRepo:     tagRepo,
		articleRepo: articleRepo,
	}
}

// AddTag associates a tag with the article, creating the tag on first use.
// Lookup goes through the normalized key, so "Web Dev" and "web dev" hit
// the same record; the first text entered stays as the display name.
// Re-adding an existing association is a no-op.
func (s *tagService) AddTag(slug string, rawText string) (*models.Article, error) {
	article, err := s.getArticle(slug)
	if err != nil {
		return nil, err
	}

	key := helper.NormalizeTag(rawText)
	if key == "" {
		return nil, models.ErrorValidation{Message: "tag text is empty after normalization"}
	}

	tag := models.Tag{Name: rawText, Slug: key}
	if err := s.tagRepo.GetOrCreate(&tag); err != nil {
		return nil, err
	}

	if err := s.articleRepo.AddTag(article.ID, tag.ID); err != nil {
		return nil, err
	}

	return s.getArticle(slug)
}

// RemoveTag looks the tag up by its exact display name, not the
// normalized key. A text that only matches under normalization is not
// found. Asymmetric with AddTag on purpose.
func (s *tagService) RemoveTag(slug string, rawText string) (*models.Article, error) {
	article, err := s.getArticle(slug)
	if err != nil {
		return nil, err
	}

	tag, err := s.tagRepo.GetByName(rawText)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "tag not found"}
		}
		return nil, err
	}

	if err := s.articleRepo.RemoveTag(article.ID, tag.ID); err != nil {
		return nil, err
	}

	return s.getArticle(slug)
}

func (s *tagService) GetTags() ([]models.Tag, error) {
	return s.tagRepo.GetAll()
}

func (s *tagService) getArticle(slug string) (*models.Article, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "article not found"}
		}
		return nil, err
	}
	return article, nil
}
