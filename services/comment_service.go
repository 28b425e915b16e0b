package services

import (
	"errors"

	"conduit-api/models"
	"conduit-api/repositories"

	"gorm.io/gorm"
)

type CommentService interface {
	CreateComment(slug string, req models.CreateCommentRequest, userID uint) (*models.Comment, error)
	GetComments(slug string) ([]models.Comment, error)
	DeleteComment(slug string, commentID uint, userID uint) (models.Decision, error)
}

type commentService struct {
	commentRepo repositories.CommentRepository
	articleRepo repositories.ArticleRepository
}

func NewCommentService(commentRepo repositories.CommentRepository, articleRepo repositories.ArticleRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
	}
}

func (s *commentService) CreateComment(slug string, req models.CreateCommentRequest, userID uint) (*models.Comment, error) {
	article, err := s.getArticle(slug)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Body:      req.Body,
		AuthorID:  userID,
		ArticleID: article.ID,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(comment.ID)
}

func (s *commentService) GetComments(slug string) ([]models.Comment, error) {
	article, err := s.getArticle(slug)
	if err != nil {
		return nil, err
	}
	return s.commentRepo.GetByArticleID(article.ID)
}

// DeleteComment removes a comment when the actor wrote it; anyone else
// gets Denied and nothing changes.
func (s *commentService) DeleteComment(slug string, commentID uint, userID uint) (models.Decision, error) {
	article, err := s.getArticle(slug)
	if err != nil {
		return models.Authorized, err
	}

	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Authorized, models.ErrorNotFound{Message: "comment not found"}
		}
		return models.Authorized, err
	}

	if comment.ArticleID != article.ID {
		return models.Authorized, models.ErrorNotFound{Message: "comment not found"}
	}

	if comment.AuthorID != userID {
		return models.Denied, nil
	}

	return models.Authorized, s.commentRepo.Delete(commentID)
}

func (s *commentService) getArticle(slug string) (*models.Article, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "article not found"}
		}
		return nil, err
	}
	return article, nil
}
