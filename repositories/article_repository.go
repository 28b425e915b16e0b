package repositories

import (
	"conduit-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArticleRepository interface {
	Create(article *models.Article) error
	GetBySlug(slug string) (*models.Article, error)
	GetList(params models.ArticleListParams) ([]models.Article, int64, error)
	GetFeed(authorIDs []uint, page, limit int) ([]models.Article, int64, error)
	Update(article *models.Article) error
	Delete(article *models.Article) error
	AddTag(articleID, tagID uint) error
	RemoveTag(articleID, tagID uint) error
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

func (r *articleRepository) GetBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Author").
		Preload("Tags").
		Where("slug = ?", slug).
		First(&article).Error
	return &article, err
}

func (r *articleRepository) GetList(params models.ArticleListParams) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	query := r.db.Model(&models.Article{}).Preload("Author").Preload("Tags")

	if params.Tag != "" {
		query = query.Joins("JOIN article_tags ON article_tags.article_id = articles.id").
			Joins("JOIN tags ON tags.id = article_tags.tag_id").
			Where("tags.slug = ?", params.Tag)
	}

	if params.Author != "" {
		query = query.Joins("JOIN users ON users.id = articles.author_id").
			Where("users.username = ?", params.Author)
	}

	if params.Favorited != "" {
		query = query.Joins("JOIN profile_favorites ON profile_favorites.article_id = articles.id").
			Joins("JOIN profiles ON profiles.id = profile_favorites.profile_id").
			Joins("JOIN users AS favoriting_users ON favoriting_users.id = profiles.user_id").
			Where("favoriting_users.username = ?", params.Favorited)
	}

	query.Count(&total)

	offset := (params.Page - 1) * params.Limit
	err := query.Order("articles.created_at desc").
		Offset(offset).Limit(params.Limit).
		Find(&articles).Error

	return articles, total, err
}

func (r *articleRepository) GetFeed(authorIDs []uint, page, limit int) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	if len(authorIDs) == 0 {
		return articles, 0, nil
	}

	query := r.db.Model(&models.Article{}).
		Preload("Author").Preload("Tags").
		Where("author_id IN ?", authorIDs)

	query.Count(&total)

	offset := (page - 1) * limit
	err := query.Order("articles.created_at desc").
		Offset(offset).Limit(limit).
		Find(&articles).Error

	return articles, total, err
}

func (r *articleRepository) Update(article *models.Article) error {
	return r.db.Omit(clause.Associations).Save(article).Error
}

// Delete removes the article together with its comments, favorite edges
// and tag links in one transaction.
func (r *articleRepository) Delete(article *models.Article) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.ArticleTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(article).Error
	})
}

func (r *articleRepository) AddTag(articleID, tagID uint) error {
	link := models.ArticleTag{ArticleID: articleID, TagID: tagID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
}

func (r *articleRepository) RemoveTag(articleID, tagID uint) error {
	return r.db.Where("article_id = ? AND tag_id = ?", articleID, tagID).
		Delete(&models.ArticleTag{}).Error
}
