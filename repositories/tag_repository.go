package repositories

import (
	"conduit-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepository interface {
	GetOrCreate(tag *models.Tag) error
	GetByName(name string) (*models.Tag, error)
	GetBySlug(slug string) (*models.Tag, error)
	GetAll() ([]models.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// GetOrCreate inserts the tag keyed by its slug, relying on the unique
// index instead of a check-then-act lookup so concurrent creates of the
// same key cannot both pass. On conflict the existing row is fetched.
func (r *tagRepository) GetOrCreate(tag *models.Tag) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(tag).Error
	if err != nil {
		return err
	}

	if tag.ID != 0 {
		return nil
	}

	return r.db.Where("slug = ?", tag.Slug).First(tag).Error
}

func (r *tagRepository) GetByName(name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("name = ?", name).First(&tag).Error
	return &tag, err
}

func (r *tagRepository) GetBySlug(slug string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("slug = ?", slug).First(&tag).Error
	return &tag, err
}

func (r *tagRepository) GetAll() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Order("name asc").Find(&tags).Error
	return tags, err
}
