package repositories

import (
	"conduit-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	GetByUserID(userID uint) (*models.Profile, error)
	GetByUsername(username string) (*models.Profile, error)
	Update(profile *models.Profile) error
	AddFollow(followerID, followeeID uint) error
	RemoveFollow(followerID, followeeID uint) error
	IsFollowing(followerID, followeeID uint) (bool, error)
	GetFollowedUserIDs(followerID uint) ([]uint, error)
	AddFavorite(profileID, articleID uint) error
	RemoveFavorite(profileID, articleID uint) error
	HasFavorited(profileID, articleID uint) (bool, error)
	CountFavorites(articleID uint) (int64, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	return &profile, err
}

func (r *profileRepository) GetByUsername(username string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Preload("User").
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("users.username = ?", username).
		First(&profile).Error
	return &profile, err
}

func (r *profileRepository) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// Edge writes go through ON CONFLICT DO NOTHING on the composite primary
// key, so re-adding an existing edge is a no-op.

func (r *profileRepository) AddFollow(followerID, followeeID uint) error {
	edge := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
}

func (r *profileRepository) RemoveFollow(followerID, followeeID uint) error {
	return r.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error
}

func (r *profileRepository) IsFollowing(followerID, followeeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *profileRepository) GetFollowedUserIDs(followerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).
		Joins("JOIN profiles ON profiles.id = profile_follows.followee_id").
		Where("profile_follows.follower_id = ?", followerID).
		Pluck("profiles.user_id", &ids).Error
	return ids, err
}

func (r *profileRepository) AddFavorite(profileID, articleID uint) error {
	edge := models.Favorite{ProfileID: profileID, ArticleID: articleID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
}

func (r *profileRepository) RemoveFavorite(profileID, articleID uint) error {
	return r.db.Where("profile_id = ? AND article_id = ?", profileID, articleID).
		Delete(&models.Favorite{}).Error
}

func (r *profileRepository) HasFavorited(profileID, articleID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).
		Where("profile_id = ? AND article_id = ?", profileID, articleID).
		Count(&count).Error
	return count > 0, err
}

func (r *profileRepository) CountFavorites(articleID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).
		Where("article_id = ?", articleID).
		Count(&count).Error
	return count, err
}
