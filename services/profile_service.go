package services

import (
	"errors"

	"conduit-api/models"
	"conduit-api/repositories"

	"gorm.io/gorm"
)

type ProfileService interface {
	GetProfile(username string, viewerUserID uint) (*models.ProfileResponse, error)
	Follow(viewerUserID uint, username string) (*models.ProfileResponse, error)
	Unfollow(viewerUserID uint, username string) (*models.ProfileResponse, error)
	IsFollowing(viewerUserID uint, username string) (bool, error)
	Favorite(viewerUserID uint, slug string) (*models.Article, error)
	Unfavorite(viewerUserID uint, slug string) (*models.Article, error)
	HasFavorited(viewerUserID uint, slug string) (bool, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
	articleRepo repositories.ArticleRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository, articleRepo repositories.ArticleRepository) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		articleRepo: articleRepo,
	}
}

// GetProfile returns the profile for a username with the following flag
// relative to the viewer. viewerUserID 0 means anonymous.
func (s *profileService) GetProfile(username string, viewerUserID uint) (*models.ProfileResponse, error) {
	target, err := s.getProfileByUsername(username)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerUserID != 0 {
		viewer, err := s.profileRepo.GetByUserID(viewerUserID)
		if err == nil {
			following, err = s.profileRepo.IsFollowing(viewer.ID, target.ID)
			if err != nil {
				return nil, err
			}
		}
	}

	return &models.ProfileResponse{
		Username:  target.User.Username,
		Bio:       target.Bio,
		Image:     target.Image,
		Following: following,
	}, nil
}

// Follow adds a directed edge from the viewer to the target. Following
// yourself is allowed; the edge behaves like any other.
func (s *profileService) Follow(viewerUserID uint, username string) (*models.ProfileResponse, error) {
	viewer, target, err := s.resolveEdge(viewerUserID, username)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.AddFollow(viewer.ID, target.ID); err != nil {
		return nil, err
	}

	return s.GetProfile(username, viewerUserID)
}

func (s *profileService) Unfollow(viewerUserID uint, username string) (*models.ProfileResponse, error) {
	viewer, target, err := s.resolveEdge(viewerUserID, username)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.RemoveFollow(viewer.ID, target.ID); err != nil {
		return nil, err
	}

	return s.GetProfile(username, viewerUserID)
}

func (s *profileService) IsFollowing(viewerUserID uint, username string) (bool, error) {
	viewer, target, err := s.resolveEdge(viewerUserID, username)
	if err != nil {
		return false, err
	}
	return s.profileRepo.IsFollowing(viewer.ID, target.ID)
}

func (s *profileService) Favorite(viewerUserID uint, slug string) (*models.Article, error) {
	viewer, article, err := s.resolveFavorite(viewerUserID, slug)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.AddFavorite(viewer.ID, article.ID); err != nil {
		return nil, err
	}

	return s.loadArticle(slug)
}

func (s *profileService) Unfavorite(viewerUserID uint, slug string) (*models.Article, error) {
	viewer, article, err := s.resolveFavorite(viewerUserID, slug)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.RemoveFavorite(viewer.ID, article.ID); err != nil {
		return nil, err
	}

	return s.loadArticle(slug)
}

func (s *profileService) HasFavorited(viewerUserID uint, slug string) (bool, error) {
	viewer, article, err := s.resolveFavorite(viewerUserID, slug)
	if err != nil {
		return false, err
	}
	return s.profileRepo.HasFavorited(viewer.ID, article.ID)
}

func (s *profileService) resolveEdge(viewerUserID uint, username string) (*models.Profile, *models.Profile, error) {
	viewer, err := s.profileRepo.GetByUserID(viewerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, models.ErrorNotFound{Message: "profile not found"}
		}
		return nil, nil, err
	}

	target, err := s.getProfileByUsername(username)
	if err != nil {
		return nil, nil, err
	}

	return viewer, target, nil
}

func (s *profileService) resolveFavorite(viewerUserID uint, slug string) (*models.Profile, *models.Article, error) {
	viewer, err := s.profileRepo.GetByUserID(viewerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, models.ErrorNotFound{Message: "profile not found"}
		}
		return nil, nil, err
	}

	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, models.ErrorNotFound{Message: "article not found"}
		}
		return nil, nil, err
	}

	return viewer, article, nil
}

func (s *profileService) getProfileByUsername(username string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "profile not found"}
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) loadArticle(slug string) (*models.Article, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	article.FavoritesCount, err = s.profileRepo.CountFavorites(article.ID)
	if err != nil {
		return nil, err
	}
	return article, nil
}
