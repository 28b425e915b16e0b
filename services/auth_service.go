package services

import (
	"errors"
	"time"

	"conduit-api/config"
	"conduit-api/models"
	"conduit-api/repositories"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(req models.RegisterRequest) (*models.AuthResponse, error)
	Login(req models.LoginRequest) (*models.AuthResponse, error)
	GetUserByID(id uint) (*models.User, error)
	UpdateUser(userID uint, req models.UpdateUserRequest) (*models.User, *models.Profile, error)
}

type authService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

func NewAuthService(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository) AuthService {
	return &authService{userRepo: userRepo, profileRepo: profileRepo}
}

func (s *authService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
		return nil, models.ErrorConflict{Message: "email already registered"}
	}
	if _, err := s.userRepo.GetByUsername(req.Username); err == nil {
		return nil, models.ErrorConflict{Message: "username already taken"}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	// Creates the profile alongside the user.
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *authService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorUnauthorized{Message: "invalid credentials"}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrorUnauthorized{Message: "invalid credentials"}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *authService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateUser(userID uint, req models.UpdateUserRequest) (*models.User, *models.Profile, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, nil, err
	}

	if req.Username != "" && req.Username != user.Username {
		if _, err := s.userRepo.GetByUsername(req.Username); err == nil {
			return nil, nil, models.ErrorConflict{Message: "username already taken"}
		}
		user.Username = req.Username
	}
	if req.Email != "" && req.Email != user.Email {
		if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
			return nil, nil, models.ErrorConflict{Message: "email already registered"}
		}
		user.Email = req.Email
	}
	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, nil, err
		}
		user.Password = string(hashedPassword)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, nil, err
	}

	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, nil, err
	}
	profile.Bio = req.Bio
	profile.Image = req.Image
	if err := s.profileRepo.Update(profile); err != nil {
		return nil, nil, err
	}

	return user, profile, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      now.Add(config.JWTExpiration).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(config.JWTSecret)
	if err != nil {
		return "", err
	}

	return signedToken, nil
}
