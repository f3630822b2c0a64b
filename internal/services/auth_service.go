package services

import (
	"context"
	"fmt"

	"cineview-backend/internal/models"
	"cineview-backend/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type Profile struct {
	User           models.User     `json:"user"`
	Reviews        []models.Review `json:"reviews"`
	FollowersCount int64           `json:"followers_count"`
	FollowingCount int64           `json:"following_count"`
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetProfile(ctx context.Context, userID uint) (*Profile, error)
	UpdateProfile(ctx context.Context, userID uint, bio, profilePic string) error
}

type authService struct {
	users   repository.UserRepository
	reviews repository.ReviewRepository
	follows repository.FollowRepository
	logger  *logrus.Logger
}

func NewAuthService(users repository.UserRepository, reviews repository.ReviewRepository, follows repository.FollowRepository, logger *logrus.Logger) AuthService {
	return &authService{
		users:   users,
		reviews: reviews,
		follows: follows,
		logger:  logger,
	}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if existing, err := s.users.FindByUsername(ctx, username); err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	} else if existing != nil {
		return nil, ErrUsernameTaken
	}

	if existing, err := s.users.FindByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.WithField("username", username).Info("User registered")
	return user, nil
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *authService) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	reviews, err := s.reviews.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	followers, err := s.follows.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:           *user,
		Reviews:        reviews,
		FollowersCount: followers,
		FollowingCount: following,
	}, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uint, bio, profilePic string) error {
	fields := map[string]any{"bio": bio}
	if profilePic != "" {
		fields["profile_pic"] = profilePic
	}
	return s.users.UpdateProfile(ctx, userID, fields)
}
