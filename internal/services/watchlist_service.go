package services

import (
	"context"
	"strings"

	"cineview-backend/internal/models"
	"cineview-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

type WatchlistService interface {
	// ToggleDefault returns "added" or "removed".
	ToggleDefault(ctx context.Context, userID, filmID uint) (string, error)
	// AddToCustom adds the film to the named list (created on demand; name
	// matched case-insensitively) and reports whether the film was newly
	// added.
	AddToCustom(ctx context.Context, userID, filmID uint, name string) (bool, error)
	Lists(ctx context.Context, userID uint) ([]models.Watchlist, error)
}

type watchlistService struct {
	repo   repository.WatchlistRepository
	films  repository.FilmRepository
	logger *logrus.Logger
}

func NewWatchlistService(repo repository.WatchlistRepository, films repository.FilmRepository, logger *logrus.Logger) WatchlistService {
	return &watchlistService{
		repo:   repo,
		films:  films,
		logger: logger,
	}
}

func (s *watchlistService) ToggleDefault(ctx context.Context, userID, filmID uint) (string, error) {
	film, err := s.films.FindByID(ctx, filmID)
	if err != nil {
		return "", err
	}
	if film == nil {
		return "", ErrNotFound
	}
	return s.repo.ToggleDefault(ctx, userID, filmID)
}

func (s *watchlistService) AddToCustom(ctx context.Context, userID, filmID uint, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrNameRequired
	}

	film, err := s.films.FindByID(ctx, filmID)
	if err != nil {
		return false, err
	}
	if film == nil {
		return false, ErrNotFound
	}

	created, added, err := s.repo.AddToCustom(ctx, userID, filmID, name)
	if err != nil {
		return false, err
	}
	if created {
		s.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"name":    name,
		}).Info("Custom watchlist created")
	}
	return added, nil
}

func (s *watchlistService) Lists(ctx context.Context, userID uint) ([]models.Watchlist, error) {
	return s.repo.ListByOwner(ctx, userID)
}
