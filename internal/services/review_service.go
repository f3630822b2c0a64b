package services

import (
	"context"
	"math"

	"cineview-backend/internal/models"
	"cineview-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

type ReviewService interface {
	// Submit validates the rating, inserts the review, and updates the
	// film's average rating.
	Submit(ctx context.Context, filmID, userID uint, rating float64, text string) (*models.Review, error)
	Like(ctx context.Context, reviewID, userID uint) (string, error)
	Dislike(ctx context.Context, reviewID, userID uint) (string, error)
	Report(ctx context.Context, reviewID, reporterID uint, reason string) error
}

type reviewService struct {
	repo    repository.ReviewRepository
	films   repository.FilmRepository
	reports repository.ReportRepository
	logger  *logrus.Logger
}

func NewReviewService(repo repository.ReviewRepository, films repository.FilmRepository, reports repository.ReportRepository, logger *logrus.Logger) ReviewService {
	return &reviewService{
		repo:    repo,
		films:   films,
		reports: reports,
		logger:  logger,
	}
}

// ValidRating reports whether r is within [1, 10] in 0.5 steps.
func ValidRating(r float64) bool {
	if r < 1 || r > 10 {
		return false
	}
	doubled := r * 2
	return doubled == math.Trunc(doubled)
}

func (s *reviewService) Submit(ctx context.Context, filmID, userID uint, rating float64, text string) (*models.Review, error) {
	if !ValidRating(rating) {
		return nil, ErrInvalidRating
	}

	film, err := s.films.FindByID(ctx, filmID)
	if err != nil {
		return nil, err
	}
	if film == nil {
		return nil, ErrNotFound
	}

	review := &models.Review{
		FilmID: filmID,
		UserID: userID,
		Rating: rating,
		Text:   text,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"film_id": filmID,
		"user_id": userID,
		"rating":  rating,
	}).Info("Review submitted")

	return review, nil
}

func (s *reviewService) Like(ctx context.Context, reviewID, userID uint) (string, error) {
	return s.vote(ctx, reviewID, userID, models.VoteLike)
}

func (s *reviewService) Dislike(ctx context.Context, reviewID, userID uint) (string, error) {
	return s.vote(ctx, reviewID, userID, models.VoteDislike)
}

func (s *reviewService) vote(ctx context.Context, reviewID, userID uint, value int) (string, error) {
	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return "", err
	}
	if review == nil {
		return "", ErrNotFound
	}
	return s.repo.ApplyVote(ctx, reviewID, userID, value)
}

func (s *reviewService) Report(ctx context.Context, reviewID, reporterID uint, reason string) error {
	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrNotFound
	}
	if review.UserID == reporterID {
		return ErrSelfReport
	}

	existing, err := s.reports.FindByReviewAndReporter(ctx, reviewID, reporterID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyReported
	}

	return s.reports.Create(ctx, &models.Report{
		ReviewID:   reviewID,
		ReporterID: reporterID,
		Reason:     reason,
		Status:     models.ReportStatusPending,
	})
}
