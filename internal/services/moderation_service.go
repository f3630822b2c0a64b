package services

import (
	"context"

	"cineview-backend/internal/models"
	"cineview-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

type ModerationService interface {
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	// PendingReports resolves review, film, and reporter for each pending
	// report. Reports whose review has since been deleted are skipped.
	PendingReports(ctx context.Context) ([]models.ReportDetail, error)
	// HandleReport applies mark_spoiler or delete to the reported review
	// and marks the report resolved. Not reversible.
	HandleReport(ctx context.Context, reportID uint, action string) error
}

type moderationService struct {
	reports  repository.ReportRepository
	reviews  repository.ReviewRepository
	films    repository.FilmRepository
	users    repository.UserRepository
	articles repository.ArticleRepository
	logger   *logrus.Logger
}

func NewModerationService(reports repository.ReportRepository, reviews repository.ReviewRepository, films repository.FilmRepository, users repository.UserRepository, articles repository.ArticleRepository, logger *logrus.Logger) ModerationService {
	return &moderationService{
		reports:  reports,
		reviews:  reviews,
		films:    films,
		users:    users,
		articles: articles,
		logger:   logger,
	}
}

func (s *moderationService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	var err error

	if stats.FilmCount, err = s.films.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ReviewCount, err = s.reviews.Count(ctx); err != nil {
		return nil, err
	}
	if stats.UserCount, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ArticleCount, err = s.articles.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PendingReportCount, err = s.reports.CountPending(ctx); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *moderationService) PendingReports(ctx context.Context) ([]models.ReportDetail, error) {
	pending, err := s.reports.FindPending(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]models.ReportDetail, 0, len(pending))
	for _, report := range pending {
		review, err := s.reviews.FindByID(ctx, report.ReviewID)
		if err != nil {
			return nil, err
		}
		if review == nil {
			continue
		}
		reporter, err := s.users.FindByID(ctx, report.ReporterID)
		if err != nil {
			return nil, err
		}
		film, err := s.films.FindByID(ctx, review.FilmID)
		if err != nil {
			return nil, err
		}
		if reporter == nil || film == nil {
			continue
		}

		details = append(details, models.ReportDetail{
			ReportID:         report.ID,
			ReviewID:         review.ID,
			ReviewText:       review.Text,
			FilmTitle:        film.Title,
			ReporterUsername: reporter.Username,
			Reason:           report.Reason,
			CreatedAt:        report.CreatedAt,
		})
	}
	return details, nil
}

func (s *moderationService) HandleReport(ctx context.Context, reportID uint, action string) error {
	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		return err
	}
	if report == nil {
		return ErrNotFound
	}

	switch action {
	case models.ReportActionMarkSpoiler:
		if err := s.reviews.SetSpoiler(ctx, report.ReviewID, true); err != nil {
			return err
		}
	case models.ReportActionDelete:
		review, err := s.reviews.FindByID(ctx, report.ReviewID)
		if err != nil {
			return err
		}
		// Already gone (e.g. deleted through another report on the same
		// review); still resolve this one.
		if review != nil {
			if err := s.reviews.Delete(ctx, report.ReviewID); err != nil {
				return err
			}
		}
	default:
		return ErrUnknownAction
	}

	if err := s.reports.UpdateStatus(ctx, reportID, models.ReportStatusResolved); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"report_id": reportID,
		"action":    action,
	}).Info("Report handled")

	return nil
}
