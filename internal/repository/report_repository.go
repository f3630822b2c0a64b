package repository

import (
	"context"
	"errors"
	"time"

	"cineview-backend/internal/database"
	"cineview-backend/internal/models"

	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	FindByID(ctx context.Context, id uint) (*models.Report, error)
	FindByReviewAndReporter(ctx context.Context, reviewID, reporterID uint) (*models.Report, error)
	FindPending(ctx context.Context) ([]models.Report, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	CountPending(ctx context.Context) (int64, error)
}

type reportRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewReportRepository(db *database.Database) ReportRepository {
	return &reportRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *reportRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) FindByID(ctx context.Context, id uint) (*models.Report, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var report models.Report
	err := r.db.WithContext(ctx).First(&report, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindByReviewAndReporter(ctx context.Context, reviewID, reporterID uint) (*models.Report, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var report models.Report
	err := r.db.WithContext(ctx).
		Where("review_id = ? AND reporter_id = ?", reviewID, reporterID).
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindPending(ctx context.Context) ([]models.Report, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var reports []models.Report
	err := r.db.WithContext(ctx).
		Where("status = ?", models.ReportStatusPending).
		Order("created_at ASC").
		Find(&reports).Error
	return reports, err
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Model(&models.Report{}).Where("id = ?", id).
		UpdateColumn("status", status).Error
}

func (r *reportRepository) CountPending(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("status = ?", models.ReportStatusPending).
		Count(&count).Error
	return count, err
}
