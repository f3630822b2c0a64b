package repository

import (
	"context"
	"errors"
	"time"

	"cineview-backend/internal/database"
	"cineview-backend/internal/models"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Article, error)
	FindAll(ctx context.Context, limit int) ([]models.Article, error)
	IncrementViews(ctx context.Context, id uint) (*models.Article, error)
	Related(ctx context.Context, excludeID uint, limit int) ([]models.Article, error)
	Count(ctx context.Context) (int64, error)
}

type articleRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewArticleRepository(db *database.Database) ArticleRepository {
	return &articleRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *articleRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(article).Error
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Save(article).Error
}

func (r *articleRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Delete(&models.Article{}, id).Error
}

func (r *articleRepository) FindByID(ctx context.Context, id uint) (*models.Article, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var article models.Article
	err := r.db.WithContext(ctx).Preload("Author").First(&article, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) FindAll(ctx context.Context, limit int) ([]models.Article, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var articles []models.Article
	query := r.db.WithContext(ctx).Preload("Author").Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&articles).Error
	return articles, err
}

func (r *articleRepository) IncrementViews(ctx context.Context, id uint) (*models.Article, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&models.Article{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	var article models.Article
	if err := r.db.WithContext(ctx).Preload("Author").First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) Related(ctx context.Context, excludeID uint, limit int) ([]models.Article, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var articles []models.Article
	err := r.db.WithContext(ctx).
		Where("id <> ?", excludeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Article{}).Count(&count).Error
	return count, err
}
