package repository

import (
	"context"
	"errors"
	"time"

	"cineview-backend/internal/database"
	"cineview-backend/internal/models"

	"gorm.io/gorm"
)

type FilmRepository interface {
	Create(ctx context.Context, film *models.Film) error
	FindByID(ctx context.Context, id uint) (*models.Film, error)
	FindByIMDBID(ctx context.Context, imdbID string) (*models.Film, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Film, error)
	FindAll(ctx context.Context, page, limit int) ([]models.Film, int64, error)
	SearchByTitle(ctx context.Context, query string, limit int) ([]models.Film, error)
	IncrementViews(ctx context.Context, id uint) (*models.Film, error)
	MostViewed(ctx context.Context, limit int) ([]models.Film, error)
	Count(ctx context.Context) (int64, error)
}

type filmRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewFilmRepository(db *database.Database) FilmRepository {
	return &filmRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *filmRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *filmRepository) Create(ctx context.Context, film *models.Film) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(film).Error
}

func (r *filmRepository) FindByID(ctx context.Context, id uint) (*models.Film, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var film models.Film
	err := r.db.WithContext(ctx).Preload("Genres").Preload("Language").First(&film, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &film, nil
}

func (r *filmRepository) FindByIMDBID(ctx context.Context, imdbID string) (*models.Film, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var film models.Film
	err := r.db.WithContext(ctx).Where("imdb_id = ?", imdbID).First(&film).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &film, nil
}

func (r *filmRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Film, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if len(ids) == 0 {
		return nil, nil
	}

	var films []models.Film
	err := r.db.WithContext(ctx).Preload("Genres").Where("id IN ?", ids).Find(&films).Error
	return films, err
}

func (r *filmRepository) FindAll(ctx context.Context, page, limit int) ([]models.Film, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var films []models.Film
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Film{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Preload("Genres").
		Order("release_date DESC NULLS LAST").
		Offset(offset).Limit(limit).
		Find(&films).Error
	if err != nil {
		return nil, 0, err
	}

	return films, total, nil
}

func (r *filmRepository) SearchByTitle(ctx context.Context, query string, limit int) ([]models.Film, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var films []models.Film
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).Preload("Genres").
		Where("LOWER(title) LIKE LOWER(?)", pattern).
		Order("views DESC").
		Limit(limit).
		Find(&films).Error
	return films, err
}

// IncrementViews bumps the counter with a single atomic UPDATE and returns
// the film as of after the bump.
func (r *filmRepository) IncrementViews(ctx context.Context, id uint) (*models.Film, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&models.Film{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	var film models.Film
	if err := r.db.WithContext(ctx).Preload("Genres").Preload("Language").First(&film, id).Error; err != nil {
		return nil, err
	}
	return &film, nil
}

func (r *filmRepository) MostViewed(ctx context.Context, limit int) ([]models.Film, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var films []models.Film
	err := r.db.WithContext(ctx).Preload("Genres").
		Order("views DESC").
		Limit(limit).
		Find(&films).Error
	return films, err
}

func (r *filmRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Film{}).Count(&count).Error
	return count, err
}
