package repository

import (
	"context"
	"errors"
	"time"

	"cineview-backend/internal/database"
	"cineview-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Default watchlist toggle actions.
const (
	WatchlistActionAdded   = "added"
	WatchlistActionRemoved = "removed"
)

type WatchlistRepository interface {
	// ToggleDefault adds the film to the user's default watchlist when
	// absent and removes it when present.
	ToggleDefault(ctx context.Context, userID, filmID uint) (string, error)
	DefaultFilms(ctx context.Context, userID uint) ([]models.Film, error)

	// AddToCustom appends the film to the owner's list with the given name,
	// matched case-insensitively; the list is created when missing. The
	// append is a no-op when the film is already present (created and added
	// report what happened).
	AddToCustom(ctx context.Context, ownerID, filmID uint, name string) (created, added bool, err error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Watchlist, error)
}

type watchlistRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewWatchlistRepository(db *database.Database) WatchlistRepository {
	return &watchlistRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *watchlistRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *watchlistRepository) ToggleDefault(ctx context.Context, userID, filmID uint) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var action string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec("DELETE FROM user_watchlist_films WHERE user_id = ? AND film_id = ?", userID, filmID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			action = WatchlistActionRemoved
			return nil
		}
		action = WatchlistActionAdded
		return tx.Table("user_watchlist_films").Clauses(clause.OnConflict{DoNothing: true}).
			Create(map[string]any{"user_id": userID, "film_id": filmID}).Error
	})
	if err != nil {
		return "", err
	}
	return action, nil
}

func (r *watchlistRepository) DefaultFilms(ctx context.Context, userID uint) ([]models.Film, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var films []models.Film
	err := r.db.WithContext(ctx).Model(&models.Film{}).Preload("Genres").
		Joins("JOIN user_watchlist_films ON user_watchlist_films.film_id = films.id").
		Where("user_watchlist_films.user_id = ?", userID).
		Find(&films).Error
	return films, err
}

func (r *watchlistRepository) AddToCustom(ctx context.Context, ownerID, filmID uint, name string) (bool, bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var created, added bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var list models.Watchlist
		err := tx.Where("owner_id = ? AND LOWER(name) = LOWER(?)", ownerID, name).
			First(&list).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			list = models.Watchlist{OwnerID: ownerID, Name: name}
			if err := tx.Create(&list).Error; err != nil {
				return err
			}
			created = true
		case err != nil:
			return err
		}

		var count int64
		if err := tx.Table("watchlist_films").
			Where("watchlist_id = ? AND film_id = ?", list.ID, filmID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		added = true
		return tx.Table("watchlist_films").
			Create(map[string]any{"watchlist_id": list.ID, "film_id": filmID}).Error
	})
	if err != nil {
		return false, false, err
	}
	return created, added, nil
}

func (r *watchlistRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Watchlist, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var lists []models.Watchlist
	err := r.db.WithContext(ctx).Preload("Films").
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&lists).Error
	return lists, err
}
