package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cineview-backend/internal/database"
	"cineview-backend/internal/models"

	"gorm.io/gorm"
)

// Vote actions reported back to the client.
const (
	VoteActionLike      = "like"
	VoteActionUnlike    = "unlike"
	VoteActionDislike   = "dislike"
	VoteActionUndislike = "undislike"
)

type ReviewRepository interface {
	// Create inserts the review and recomputes the film's average rating in
	// the same transaction.
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id uint) (*models.Review, error)
	FindByFilm(ctx context.Context, filmID uint) ([]models.Review, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Review, error)
	Recent(ctx context.Context, limit int) ([]models.Review, error)
	ExistsByFilmAndUser(ctx context.Context, filmID, userID uint) (bool, error)

	// ApplyVote runs the {neutral, liked, disliked} transition for one
	// (review, user) pair and returns the action taken. A side switch moves
	// both counters inside one transaction.
	ApplyVote(ctx context.Context, reviewID, userID uint, value int) (string, error)

	SetSpoiler(ctx context.Context, id uint, spoiler bool) error
	// Delete removes the review and its votes, then recomputes the film's
	// average rating. Reports referencing the review are left in place.
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type reviewRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewReviewRepository(db *database.Database) ReviewRepository {
	return &reviewRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *reviewRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// recomputeFilmAverage stores the arithmetic mean of all ratings for the
// film. When there are no reviews AVG returns NULL and the previous value is
// kept.
func recomputeFilmAverage(tx *gorm.DB, filmID uint) error {
	var avg sql.NullFloat64
	err := tx.Model(&models.Review{}).
		Where("film_id = ?", filmID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return err
	}
	if !avg.Valid {
		return nil
	}
	return tx.Model(&models.Film{}).Where("id = ?", filmID).
		UpdateColumn("average_rating", avg.Float64).Error
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return recomputeFilmAverage(tx, review.FilmID)
	})
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*models.Review, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var review models.Review
	err := r.db.WithContext(ctx).First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByFilm(ctx context.Context, filmID uint) ([]models.Review, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var reviews []models.Review
	err := r.db.WithContext(ctx).Preload("User").
		Where("film_id = ?", filmID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) FindByUser(ctx context.Context, userID uint) ([]models.Review, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var reviews []models.Review
	err := r.db.WithContext(ctx).Preload("Film").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) Recent(ctx context.Context, limit int) ([]models.Review, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var reviews []models.Review
	err := r.db.WithContext(ctx).Preload("User").Preload("Film").
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ExistsByFilmAndUser(ctx context.Context, filmID, userID uint) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("film_id = ? AND user_id = ?", filmID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) ApplyVote(ctx context.Context, reviewID, userID uint, value int) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var action string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, reviewID).Error; err != nil {
			return err
		}

		var vote models.ReviewVote
		err := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).First(&vote).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// neutral -> liked/disliked
			if err := tx.Create(&models.ReviewVote{
				ReviewID: reviewID,
				UserID:   userID,
				Value:    value,
			}).Error; err != nil {
				return err
			}
			if err := tx.Model(&review).
				UpdateColumn(counterColumn(value), gorm.Expr(counterColumn(value)+" + 1")).Error; err != nil {
				return err
			}
			action = enterAction(value)
			return nil
		case err != nil:
			return err
		}

		if vote.Value == value {
			// liked -> neutral / disliked -> neutral
			if err := tx.Delete(&vote).Error; err != nil {
				return err
			}
			if err := tx.Model(&review).
				UpdateColumn(counterColumn(value), gorm.Expr(counterColumn(value)+" - 1")).Error; err != nil {
				return err
			}
			action = leaveAction(value)
			return nil
		}

		// Side switch: both counter moves are part of this transaction, so
		// the user is never observable in both sets. UpdateColumn writes
		// the new value back into vote, so remember the old side first.
		prev := vote.Value
		if err := tx.Model(&vote).UpdateColumn("value", value).Error; err != nil {
			return err
		}
		if err := tx.Model(&review).UpdateColumns(map[string]any{
			counterColumn(prev):  gorm.Expr(counterColumn(prev) + " - 1"),
			counterColumn(value): gorm.Expr(counterColumn(value) + " + 1"),
		}).Error; err != nil {
			return err
		}
		action = enterAction(value)
		return nil
	})
	if err != nil {
		return "", err
	}
	return action, nil
}

func counterColumn(value int) string {
	if value == models.VoteLike {
		return "likes"
	}
	return "dislikes"
}

func enterAction(value int) string {
	if value == models.VoteLike {
		return VoteActionLike
	}
	return VoteActionDislike
}

func leaveAction(value int) string {
	if value == models.VoteLike {
		return VoteActionUnlike
	}
	return VoteActionUndislike
}

func (r *reviewRepository) SetSpoiler(ctx context.Context, id uint, spoiler bool) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).
		UpdateColumn("spoiler", spoiler).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, id).Error; err != nil {
			return err
		}
		if err := tx.Where("review_id = ?", id).Delete(&models.ReviewVote{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&review).Error; err != nil {
			return err
		}
		return recomputeFilmAverage(tx, review.FilmID)
	})
}

func (r *reviewRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).Count(&count).Error
	return count, err
}
