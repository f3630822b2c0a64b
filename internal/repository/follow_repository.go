package repository

import (
	"context"
	"time"

	"cineview-backend/internal/database"
	"cineview-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Follow toggle actions.
const (
	FollowActionFollow   = "follow"
	FollowActionUnfollow = "unfollow"
)

type FollowRepository interface {
	// Toggle deletes the edge when present and inserts it otherwise,
	// returning the action taken. Runs in a transaction so concurrent
	// double-submission cannot produce duplicate edges.
	Toggle(ctx context.Context, followerID, followingID uint) (string, error)
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	FollowersOf(ctx context.Context, userID uint) ([]models.User, error)
	FollowingOf(ctx context.Context, userID uint) ([]models.User, error)
	CountFollowers(ctx context.Context, userID uint) (int64, error)
	CountFollowing(ctx context.Context, userID uint) (int64, error)
}

type followRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewFollowRepository(db *database.Database) FollowRepository {
	return &followRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *followRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *followRepository) Toggle(ctx context.Context, followerID, followingID uint) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var action string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Delete(&models.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			action = FollowActionUnfollow
			return nil
		}
		action = FollowActionFollow
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "following_id"}},
			DoNothing: true,
		}).Create(&models.Follow{FollowerID: followerID, FollowingID: followingID}).Error
	})
	if err != nil {
		return "", err
	}
	return action, nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository) FollowersOf(ctx context.Context, userID uint) ([]models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var users []models.User
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", userID).
		Find(&users).Error
	return users, err
}

func (r *followRepository) FollowingOf(ctx context.Context, userID uint) ([]models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var users []models.User
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", userID).
		Find(&users).Error
	return users, err
}

func (r *followRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *followRepository) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}
