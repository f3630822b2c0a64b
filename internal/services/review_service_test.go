package services

import (
	"context"
	"testing"

	"cineview-backend/internal/models"
	"cineview-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidRating(t *testing.T) {
	valid := []float64{1, 5.5, 7.5, 10}
	for _, r := range valid {
		assert.True(t, ValidRating(r), "rating %v should be accepted", r)
	}

	invalid := []float64{0, 0.5, 7.3, 10.5, -2}
	for _, r := range invalid {
		assert.False(t, ValidRating(r), "rating %v should be rejected", r)
	}
}

func TestSubmitReviewRejectsInvalidRating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "alice")
	film := env.createFilm(t, "Heat")

	_, err := env.reviewSvc.Submit(ctx, film.ID, user.ID, 7.3, "almost")
	assert.ErrorIs(t, err, ErrInvalidRating)

	count, err := env.reviews.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSubmitReviewUnknownFilm(t *testing.T) {
	env := newTestEnv(t)

	user := env.createUser(t, "alice")

	_, err := env.reviewSvc.Submit(context.Background(), 999, user.ID, 8, "ghost film")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitReviewRecomputesAverage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	film := env.createFilm(t, "Ran")
	a := env.createUser(t, "alice")
	b := env.createUser(t, "bob")
	c := env.createUser(t, "carol")

	env.createReview(t, film.ID, a.ID, 8)
	env.createReview(t, film.ID, b.ID, 6)
	env.createReview(t, film.ID, c.ID, 10)

	got, err := env.films.FindByID(ctx, film.ID)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, got.AverageRating, 0.001)
}

func TestLikeToggleCycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	film := env.createFilm(t, "Alien")
	author := env.createUser(t, "alice")
	voter := env.createUser(t, "bob")
	review := env.createReview(t, film.ID, author.ID, 9)

	action, err := env.reviewSvc.Like(ctx, review.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.VoteActionLike, action)

	action, err = env.reviewSvc.Like(ctx, review.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.VoteActionUnlike, action)

	got, err := env.reviews.FindByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Likes)
	assert.Equal(t, 0, got.Dislikes)
}

func TestVoteSwitchFromDislikeToLike(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	film := env.createFilm(t, "Seven")
	author := env.createUser(t, "alice")
	voter := env.createUser(t, "bob")
	review := env.createReview(t, film.ID, author.ID, 7)

	action, err := env.reviewSvc.Dislike(ctx, review.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.VoteActionDislike, action)

	action, err = env.reviewSvc.Like(ctx, review.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.VoteActionLike, action)

	got, err := env.reviews.FindByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Likes)
	assert.Equal(t, 0, got.Dislikes)
}

func TestVoteSwitchFromLikeToDislike(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	film := env.createFilm(t, "Oldboy")
	author := env.createUser(t, "alice")
	voter := env.createUser(t, "bob")
	review := env.createReview(t, film.ID, author.ID, 8)

	_, err := env.reviewSvc.Like(ctx, review.ID, voter.ID)
	require.NoError(t, err)

	action, err := env.reviewSvc.Dislike(ctx, review.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.VoteActionDislike, action)

	got, err := env.reviews.FindByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Likes)
	assert.Equal(t, 1, got.Dislikes)
}

func TestVoteOnMissingReview(t *testing.T) {
	env := newTestEnv(t)

	voter := env.createUser(t, "bob")

	_, err := env.reviewSvc.Like(context.Background(), 42, voter.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	film := env.createFilm(t, "Fargo")
	author := env.createUser(t, "alice")
	reporter := env.createUser(t, "bob")
	review := env.createReview(t, film.ID, author.ID, 4)

	err := env.reviewSvc.Report(ctx, review.ID, author.ID, "rude")
	assert.ErrorIs(t, err, ErrSelfReport)

	require.NoError(t, env.reviewSvc.Report(ctx, review.ID, reporter.ID, "spoilers"))

	err = env.reviewSvc.Report(ctx, review.ID, reporter.ID, "still spoilers")
	assert.ErrorIs(t, err, ErrAlreadyReported)

	pending, err := env.reports.CountPending(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending)
}

func TestDeleteReviewRecomputesAverage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	film := env.createFilm(t, "Jaws")
	a := env.createUser(t, "alice")
	b := env.createUser(t, "bob")
	keep := env.createReview(t, film.ID, a.ID, 8)
	drop := env.createReview(t, film.ID, b.ID, 2)

	require.NoError(t, env.reviews.Delete(ctx, drop.ID))

	got, err := env.films.FindByID(ctx, film.ID)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, got.AverageRating, 0.001)

	still, err := env.reviews.FindByID(ctx, keep.ID)
	require.NoError(t, err)
	require.NotNil(t, still)

	gone, err := env.reviews.FindByID(ctx, drop.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestReviewVoteUniquePerUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	film := env.createFilm(t, "Rocky")
	author := env.createUser(t, "alice")
	voter := env.createUser(t, "bob")
	review := env.createReview(t, film.ID, author.ID, 6)

	_, err := env.reviewSvc.Like(ctx, review.ID, voter.ID)
	require.NoError(t, err)

	var votes int64
	require.NoError(t, env.db.Model(&models.ReviewVote{}).Where("review_id = ?", review.ID).Count(&votes).Error)
	assert.EqualValues(t, 1, votes)

	_, err = env.reviewSvc.Dislike(ctx, review.ID, voter.ID)
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&models.ReviewVote{}).Where("review_id = ?", review.ID).Count(&votes).Error)
	assert.EqualValues(t, 1, votes)
}
