package services

import (
	"context"
	"testing"

	"cineview-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleReportMarkSpoiler(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	film := env.createFilm(t, "Psycho")
	author := env.createUser(t, "alice")
	reporter := env.createUser(t, "bob")
	review := env.createReview(t, film.ID, author.ID, 9)

	require.NoError(t, env.reviewSvc.Report(ctx, review.ID, reporter.ID, "reveals the ending"))

	report, err := env.reports.FindByReviewAndReporter(ctx, review.ID, reporter.ID)
	require.NoError(t, err)
	require.NotNil(t, report)

	require.NoError(t, env.moderation.HandleReport(ctx, report.ID, models.ReportActionMarkSpoiler))

	got, err := env.reviews.FindByID(ctx, review.ID)
	require.NoError(t, err)
	assert.True(t, got.Spoiler)

	resolved, err := env.reports.FindByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusResolved, resolved.Status)

	pending, err := env.reports.CountPending(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestHandleReportDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	film := env.createFilm(t, "Vertigo")
	author := env.createUser(t, "alice")
	reporter := env.createUser(t, "bob")
	review := env.createReview(t, film.ID, author.ID, 3)

	require.NoError(t, env.reviewSvc.Report(ctx, review.ID, reporter.ID, "harassment"))
	report, err := env.reports.FindByReviewAndReporter(ctx, review.ID, reporter.ID)
	require.NoError(t, err)

	require.NoError(t, env.moderation.HandleReport(ctx, report.ID, models.ReportActionDelete))

	gone, err := env.reviews.FindByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	resolved, err := env.reports.FindByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusResolved, resolved.Status)
}

func TestHandleReportUnknownAction(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	film := env.createFilm(t, "Rebecca")
	author := env.createUser(t, "alice")
	reporter := env.createUser(t, "bob")
	review := env.createReview(t, film.ID, author.ID, 5)

	require.NoError(t, env.reviewSvc.Report(ctx, review.ID, reporter.ID, "off topic"))
	report, err := env.reports.FindByReviewAndReporter(ctx, review.ID, reporter.ID)
	require.NoError(t, err)

	err = env.moderation.HandleReport(ctx, report.ID, "ban_user")
	assert.ErrorIs(t, err, ErrUnknownAction)

	// The report stays pending when no action was taken.
	still, err := env.reports.FindByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, still.Status)
}

func TestHandleReportMissing(t *testing.T) {
	env := newTestEnv(t)

	err := env.moderation.HandleReport(context.Background(), 77, models.ReportActionDelete)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPendingReportsDetail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	film := env.createFilm(t, "The Thing")
	author := env.createUser(t, "alice")
	reporter := env.createUser(t, "bob")
	review := env.createReview(t, film.ID, author.ID, 2)

	require.NoError(t, env.reviewSvc.Report(ctx, review.ID, reporter.ID, "spam"))

	details, err := env.moderation.PendingReports(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)

	assert.Equal(t, review.ID, details[0].ReviewID)
	assert.Equal(t, "The Thing", details[0].FilmTitle)
	assert.Equal(t, "bob", details[0].ReporterUsername)
	assert.Equal(t, "spam", details[0].Reason)
}

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createAdmin(t, "root")
	film := env.createFilm(t, "Brazil")
	author := env.createUser(t, "alice")
	reporter := env.createUser(t, "bob")
	review := env.createReview(t, film.ID, author.ID, 8)
	require.NoError(t, env.reviewSvc.Report(ctx, review.ID, reporter.ID, "spam"))

	_, err := env.articleSvc.Create(ctx, admin.ID, "Best of Gilliam", "content", "retro, sci-fi", "")
	require.NoError(t, err)

	stats, err := env.moderation.DashboardStats(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.UserCount)
	assert.EqualValues(t, 1, stats.FilmCount)
	assert.EqualValues(t, 1, stats.ReviewCount)
	assert.EqualValues(t, 1, stats.ArticleCount)
	assert.EqualValues(t, 1, stats.PendingReportCount)
}
