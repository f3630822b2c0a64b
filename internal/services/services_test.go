package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"cineview-backend/internal/database"
	"cineview-backend/internal/models"
	"cineview-backend/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db *database.Database

	users      repository.UserRepository
	films      repository.FilmRepository
	genres     repository.GenreRepository
	languages  repository.LanguageRepository
	reviews    repository.ReviewRepository
	reports    repository.ReportRepository
	follows    repository.FollowRepository
	watchlists repository.WatchlistRepository
	articles   repository.ArticleRepository

	auth       AuthService
	reviewSvc  ReviewService
	moderation ModerationService
	social     SocialService
	watchlist  WatchlistService
	articleSvc ArticleService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(gdb))

	db := database.NewFromGorm(gdb, 5*time.Second)

	log := logrus.New()
	log.SetOutput(io.Discard)

	env := &testEnv{
		db:         db,
		users:      repository.NewUserRepository(db),
		films:      repository.NewFilmRepository(db),
		genres:     repository.NewGenreRepository(db),
		languages:  repository.NewLanguageRepository(db),
		reviews:    repository.NewReviewRepository(db),
		reports:    repository.NewReportRepository(db),
		follows:    repository.NewFollowRepository(db),
		watchlists: repository.NewWatchlistRepository(db),
		articles:   repository.NewArticleRepository(db),
	}
	env.auth = NewAuthService(env.users, env.reviews, env.follows, log)
	env.reviewSvc = NewReviewService(env.reviews, env.films, env.reports, log)
	env.moderation = NewModerationService(env.reports, env.reviews, env.films, env.users, env.articles, log)
	env.social = NewSocialService(env.follows, env.users, env.films, env.reviews, env.watchlists, env.articles, log)
	env.watchlist = NewWatchlistService(env.watchlists, env.films, log)
	env.articleSvc = NewArticleService(env.articles, log)

	return env
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := e.auth.Register(context.Background(), username, username+"@example.com", "secret-password")
	require.NoError(t, err)
	return user
}

func (e *testEnv) createAdmin(t *testing.T, username string) *models.User {
	t.Helper()
	user := e.createUser(t, username)
	require.NoError(t, e.db.Model(&models.User{}).Where("id = ?", user.ID).Update("role", models.RoleAdmin).Error)
	user.Role = models.RoleAdmin
	return user
}

func (e *testEnv) createFilm(t *testing.T, title string, genres ...string) *models.Film {
	t.Helper()
	film := &models.Film{Title: title, Year: "1999"}
	for _, name := range genres {
		genre, err := e.genres.FindOrCreate(context.Background(), name)
		require.NoError(t, err)
		film.Genres = append(film.Genres, *genre)
	}
	require.NoError(t, e.films.Create(context.Background(), film))
	return film
}

func (e *testEnv) createReview(t *testing.T, filmID, userID uint, rating float64) *models.Review {
	t.Helper()
	review, err := e.reviewSvc.Submit(context.Background(), filmID, userID, rating, "solid film")
	require.NoError(t, err)
	return review
}
