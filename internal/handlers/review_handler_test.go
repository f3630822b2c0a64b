package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cineview-backend/internal/config"
	"cineview-backend/internal/database"
	"cineview-backend/internal/handlers"
	"cineview-backend/internal/middleware"
	"cineview-backend/internal/models"
	"cineview-backend/internal/repository"
	"cineview-backend/internal/routes"
	"cineview-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testApp struct {
	app     *fiber.App
	db      *database.Database
	films   repository.FilmRepository
	reviews repository.ReviewRepository
	users   repository.UserRepository
	auth    services.AuthService
}

func newTestApp(t *testing.T) *testApp {
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

	userRepo := repository.NewUserRepository(db)
	filmRepo := repository.NewFilmRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	langRepo := repository.NewLanguageRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	reportRepo := repository.NewReportRepository(db)
	followRepo := repository.NewFollowRepository(db)
	watchlistRepo := repository.NewWatchlistRepository(db)
	articleRepo := repository.NewArticleRepository(db)

	cfg := &config.Config{
		OMDB:    config.OMDBConfig{APIKey: "test-key", BaseURL: "http://omdb.invalid", HTTPTimeout: time.Second},
		Session: config.SessionConfig{CookieName: "cineview_session", Expiration: time.Hour},
	}

	authService := services.NewAuthService(userRepo, reviewRepo, followRepo, log)
	filmService := services.NewFilmService(filmRepo, genreRepo, langRepo, reviewRepo, cfg, log)
	reviewService := services.NewReviewService(reviewRepo, filmRepo, reportRepo, log)
	moderationService := services.NewModerationService(reportRepo, reviewRepo, filmRepo, userRepo, articleRepo, log)
	socialService := services.NewSocialService(followRepo, userRepo, filmRepo, reviewRepo, watchlistRepo, articleRepo, log)
	watchlistService := services.NewWatchlistService(watchlistRepo, filmRepo, log)
	articleService := services.NewArticleService(articleRepo, log)

	auth := middleware.NewAuth(cfg.Session, userRepo, log)

	app := fiber.New()
	app.Use(auth.LoadPrincipal())

	routes.Setup(app, auth,
		handlers.NewAuthHandler(authService, auth, log),
		handlers.NewFilmHandler(filmService, log),
		handlers.NewReviewHandler(reviewService, log),
		handlers.NewSocialHandler(socialService, log),
		handlers.NewWatchlistHandler(watchlistService, log),
		handlers.NewArticleHandler(articleService, log),
		handlers.NewAdminHandler(moderationService, log),
		handlers.NewUploadHandler(nil, log),
	)

	return &testApp{
		app:     app,
		db:      db,
		films:   filmRepo,
		reviews: reviewRepo,
		users:   userRepo,
		auth:    authService,
	}
}

// login registers a user and returns the session cookie from a login request.
func (ta *testApp) login(t *testing.T, username string) (*models.User, *http.Cookie) {
	t.Helper()

	user, err := ta.auth.Register(context.Background(), username, username+"@example.com", "secret-password")
	require.NoError(t, err)

	body := fmt.Sprintf(`{"username": %q, "password": "secret-password"}`, username)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := ta.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "cineview_session" {
			return user, cookie
		}
	}
	t.Fatal("login response did not set a session cookie")
	return nil, nil
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestLikeReviewWireShape(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()

	author, _ := ta.login(t, "alice")
	_, cookie := ta.login(t, "bob")

	film := &models.Film{Title: "Blade Runner", Year: "1982"}
	require.NoError(t, ta.films.Create(ctx, film))
	review := &models.Review{FilmID: film.ID, UserID: author.ID, Rating: 9, Text: "still holds up"}
	require.NoError(t, ta.reviews.Create(ctx, review))

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/reviews/%d/like", review.ID), nil)
	req.AddCookie(cookie)

	resp, err := ta.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "like", body["action"])
}

func TestLikeReviewRequiresLogin(t *testing.T) {
	ta := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/1/like", nil)

	resp, err := ta.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Not logged in", body["message"])
}

func TestSubmitReviewEndToEnd(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()

	_, cookie := ta.login(t, "alice")

	film := &models.Film{Title: "Paris, Texas", Year: "1984"}
	require.NoError(t, ta.films.Create(ctx, film))

	body := `{"rating": 9.5, "text": "unforgettable"}`
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/films/%d/reviews", film.ID), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)

	resp, err := ta.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	got, err := ta.films.FindByID(ctx, film.ID)
	require.NoError(t, err)
	assert.InDelta(t, 9.5, got.AverageRating, 0.001)
}

func TestMalformedIDsAreNotFound(t *testing.T) {
	ta := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/films/not-a-number", nil)
	resp, err := ta.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/articles/xyz", nil)
	resp, err = ta.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminRoutesAreGuarded(t *testing.T) {
	ta := newTestApp(t)

	_, cookie := ta.login(t, "alice")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	req.AddCookie(cookie)

	resp, err := ta.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	anon := httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	resp, err = ta.app.Test(anon)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
