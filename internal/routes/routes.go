package routes

import (
	"cineview-backend/internal/handlers"
	"cineview-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func Setup(
	app *fiber.App,
	auth *middleware.Auth,
	authHandler *handlers.AuthHandler,
	filmHandler *handlers.FilmHandler,
	reviewHandler *handlers.ReviewHandler,
	socialHandler *handlers.SocialHandler,
	watchlistHandler *handlers.WatchlistHandler,
	articleHandler *handlers.ArticleHandler,
	adminHandler *handlers.AdminHandler,
	uploadHandler *handlers.UploadHandler,
) {
	// API versioning
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Public landing page
	v1.Get("/", socialHandler.GetHome)

	// Auth routes - registration and session management
	authGroup := v1.Group("/auth")
	{
		authGroup.Post("/register", authHandler.Register)
		authGroup.Post("/login", authHandler.Login)
		authGroup.Post("/logout", authHandler.Logout)
	}

	// Profile routes - the signed-in user's own profile
	profile := v1.Group("/profile", auth.RequireAuth())
	{
		profile.Get("/", authHandler.GetProfile)
		profile.Put("/", authHandler.UpdateProfile)
	}

	// Film routes - catalog browsing, search, and import
	films := v1.Group("/films")
	{
		films.Get("/", filmHandler.GetFilms)
		films.Get("/search", filmHandler.SearchFilms)
		films.Get("/:id", filmHandler.GetFilm)
		films.Post("/import", auth.RequireAuth(), filmHandler.ImportFilm)
		films.Post("/:id/reviews", auth.RequireAuth(), reviewHandler.SubmitReview)
		films.Post("/:id/watchlist", watchlistHandler.ToggleWatchlist)
		films.Post("/:id/watchlists", auth.RequireAuth(), watchlistHandler.AddToCustomWatchlist)
	}

	// Review routes - voting and reporting
	reviews := v1.Group("/reviews")
	{
		reviews.Post("/:id/like", reviewHandler.LikeReview)
		reviews.Post("/:id/dislike", reviewHandler.DislikeReview)
		reviews.Post("/:id/report", auth.RequireAuth(), reviewHandler.ReportReview)
	}

	// Social routes - follow graph and public user pages
	v1.Post("/follow/:id", socialHandler.ToggleFollow)
	users := v1.Group("/users")
	{
		users.Get("/:username", socialHandler.GetUserPage)
		users.Get("/:username/followers", socialHandler.GetFollowers)
		users.Get("/:username/following", socialHandler.GetFollowing)
	}
	v1.Get("/feed", auth.RequireAuth(), socialHandler.GetFeed)

	// Watchlist routes
	v1.Get("/watchlists", auth.RequireAuth(), watchlistHandler.GetWatchlists)

	// Article routes - public reads
	articles := v1.Group("/articles")
	{
		articles.Get("/", articleHandler.GetArticles)
		articles.Get("/:id", articleHandler.GetArticle)
	}

	// Admin routes - moderation and article management
	admin := v1.Group("/admin", auth.RequireAdmin())
	{
		admin.Get("/dashboard", adminHandler.GetDashboard)
		admin.Get("/reports", adminHandler.GetReports)
		admin.Post("/reports/handle", adminHandler.HandleReport)
		admin.Post("/articles", articleHandler.CreateArticle)
		admin.Put("/articles/:id", articleHandler.UpdateArticle)
		admin.Delete("/articles/:id", articleHandler.DeleteArticle)
	}

	upload := v1.Group("/upload")
	{
		upload.Get("/presign", auth.RequireAuth(), uploadHandler.GetPresignedURL)
	}
}
