package middleware

import (
	"cineview-backend/internal/config"
	"cineview-backend/internal/models"
	"cineview-backend/internal/repository"
	"cineview-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"
)

const (
	principalKey   = "principal"
	sessionUserKey = "user_id"
)

// Auth owns the server-side session store and resolves the authenticated
// principal per request. The cookie carries only an opaque session id.
type Auth struct {
	store  *session.Store
	users  repository.UserRepository
	logger *logrus.Logger
}

func NewAuth(cfg config.SessionConfig, users repository.UserRepository, logger *logrus.Logger) *Auth {
	store := session.New(session.Config{
		Expiration:     cfg.Expiration,
		KeyLookup:      "cookie:" + cfg.CookieName,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	return &Auth{
		store:  store,
		users:  users,
		logger: logger,
	}
}

// LoadPrincipal puts the session's user into request locals when a valid
// session exists. It never rejects; guards come from RequireAuth and
// RequireAdmin.
func (a *Auth) LoadPrincipal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := a.store.Get(c)
		if err != nil {
			a.logger.WithError(err).Warn("Failed to load session")
			return c.Next()
		}
		id, ok := sess.Get(sessionUserKey).(uint)
		if !ok || id == 0 {
			return c.Next()
		}
		user, err := a.users.FindByID(c.Context(), id)
		if err != nil || user == nil {
			return c.Next()
		}
		c.Locals(principalKey, user)
		return c.Next()
	}
}

func (a *Auth) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if Principal(c) == nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Not logged in")
		}
		return c.Next()
	}
}

func (a *Auth) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := Principal(c)
		if user == nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Not logged in")
		}
		if !user.IsAdmin() {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Admin access required")
		}
		return c.Next()
	}
}

// Principal returns the authenticated user for this request, or nil.
func Principal(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals(principalKey).(*models.User); ok {
		return user
	}
	return nil
}

// SignIn binds the user to a fresh session id.
func (a *Auth) SignIn(c *fiber.Ctx, userID uint) error {
	sess, err := a.store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(sessionUserKey, userID)
	return sess.Save()
}

func (a *Auth) SignOut(c *fiber.Ctx) error {
	sess, err := a.store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}
