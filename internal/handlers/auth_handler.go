package handlers

import (
	"errors"

	"cineview-backend/internal/middleware"
	"cineview-backend/internal/services"
	"cineview-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	service services.AuthService
	auth    *middleware.Auth
	logger  *logrus.Logger
}

func NewAuthHandler(service services.AuthService, auth *middleware.Auth, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		auth:    auth,
		logger:  logger,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Create a user account with username, email, and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration request"
// @Success 201 {object} utils.StandardResponse "User registered"
// @Failure 400 {object} utils.StandardResponse "Validation error or duplicate"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, validationMessage(err))
	}

	user, err := h.service.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) || errors.Is(err, services.ErrEmailTaken) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.WithError(err).Error("Failed to register user")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Registration failed. Please try again.")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Registration successful! Please login.", user)
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and establish a server-side session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} utils.StandardResponse "Logged in"
// @Failure 401 {object} utils.StandardResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, validationMessage(err))
	}

	user, err := h.service.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid username or password")
		}
		h.logger.WithError(err).Error("Failed to authenticate user")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Login failed. Please try again.")
	}

	if err := h.auth.SignIn(c, user.ID); err != nil {
		h.logger.WithError(err).Error("Failed to establish session")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Login failed. Please try again.")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Login successful!", user)
}

// Logout godoc
// @Summary Log out
// @Description Destroy the current session
// @Tags auth
// @Produce json
// @Success 200 {object} utils.StandardResponse "Logged out"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.SignOut(c); err != nil {
		h.logger.WithError(err).Warn("Failed to destroy session")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "You have been logged out", nil)
}

// GetProfile godoc
// @Summary Get own profile
// @Description Current user with own reviews and follower counts
// @Tags profile
// @Produce json
// @Success 200 {object} utils.StandardResponse "Profile"
// @Failure 401 {object} utils.StandardResponse "Not logged in"
// @Router /profile [get]
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user := middleware.Principal(c)

	profile, err := h.service.GetProfile(c.Context(), user.ID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to load profile")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Error loading profile")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Profile retrieved successfully", profile)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Update bio and profile picture reference
// @Tags profile
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile update"
// @Success 200 {object} utils.StandardResponse "Updated"
// @Failure 401 {object} utils.StandardResponse "Not logged in"
// @Router /profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user := middleware.Principal(c)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, validationMessage(err))
	}

	if err := h.service.UpdateProfile(c.Context(), user.ID, req.Bio, req.ProfilePic); err != nil {
		h.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to update profile")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Profile updated successfully!", nil)
}
