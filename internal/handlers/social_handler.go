package handlers

import (
	"errors"
	"strconv"

	"cineview-backend/internal/middleware"
	"cineview-backend/internal/services"
	"cineview-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SocialHandler struct {
	service services.SocialService
	logger  *logrus.Logger
}

func NewSocialHandler(service services.SocialService, logger *logrus.Logger) *SocialHandler {
	return &SocialHandler{
		service: service,
		logger:  logger,
	}
}

// GetHome godoc
// @Summary Public landing page
// @Description Popular films, newest releases, and the latest articles
// @Tags social
// @Produce json
// @Success 200 {object} utils.StandardResponse "Home page"
// @Router / [get]
func (h *SocialHandler) GetHome(c *fiber.Ctx) error {
	home, err := h.service.Home(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to build home page")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build home page")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Home retrieved successfully", home)
}

// ToggleFollow godoc
// @Summary Follow or unfollow a user
// @Description Toggles the follow edge from the current user to the target
// @Tags social
// @Produce json
// @Param id path int true "Target user ID"
// @Success 200 {object} map[string]interface{} "Action taken"
// @Failure 401 {object} map[string]interface{} "Not logged in"
// @Router /follow/{id} [post]
func (h *SocialHandler) ToggleFollow(c *fiber.Ctx) error {
	user := middleware.Principal(c)
	if user == nil {
		return utils.ToggleErrorResponse(c, fiber.StatusUnauthorized, "Not logged in")
	}

	targetID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ToggleErrorResponse(c, fiber.StatusNotFound, "User not found")
	}

	action, err := h.service.ToggleFollow(c.Context(), user.ID, uint(targetID))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfFollow):
			return utils.ToggleErrorResponse(c, fiber.StatusBadRequest, "You cannot follow yourself")
		case errors.Is(err, services.ErrNotFound):
			return utils.ToggleErrorResponse(c, fiber.StatusNotFound, "User not found")
		}
		h.logger.WithError(err).WithField("target_id", targetID).Error("Failed to toggle follow")
		return utils.ToggleErrorResponse(c, fiber.StatusInternalServerError, "Failed to toggle follow")
	}

	return utils.ToggleResponse(c, action)
}

// GetUserPage godoc
// @Summary Get a user's public page
// @Description Public profile with reviews, follower counts, and follow state for the viewer
// @Tags social
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} utils.StandardResponse "User page"
// @Failure 404 {object} utils.StandardResponse "User not found"
// @Router /users/{username} [get]
func (h *SocialHandler) GetUserPage(c *fiber.Ctx) error {
	username := c.Params("username")

	var viewerID uint
	if user := middleware.Principal(c); user != nil {
		viewerID = user.ID
	}

	page, err := h.service.UserPage(c.Context(), username, viewerID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found")
		}
		h.logger.WithError(err).WithField("username", username).Error("Failed to load user page")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load user page")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "User retrieved successfully", page)
}

// GetFollowers godoc
// @Summary List a user's followers
// @Tags social
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} utils.StandardResponse "Followers"
// @Failure 404 {object} utils.StandardResponse "User not found"
// @Router /users/{username}/followers [get]
func (h *SocialHandler) GetFollowers(c *fiber.Ctx) error {
	username := c.Params("username")

	_, followers, err := h.service.Followers(c.Context(), username)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found")
		}
		h.logger.WithError(err).WithField("username", username).Error("Failed to list followers")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list followers")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Followers retrieved successfully", followers)
}

// GetFollowing godoc
// @Summary List users a user follows
// @Tags social
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} utils.StandardResponse "Following"
// @Failure 404 {object} utils.StandardResponse "User not found"
// @Router /users/{username}/following [get]
func (h *SocialHandler) GetFollowing(c *fiber.Ctx) error {
	username := c.Params("username")

	_, following, err := h.service.Following(c.Context(), username)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found")
		}
		h.logger.WithError(err).WithField("username", username).Error("Failed to list following")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list following")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Following retrieved successfully", following)
}

// GetFeed godoc
// @Summary Personalized feed
// @Description Trending films, recent reviews with follow state, and the viewer's watchlists grouped by genre
// @Tags social
// @Produce json
// @Success 200 {object} utils.StandardResponse "Feed"
// @Failure 401 {object} utils.StandardResponse "Not logged in"
// @Router /feed [get]
func (h *SocialHandler) GetFeed(c *fiber.Ctx) error {
	user := middleware.Principal(c)

	feed, err := h.service.Feed(c.Context(), user.ID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to build feed")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build feed")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Feed retrieved successfully", feed)
}
