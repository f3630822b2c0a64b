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

type WatchlistHandler struct {
	service services.WatchlistService
	logger  *logrus.Logger
}

func NewWatchlistHandler(service services.WatchlistService, logger *logrus.Logger) *WatchlistHandler {
	return &WatchlistHandler{
		service: service,
		logger:  logger,
	}
}

// ToggleWatchlist godoc
// @Summary Toggle a film on the default watchlist
// @Tags watchlists
// @Produce json
// @Param id path int true "Film ID"
// @Success 200 {object} map[string]interface{} "Action taken"
// @Failure 401 {object} map[string]interface{} "Not logged in"
// @Router /films/{id}/watchlist [post]
func (h *WatchlistHandler) ToggleWatchlist(c *fiber.Ctx) error {
	user := middleware.Principal(c)
	if user == nil {
		return utils.ToggleErrorResponse(c, fiber.StatusUnauthorized, "Not logged in")
	}

	filmID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ToggleErrorResponse(c, fiber.StatusNotFound, "Film not found")
	}

	action, err := h.service.ToggleDefault(c.Context(), user.ID, uint(filmID))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.ToggleErrorResponse(c, fiber.StatusNotFound, "Film not found")
		}
		h.logger.WithError(err).WithField("film_id", filmID).Error("Failed to toggle watchlist")
		return utils.ToggleErrorResponse(c, fiber.StatusInternalServerError, "Failed to toggle watchlist")
	}

	return utils.ToggleResponse(c, action)
}

// AddToCustomWatchlist godoc
// @Summary Add a film to a named watchlist
// @Description Creates the list on first use; list names match case-insensitively
// @Tags watchlists
// @Accept json
// @Produce json
// @Param id path int true "Film ID"
// @Param request body CustomWatchlistRequest true "Watchlist name"
// @Success 200 {object} utils.StandardResponse "Result"
// @Failure 401 {object} utils.StandardResponse "Not logged in"
// @Failure 404 {object} utils.StandardResponse "Film not found"
// @Router /films/{id}/watchlists [post]
func (h *WatchlistHandler) AddToCustomWatchlist(c *fiber.Ctx) error {
	user := middleware.Principal(c)

	filmID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Film not found")
	}

	var req CustomWatchlistRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, validationMessage(err))
	}

	added, err := h.service.AddToCustom(c.Context(), user.ID, uint(filmID), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNameRequired):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Watchlist name is required")
		case errors.Is(err, services.ErrNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Film not found")
		}
		h.logger.WithError(err).WithField("film_id", filmID).Error("Failed to update watchlist")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update watchlist")
	}

	message := "Film is already on that watchlist"
	if added {
		message = "Film added to watchlist"
	}
	return utils.SuccessResponse(c, fiber.StatusOK, message, fiber.Map{"added": added})
}

// GetWatchlists godoc
// @Summary List the current user's custom watchlists
// @Tags watchlists
// @Produce json
// @Success 200 {object} utils.StandardResponse "Watchlists"
// @Failure 401 {object} utils.StandardResponse "Not logged in"
// @Router /watchlists [get]
func (h *WatchlistHandler) GetWatchlists(c *fiber.Ctx) error {
	user := middleware.Principal(c)

	lists, err := h.service.Lists(c.Context(), user.ID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to list watchlists")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list watchlists")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Watchlists retrieved successfully", lists)
}
