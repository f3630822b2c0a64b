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

type FilmHandler struct {
	service services.FilmService
	logger  *logrus.Logger
}

func NewFilmHandler(service services.FilmService, logger *logrus.Logger) *FilmHandler {
	return &FilmHandler{
		service: service,
		logger:  logger,
	}
}

// GetFilms godoc
// @Summary List films
// @Description Paginated films from the local catalog, newest releases first
// @Tags films
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} utils.StandardResponse "Films with pagination metadata"
// @Router /films [get]
func (h *FilmHandler) GetFilms(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	films, total, err := h.service.ListFilms(c.Context(), page, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list films")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch films")
	}

	meta := utils.CreatePaginationMeta(page, limit, total)
	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Films retrieved successfully", films, meta)
}

// SearchFilms godoc
// @Summary Search films
// @Description Search the external metadata catalog by title, or the local catalog with local=true
// @Tags films
// @Produce json
// @Param q query string true "Title query"
// @Param local query bool false "Search the local catalog instead"
// @Success 200 {object} utils.StandardResponse "Search results"
// @Failure 502 {object} utils.StandardResponse "Metadata provider unavailable"
// @Router /films/search [get]
func (h *FilmHandler) SearchFilms(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Query parameter 'q' is required")
	}

	if c.QueryBool("local") {
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		films, err := h.service.SearchLocal(c.Context(), query, limit)
		if err != nil {
			h.logger.WithError(err).Error("Failed to search local catalog")
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Search failed")
		}
		return utils.SuccessResponse(c, fiber.StatusOK, "Films retrieved successfully", films)
	}

	results, err := h.service.SearchOMDB(c.Context(), query)
	if err != nil {
		if errors.Is(err, services.ErrMetadataLookup) {
			return utils.ErrorResponse(c, fiber.StatusBadGateway, "Film metadata provider is unavailable")
		}
		h.logger.WithError(err).Error("Failed to search films")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Search failed")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Films retrieved successfully", results)
}

// GetFilm godoc
// @Summary Get film detail
// @Description Film with reviews, view count incremented per request
// @Tags films
// @Produce json
// @Param id path int true "Film ID"
// @Success 200 {object} utils.StandardResponse "Film detail"
// @Failure 404 {object} utils.StandardResponse "Film not found"
// @Router /films/{id} [get]
func (h *FilmHandler) GetFilm(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Film not found")
	}

	var viewerID uint
	if user := middleware.Principal(c); user != nil {
		viewerID = user.ID
	}

	detail, err := h.service.GetFilmDetail(c.Context(), uint(id), viewerID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Film not found")
		}
		h.logger.WithError(err).WithField("film_id", id).Error("Failed to fetch film")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch film")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Film retrieved successfully", detail)
}

// ImportFilm godoc
// @Summary Import a film
// @Description Fetch a film from the metadata provider by IMDb ID and store it locally
// @Tags films
// @Accept json
// @Produce json
// @Param request body ImportFilmRequest true "Import request"
// @Success 200 {object} utils.StandardResponse "Film already in catalog"
// @Success 201 {object} utils.StandardResponse "Film imported"
// @Failure 404 {object} utils.StandardResponse "Unknown IMDb ID"
// @Failure 502 {object} utils.StandardResponse "Metadata provider unavailable"
// @Router /films/import [post]
func (h *FilmHandler) ImportFilm(c *fiber.Ctx) error {
	var req ImportFilmRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, validationMessage(err))
	}

	film, created, err := h.service.ImportByIMDBID(c.Context(), req.IMDBID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFilmNotInCatalog):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "No film found for that IMDb ID")
		case errors.Is(err, services.ErrMetadataLookup):
			return utils.ErrorResponse(c, fiber.StatusBadGateway, "Film metadata provider is unavailable")
		}
		h.logger.WithError(err).WithField("imdb_id", req.IMDBID).Error("Failed to import film")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to import film")
	}

	if created {
		return utils.SuccessResponse(c, fiber.StatusCreated, "Film imported successfully", film)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Film already in catalog", film)
}
