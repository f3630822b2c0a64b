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

type ArticleHandler struct {
	service services.ArticleService
	logger  *logrus.Logger
}

func NewArticleHandler(service services.ArticleService, logger *logrus.Logger) *ArticleHandler {
	return &ArticleHandler{
		service: service,
		logger:  logger,
	}
}

// GetArticles godoc
// @Summary List articles
// @Description Editorial articles, newest first
// @Tags articles
// @Produce json
// @Param limit query int false "Maximum number of articles"
// @Success 200 {object} utils.StandardResponse "Articles"
// @Router /articles [get]
func (h *ArticleHandler) GetArticles(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	articles, err := h.service.List(c.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list articles")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch articles")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Articles retrieved successfully", articles)
}

// GetArticle godoc
// @Summary Get article detail
// @Description Article with author info and related articles; view count incremented per request
// @Tags articles
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} utils.StandardResponse "Article detail"
// @Failure 404 {object} utils.StandardResponse "Article not found"
// @Router /articles/{id} [get]
func (h *ArticleHandler) GetArticle(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Article not found")
	}

	detail, err := h.service.Detail(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Article not found")
		}
		h.logger.WithError(err).WithField("article_id", id).Error("Failed to fetch article")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch article")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Article retrieved successfully", detail)
}

// CreateArticle godoc
// @Summary Create an article
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ArticleRequest true "Article"
// @Success 201 {object} utils.StandardResponse "Article created"
// @Failure 403 {object} utils.StandardResponse "Admin access required"
// @Router /admin/articles [post]
func (h *ArticleHandler) CreateArticle(c *fiber.Ctx) error {
	user := middleware.Principal(c)

	var req ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, validationMessage(err))
	}

	article, err := h.service.Create(c.Context(), user.ID, req.Title, req.Content, req.Tags, req.FeaturedImage)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create article")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create article")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Article published successfully!", article)
}

// UpdateArticle godoc
// @Summary Update an article
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Param request body ArticleRequest true "Article"
// @Success 200 {object} utils.StandardResponse "Article updated"
// @Failure 403 {object} utils.StandardResponse "Admin access required"
// @Failure 404 {object} utils.StandardResponse "Article not found"
// @Router /admin/articles/{id} [put]
func (h *ArticleHandler) UpdateArticle(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Article not found")
	}

	var req ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, validationMessage(err))
	}

	article, err := h.service.Update(c.Context(), uint(id), req.Title, req.Content, req.Tags, req.FeaturedImage)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Article not found")
		}
		h.logger.WithError(err).WithField("article_id", id).Error("Failed to update article")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update article")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Article updated successfully!", article)
}

// DeleteArticle godoc
// @Summary Delete an article
// @Tags admin
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} utils.StandardResponse "Article deleted"
// @Failure 403 {object} utils.StandardResponse "Admin access required"
// @Failure 404 {object} utils.StandardResponse "Article not found"
// @Router /admin/articles/{id} [delete]
func (h *ArticleHandler) DeleteArticle(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Article not found")
	}

	if err := h.service.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Article not found")
		}
		h.logger.WithError(err).WithField("article_id", id).Error("Failed to delete article")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete article")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Article deleted successfully", nil)
}
