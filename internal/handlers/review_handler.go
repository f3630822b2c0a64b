package handlers

import (
	"context"
	"errors"
	"strconv"

	"cineview-backend/internal/middleware"
	"cineview-backend/internal/services"
	"cineview-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ReviewHandler struct {
	service services.ReviewService
	logger  *logrus.Logger
}

func NewReviewHandler(service services.ReviewService, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger,
	}
}

// SubmitReview godoc
// @Summary Submit a review
// @Description Post a rating and text for a film
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Film ID"
// @Param request body SubmitReviewRequest true "Review"
// @Success 201 {object} utils.StandardResponse "Review created"
// @Failure 400 {object} utils.StandardResponse "Invalid rating"
// @Failure 401 {object} utils.StandardResponse "Not logged in"
// @Failure 404 {object} utils.StandardResponse "Film not found"
// @Router /films/{id}/reviews [post]
func (h *ReviewHandler) SubmitReview(c *fiber.Ctx) error {
	user := middleware.Principal(c)

	filmID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Film not found")
	}

	var req SubmitReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, validationMessage(err))
	}

	review, err := h.service.Submit(c.Context(), uint(filmID), user.ID, req.Rating, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRating):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Film not found")
		}
		h.logger.WithError(err).WithField("film_id", filmID).Error("Failed to submit review")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to submit review")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Review submitted successfully!", review)
}

// LikeReview godoc
// @Summary Like a review
// @Description Toggle a like; a user holds at most one like or dislike per review
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} map[string]interface{} "Action taken"
// @Failure 401 {object} map[string]interface{} "Not logged in"
// @Router /reviews/{id}/like [post]
func (h *ReviewHandler) LikeReview(c *fiber.Ctx) error {
	return h.voteReview(c, h.service.Like)
}

// DislikeReview godoc
// @Summary Dislike a review
// @Description Toggle a dislike; a user holds at most one like or dislike per review
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} map[string]interface{} "Action taken"
// @Failure 401 {object} map[string]interface{} "Not logged in"
// @Router /reviews/{id}/dislike [post]
func (h *ReviewHandler) DislikeReview(c *fiber.Ctx) error {
	return h.voteReview(c, h.service.Dislike)
}

func (h *ReviewHandler) voteReview(c *fiber.Ctx, vote func(ctx context.Context, reviewID, userID uint) (string, error)) error {
	user := middleware.Principal(c)
	if user == nil {
		return utils.ToggleErrorResponse(c, fiber.StatusUnauthorized, "Not logged in")
	}

	reviewID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ToggleErrorResponse(c, fiber.StatusNotFound, "Review not found")
	}

	action, err := vote(c.Context(), uint(reviewID), user.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.ToggleErrorResponse(c, fiber.StatusNotFound, "Review not found")
		}
		h.logger.WithError(err).WithField("review_id", reviewID).Error("Failed to apply vote")
		return utils.ToggleErrorResponse(c, fiber.StatusInternalServerError, "Failed to apply vote")
	}

	return utils.ToggleResponse(c, action)
}

// ReportReview godoc
// @Summary Report a review
// @Description Flag a review for moderator attention
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Review ID"
// @Param request body ReportReviewRequest true "Report reason"
// @Success 200 {object} utils.StandardResponse "Report filed"
// @Failure 400 {object} utils.StandardResponse "Self-report or duplicate"
// @Failure 401 {object} utils.StandardResponse "Not logged in"
// @Failure 404 {object} utils.StandardResponse "Review not found"
// @Router /reviews/{id}/report [post]
func (h *ReviewHandler) ReportReview(c *fiber.Ctx) error {
	user := middleware.Principal(c)

	reviewID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Review not found")
	}

	var req ReportReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, validationMessage(err))
	}

	if err := h.service.Report(c.Context(), uint(reviewID), user.ID, req.Reason); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Review not found")
		case errors.Is(err, services.ErrSelfReport):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "You cannot report your own review")
		case errors.Is(err, services.ErrAlreadyReported):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "You have already reported this review")
		}
		h.logger.WithError(err).WithField("review_id", reviewID).Error("Failed to report review")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to report review")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Review has been reported to moderators", nil)
}
