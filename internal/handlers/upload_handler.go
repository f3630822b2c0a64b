package handlers

import (
	"cineview-backend/internal/services"
	"cineview-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type UploadHandler struct {
	minio  *services.MinIOService
	logger *logrus.Logger
}

func NewUploadHandler(minio *services.MinIOService, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		minio:  minio,
		logger: logger,
	}
}

// GetPresignedURL godoc
// @Summary Get a presigned upload URL
// @Description Presigned PUT URL for uploading a profile picture or article image
// @Tags uploads
// @Produce json
// @Param filename query string true "Original file name"
// @Param content_type query string true "MIME type"
// @Success 200 {object} utils.StandardResponse "Upload and public URLs"
// @Failure 401 {object} utils.StandardResponse "Not logged in"
// @Router /uploads/presign [get]
func (h *UploadHandler) GetPresignedURL(c *fiber.Ctx) error {
	filename := c.Query("filename")
	contentType := c.Query("content_type")
	if filename == "" || contentType == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Query parameters 'filename' and 'content_type' are required")
	}

	uploadURL, publicURL, err := h.minio.GeneratePresignedURL(filename, contentType)
	if err != nil {
		h.logger.WithError(err).WithField("filename", filename).Error("Failed to generate presigned URL")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate upload URL")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Upload URL generated successfully", fiber.Map{
		"upload_url": uploadURL,
		"public_url": publicURL,
	})
}
