package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/postxindia/postx-backend/internal/core/auth"
	"github.com/postxindia/postx-backend/internal/core/ocr"
	"github.com/postxindia/postx-backend/internal/models"
	"github.com/postxindia/postx-backend/internal/repositories"
)

// DocumentHandler handles document scanning requests
type DocumentHandler struct {
	scanner ocr.Provider
	docRepo repositories.DocumentRepo
}

// NewDocumentHandler creates a new document handler. The scanner is the
// generic OCR.space provider; envelope-specific providers are not used here.
func NewDocumentHandler(scanner ocr.Provider, docRepo repositories.DocumentRepo) *DocumentHandler {
	return &DocumentHandler{
		scanner: scanner,
		docRepo: docRepo,
	}
}

// ScanDocument godoc
// @Summary Scan a document image to text
// @Description Extract text from an uploaded document image and store the result
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Document image"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/documents/scan [post]
func (h *DocumentHandler) ScanDocument(c *fiber.Ctx) error {
	userID, err := uuid.Parse(auth.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid user identity",
		})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "image file is required",
		})
	}

	image, err := readImageFile(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	result, err := h.scanner.ExtractText(c.Context(), image)
	if err != nil {
		log.Error().Err(err).Msg("document scan failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "failed to extract text from document",
		})
	}

	doc := &models.ScannedDocument{
		UserID:     userID,
		FileName:   file.Filename,
		Text:       result.Text,
		Confidence: result.Confidence,
	}

	if err := h.docRepo.Create(doc); err != nil {
		log.Error().Err(err).Msg("failed to save scanned document")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save scanned document",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"document": doc,
	})
}

// ListDocuments godoc
// @Summary List scanned documents
// @Tags Documents
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/documents [get]
func (h *DocumentHandler) ListDocuments(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit > 100 {
		limit = 100
	}

	docs, err := h.docRepo.GetByUserID(auth.UserID(c), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list documents")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to retrieve documents",
		})
	}

	return c.JSON(fiber.Map{
		"count": len(docs),
		"data":  docs,
	})
}
