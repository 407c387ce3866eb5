package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/postxindia/postx-backend/internal/core/auth"
	"github.com/postxindia/postx-backend/internal/models"
	"github.com/postxindia/postx-backend/internal/repositories"
)

// Accepted KYC document types.
var identityDocumentTypes = map[string]bool{
	"aadhaar":         true,
	"pan":             true,
	"passport":        true,
	"driving_license": true,
	"voter_id":        true,
}

// IdentityHandler handles KYC document submission and listing
type IdentityHandler struct {
	identityRepo     repositories.IdentityRepo
	notificationRepo repositories.NotificationRepo
}

// NewIdentityHandler creates a new identity verification handler
func NewIdentityHandler(identityRepo repositories.IdentityRepo, notificationRepo repositories.NotificationRepo) *IdentityHandler {
	return &IdentityHandler{
		identityRepo:     identityRepo,
		notificationRepo: notificationRepo,
	}
}

// SubmitVerificationRequest is the KYC submission body
type SubmitVerificationRequest struct {
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
}

// SubmitVerification godoc
// @Summary Submit an identity document for verification
// @Description Store a KYC document submission with status pending and notify the user
// @Tags Identity
// @Accept json
// @Produce json
// @Param verification body SubmitVerificationRequest true "Document type and number"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/identity-verifications [post]
func (h *IdentityHandler) SubmitVerification(c *fiber.Ctx) error {
	userID, err := uuid.Parse(auth.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid user identity",
		})
	}

	var req SubmitVerificationRequest
	if err := c.BodyParser(&req); err != nil || req.DocumentNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "document type and number are required",
		})
	}
	if !identityDocumentTypes[req.DocumentType] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unsupported document type",
		})
	}

	verification := &models.IdentityVerification{
		UserID:             userID,
		DocumentType:       req.DocumentType,
		DocumentNumber:     req.DocumentNumber,
		VerificationStatus: "pending",
	}

	if err := h.identityRepo.Create(verification); err != nil {
		log.Error().Err(err).Msg("failed to save identity verification")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save verification request",
		})
	}

	// The confirmation notification never blocks the submission.
	notification := &models.Notification{
		UserID:  userID,
		Title:   "Identity Verification Submitted",
		Message: "Your identity verification request has been submitted and is under review.",
		Type:    "info",
	}
	if err := h.notificationRepo.Create(notification); err != nil {
		log.Error().Err(err).Msg("failed to save verification notification")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"verification": verification,
	})
}

// ListVerifications godoc
// @Summary List identity verification requests
// @Tags Identity
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/identity-verifications [get]
func (h *IdentityHandler) ListVerifications(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit > 100 {
		limit = 100
	}

	verifications, err := h.identityRepo.GetByUserID(auth.UserID(c), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list identity verifications")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to retrieve verifications",
		})
	}

	return c.JSON(fiber.Map{
		"count": len(verifications),
		"data":  verifications,
	})
}

// ListNotifications godoc
// @Summary List dashboard notifications
// @Tags Identity
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/notifications [get]
func (h *IdentityHandler) ListNotifications(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit > 100 {
		limit = 100
	}

	notifications, err := h.notificationRepo.GetByUserID(auth.UserID(c), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list notifications")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to retrieve notifications",
		})
	}

	return c.JSON(fiber.Map{
		"count": len(notifications),
		"data":  notifications,
	})
}
