package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/postxindia/postx-backend/internal/core/auth"
	"github.com/postxindia/postx-backend/internal/core/chat"
	"github.com/postxindia/postx-backend/internal/models"
	"github.com/postxindia/postx-backend/internal/repositories"
)

// ComplaintHandler handles complaint intake and listing
type ComplaintHandler struct {
	analyzer      *chat.ComplaintAnalyzer
	complaintRepo repositories.ComplaintRepo
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(analyzer *chat.ComplaintAnalyzer, complaintRepo repositories.ComplaintRepo) *ComplaintHandler {
	return &ComplaintHandler{
		analyzer:      analyzer,
		complaintRepo: complaintRepo,
	}
}

// CreateComplaintRequest is the complaint intake body
type CreateComplaintRequest struct {
	Text string `json:"text"`
}

// CreateComplaint godoc
// @Summary File a complaint
// @Description Store a complaint and triage it with AI sentiment/category analysis
// @Tags Complaints
// @Accept json
// @Produce json
// @Param complaint body CreateComplaintRequest true "Complaint text"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/complaints [post]
func (h *ComplaintHandler) CreateComplaint(c *fiber.Ctx) error {
	userID, err := uuid.Parse(auth.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid user identity",
		})
	}

	var req CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil || req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "complaint text is required",
		})
	}

	// Triage never blocks intake; on model failure it returns defaults.
	analysis := h.analyzer.Analyze(c.Context(), req.Text)

	complaint := &models.Complaint{
		UserID:       userID,
		Text:         req.Text,
		Sentiment:    analysis.Sentiment,
		Category:     analysis.Category,
		Priority:     analysis.Priority,
		AutoResponse: analysis.AutoResponse,
		Status:       "open",
	}

	if err := h.complaintRepo.Create(complaint); err != nil {
		log.Error().Err(err).Msg("failed to save complaint")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save complaint",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"complaint": complaint,
	})
}

// ListComplaints godoc
// @Summary List complaints
// @Tags Complaints
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/complaints [get]
func (h *ComplaintHandler) ListComplaints(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit > 100 {
		limit = 100
	}

	complaints, err := h.complaintRepo.GetByUserID(auth.UserID(c), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list complaints")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to retrieve complaints",
		})
	}

	return c.JSON(fiber.Map{
		"count": len(complaints),
		"data":  complaints,
	})
}
