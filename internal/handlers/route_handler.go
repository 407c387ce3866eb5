package handlers

import (
	"context"
	"encoding/json"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/postxindia/postx-backend/internal/core/auth"
	"github.com/postxindia/postx-backend/internal/core/ocr"
	"github.com/postxindia/postx-backend/internal/core/route"
	"github.com/postxindia/postx-backend/internal/models"
	"github.com/postxindia/postx-backend/internal/repositories"
)

// RoutePlanner computes the smart mail route for an envelope.
type RoutePlanner interface {
	Process(ctx context.Context, image []byte, ocrProvider string, userLat, userLon float64) (*route.Plan, error)
}

// RouteHandler handles smart mail route requests
type RouteHandler struct {
	planner    RoutePlanner
	sortedRepo repositories.SortedMailRepo
}

// NewRouteHandler creates a new smart route handler
func NewRouteHandler(planner RoutePlanner, sortedRepo repositories.SortedMailRepo) *RouteHandler {
	return &RouteHandler{
		planner:    planner,
		sortedRepo: sortedRepo,
	}
}

// ProcessSmartRoute godoc
// @Summary Process an envelope and route it to the nearest post office
// @Description Runs the sorting pipeline, finds post offices for the PIN code, ranks them by distance, and computes a driving route
// @Tags Smart Mail Route
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Envelope image"
// @Param ocrProvider formData string false "OCR provider: mistral, gemini, or ocrspace" default(mistral)
// @Param userLat formData number true "User latitude"
// @Param userLon formData number true "User longitude"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/smart-mail-route/process [post]
func (h *RouteHandler) ProcessSmartRoute(c *fiber.Ctx) error {
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
	userLat := parseCoordinate(c.FormValue("userLat"))
	userLon := parseCoordinate(c.FormValue("userLon"))

	plan, err := h.planner.Process(c.Context(), image, ocrProvider, userLat, userLon)
	if err != nil {
		log.Error().Err(err).Msg("smart route processing failed")
		return errorResponse(c, err)
	}

	record := h.sortedMailFromPlan(userID, plan)

	// Storage is not transactional with the pipeline; a failed write still
	// returns the computed plan.
	saved := true
	if err := h.sortedRepo.Create(record); err != nil {
		log.Error().Err(err).Msg("failed to save sorted mail record")
		saved = false
	}

	return c.JSON(fiber.Map{
		"success": true,
		"saved":   saved,
		"result":  plan,
	})
}

// GetHistory godoc
// @Summary List past smart-route runs
// @Tags Smart Mail Route
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/smart-mail-route/history [get]
func (h *RouteHandler) GetHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit > 100 {
		limit = 100
	}

	records, err := h.sortedRepo.GetByUserID(auth.UserID(c), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list smart-route history")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to retrieve history",
		})
	}

	return c.JSON(fiber.Map{
		"count": len(records),
		"data":  records,
	})
}

// parseCoordinate returns NaN for unparseable input so the planner rejects
// it as an invalid location.
func parseCoordinate(value string) float64 {
	coord, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return math.NaN()
	}
	return coord
}

func (h *RouteHandler) sortedMailFromPlan(userID uuid.UUID, plan *route.Plan) *models.SortedMail {
	ocrConfidence := plan.OCR.Confidence

	record := &models.SortedMail{
		UserID:                userID,
		RecipientName:         plan.Address.RecipientName,
		FullAddress:           plan.Address.FullAddress,
		Street:                plan.Address.Street,
		City:                  plan.Address.City,
		State:                 plan.Address.State,
		Pincode:               plan.Address.Pincode,
		Confidence:            plan.Address.Confidence,
		IsHandwritten:         plan.Address.IsHandwritten,
		SortingCenter:         plan.Sorting.SortingCenter,
		RouteCode:             plan.Sorting.RouteCode,
		Priority:              plan.Sorting.Priority,
		Zone:                  plan.Sorting.Zone,
		EstimatedDeliveryDays: plan.Sorting.EstimatedDeliveryDays,
		NearestOffice:         plan.NearestPostOffice.Name,
		UserLat:               plan.UserLocation.Lat,
		UserLon:               plan.UserLocation.Lon,
		OCRSource:             plan.OCR.Provider,
		OCRConfidence:         &ocrConfidence,
		ProcessingTimeMs:      plan.TotalElapsedMs,
	}

	if offices, err := json.Marshal(plan.PostOffices); err == nil {
		record.PostOffices = datatypes.JSON(offices)
	}
	if plan.Routing != nil {
		if routing, err := json.Marshal(plan.Routing); err == nil {
			record.Routing = datatypes.JSON(routing)
		}
	}

	return record
}
