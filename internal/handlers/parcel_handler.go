package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math/rand"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/postxindia/postx-backend/internal/core/auth"
	"github.com/postxindia/postx-backend/internal/models"
	"github.com/postxindia/postx-backend/internal/repositories"
)

// ParcelHandler handles parcel registration and tracking lookups
type ParcelHandler struct {
	parcelRepo repositories.ParcelRepo
}

// NewParcelHandler creates a new parcel handler
func NewParcelHandler(parcelRepo repositories.ParcelRepo) *ParcelHandler {
	return &ParcelHandler{parcelRepo: parcelRepo}
}

// RegisterParcelRequest is the parcel registration body
type RegisterParcelRequest struct {
	SenderName       string `json:"senderName"`
	RecipientName    string `json:"recipientName"`
	RecipientAddress string `json:"recipientAddress"`
	Pincode          string `json:"pincode"`
	WeightGrams      int    `json:"weightGrams"`
	ServiceType      string `json:"serviceType"`
}

// RegisterParcel godoc
// @Summary Register an outbound parcel
// @Description Create a parcel record with a generated tracking number and QR code
// @Tags Parcels
// @Accept json
// @Produce json
// @Param parcel body RegisterParcelRequest true "Parcel details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/parcels [post]
func (h *ParcelHandler) RegisterParcel(c *fiber.Ctx) error {
	userID, err := uuid.Parse(auth.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid user identity",
		})
	}

	var req RegisterParcelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if req.RecipientName == "" || req.RecipientAddress == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "recipientName and recipientAddress are required",
		})
	}

	serviceType := req.ServiceType
	if serviceType == "" {
		serviceType = "standard"
	}

	trackingNumber := newTrackingNumber()

	// QR encodes the tracking number for label printing
	qrPNG, err := qrcode.Encode(trackingNumber, qrcode.Medium, 256)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tracking QR code")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to generate tracking QR code",
		})
	}

	parcel := &models.Parcel{
		UserID:         userID,
		TrackingNumber: trackingNumber,
		SenderName:     req.SenderName,
		RecipientName:  req.RecipientName,
		RecipientAddr:  req.RecipientAddress,
		Pincode:        req.Pincode,
		WeightGrams:    req.WeightGrams,
		ServiceType:    serviceType,
		Status:         "registered",
		QRCode:         base64.StdEncoding.EncodeToString(qrPNG),
	}

	if err := h.parcelRepo.Create(parcel); err != nil {
		log.Error().Err(err).Msg("failed to save parcel")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to register parcel",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"parcel":  parcel,
	})
}

// GetParcel godoc
// @Summary Look up a parcel by tracking number
// @Tags Parcels
// @Produce json
// @Param trackingNumber path string true "Tracking number"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/parcels/{trackingNumber} [get]
func (h *ParcelHandler) GetParcel(c *fiber.Ctx) error {
	trackingNumber := c.Params("trackingNumber")

	parcel, err := h.parcelRepo.GetByTrackingNumber(trackingNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "parcel not found",
			})
		}
		log.Error().Err(err).Msg("failed to look up parcel")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to look up parcel",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"parcel":  parcel,
	})
}

// ListParcels godoc
// @Summary List registered parcels
// @Tags Parcels
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/parcels [get]
func (h *ParcelHandler) ListParcels(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit > 100 {
		limit = 100
	}

	parcels, err := h.parcelRepo.GetByUserID(auth.UserID(c), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list parcels")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to retrieve parcels",
		})
	}

	return c.JSON(fiber.Map{
		"count": len(parcels),
		"data":  parcels,
	})
}

// newTrackingNumber generates a PX-prefixed 13-character tracking number in
// the India Post article format.
func newTrackingNumber() string {
	return fmt.Sprintf("PX%09dIN", rand.Intn(1_000_000_000))
}
