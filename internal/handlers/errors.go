package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/postxindia/postx-backend/internal/core/address"
	"github.com/postxindia/postx-backend/internal/core/geo"
	"github.com/postxindia/postx-backend/internal/core/imaging"
	"github.com/postxindia/postx-backend/internal/core/ocr"
	"github.com/postxindia/postx-backend/internal/core/route"
	"github.com/postxindia/postx-backend/internal/core/sorting"
)

// statusForError maps pipeline error kinds to HTTP statuses. Anything
// unrecognized is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, imaging.ErrImageDecode),
		errors.Is(err, route.ErrInvalidLocation):
		return fiber.StatusBadRequest
	case errors.Is(err, geo.ErrPincodeNotFound),
		errors.Is(err, route.ErrNoGeocodableOffice):
		return fiber.StatusNotFound
	case errors.Is(err, address.ErrParse),
		errors.Is(err, sorting.ErrClassification):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ocr.ErrExhausted):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// errorResponse writes the tagged error with its mapped status. Failed
// requests never include partial pipeline data.
func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
