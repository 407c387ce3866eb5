package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/postxindia/postx-backend/internal/core/address"
	"github.com/postxindia/postx-backend/internal/core/geo"
	"github.com/postxindia/postx-backend/internal/core/imaging"
	"github.com/postxindia/postx-backend/internal/core/ocr"
	"github.com/postxindia/postx-backend/internal/core/route"
	"github.com/postxindia/postx-backend/internal/core/sorting"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"undecodable image", imaging.ErrImageDecode, fiber.StatusBadRequest},
		{"invalid location", route.ErrInvalidLocation, fiber.StatusBadRequest},
		{"pincode not found", geo.ErrPincodeNotFound, fiber.StatusNotFound},
		{"no geocodable office", route.ErrNoGeocodableOffice, fiber.StatusNotFound},
		{"address parse failure", address.ErrParse, fiber.StatusUnprocessableEntity},
		{"classification failure", sorting.ErrClassification, fiber.StatusUnprocessableEntity},
		{"ocr chain exhausted", ocr.ErrExhausted, fiber.StatusBadGateway},
		{"unknown error", errors.New("something else"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusForError(tc.err))
		})
	}
}

func TestStatusForWrappedError(t *testing.T) {
	// sentinels survive wrapping through the pipeline and stage machinery
	wrapped := &route.StageError{
		Stage: route.StageFetchingOffices,
		Err:   fmt.Errorf("lookup: %w", geo.ErrPincodeNotFound),
	}
	assert.Equal(t, fiber.StatusNotFound, statusForError(wrapped))

	assert.Equal(t, fiber.StatusBadGateway,
		statusForError(fmt.Errorf("%w: last error: timeout", ocr.ErrExhausted)))
}
