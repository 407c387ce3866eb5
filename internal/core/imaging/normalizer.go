package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	img "github.com/disintegration/imaging"
)

// ErrImageDecode is returned when the input bytes are not a decodable image.
var ErrImageDecode = errors.New("image decode failed")

const (
	// maxDimension caps the longest side before OCR submission. Images are
	// only ever scaled down, never up.
	maxDimension = 1920

	// jpegQuality for the re-encoded output
	jpegQuality = 95
)

// Normalizer prepares envelope photos for OCR submission: downscale to at
// most 1920px on the longest side, boost contrast by 20%, re-encode as JPEG.
type Normalizer struct{}

// NewNormalizer creates a new image normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize decodes an image, rescales and enhances it, and returns the
// JPEG-encoded result. A decode failure wraps ErrImageDecode.
func (n *Normalizer) Normalize(data []byte) ([]byte, error) {
	src, err := img.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	bounds := src.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		src = img.Fit(src, maxDimension, maxDimension, img.Lanczos)
	}

	enhanced := boostContrast(img.Clone(src))

	var buf bytes.Buffer
	if err := img.Encode(&buf, enhanced, img.JPEG, img.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode normalized image: %w", err)
	}

	return buf.Bytes(), nil
}

// boostContrast applies channel' = clamp((channel-128)*1.2+128, 0, 255) per
// RGB channel. 128 is the fixed point, so mid-gray pixels pass through
// unchanged. Alpha is left untouched.
func boostContrast(nrgba *image.NRGBA) *image.NRGBA {
	pix := nrgba.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = stretch(pix[i])
		pix[i+1] = stretch(pix[i+1])
		pix[i+2] = stretch(pix[i+2])
	}
	return nrgba
}

func stretch(c uint8) uint8 {
	v := (float64(c)-128)*1.2 + 128
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
