package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	stddraw "image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/rezonia/gst-invoice/internal/model"
)

const (
	// maxImageBytes bounds decoded image payloads
	maxImageBytes = 8 << 20

	// maxImagePixels bounds the declared dimensions checked before decoding
	maxImagePixels = 16 << 20
)

// DecodedImage is an image normalised to PNG
type DecodedImage struct {
	PNG    []byte
	Width  int
	Height int
}

// DecodeImage decodes a data URL or bare base64 image (PNG, JPEG, GIF, BMP
// or WebP) and re-encodes it as PNG
func DecodeImage(ref model.ImageRef) (*DecodedImage, error) {
	raw, err := imageBytes(ref)
	if err != nil {
		return nil, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("empty %s image", format)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return nil, fmt.Errorf("%s image of %dx%d exceeds %d pixels", format, cfg.Width, cfg.Height, maxImagePixels)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("empty %s image", format)
	}

	// The PDF writer only embeds non-interlaced 8-bit PNGs, so every image,
	// PNG included, is redrawn onto 8-bit NRGBA.
	rgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	stddraw.Draw(rgba, rgba.Bounds(), img, bounds.Min, stddraw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return &DecodedImage{PNG: buf.Bytes(), Width: bounds.Dx(), Height: bounds.Dy()}, nil
}

func imageBytes(ref model.ImageRef) ([]byte, error) {
	s := strings.TrimSpace(string(ref))
	if s == "" {
		return nil, fmt.Errorf("empty image reference")
	}

	if strings.HasPrefix(s, "data:") {
		header, payload, ok := strings.Cut(s, ",")
		if !ok {
			return nil, fmt.Errorf("malformed data URL")
		}
		if !strings.HasSuffix(header, ";base64") {
			return nil, fmt.Errorf("data URL is not base64 encoded")
		}
		s = payload
	}

	if base64.StdEncoding.DecodedLen(len(s)) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}

	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		// signature pads sometimes drop padding
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
		if err != nil {
			return nil, fmt.Errorf("decode base64: %w", err)
		}
	}
	return raw, nil
}

// fitBox scales w x h to fit inside maxW x maxH keeping the aspect ratio
func fitBox(w, h int, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	ratio := float64(w) / float64(h)
	if maxW/maxH > ratio {
		return maxH * ratio, maxH
	}
	return maxW, maxW / ratio
}
