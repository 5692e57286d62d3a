package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

// MaxPhotoSide bounds the longest side of a stored profile photo.
const MaxPhotoSide = 512

// MaxPhotoPixels caps the declared size of an upload before its pixels
// are decoded.
const MaxPhotoPixels = 40_000_000

var (
	ErrInvalidImage  = errors.New("invalid image")
	ErrImageTooLarge = fmt.Errorf("%w: too many pixels", ErrInvalidImage)
)

// ToWebP decodes a JPEG, PNG or WebP image, shrinks it to fit
// MaxPhotoSide and re-encodes it as WebP. The header is checked against
// MaxPhotoPixels first so a small file cannot declare a huge canvas.
func ToWebP(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPhotoPixels {
		return nil, ErrImageTooLarge
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, Fit(src, MaxPhotoSide), &webp.Options{Quality: 82}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// Fit scales src down, keeping its aspect ratio, so that neither side
// exceeds max. Smaller images are returned unchanged.
func Fit(src image.Image, max int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= max && h <= max {
		return src
	}

	nw, nh := max, max
	if w > h {
		nh = h * max / w
	} else {
		nw = w * max / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
