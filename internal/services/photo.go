package services

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	// Registered decoders for uploaded photos.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"

	"alfredoptarigan/cv-rewriter/internal/config"
)

type PhotoService interface {
	Decode(data []byte) (image.Image, string, error)
	AddBorder(img image.Image, width int) (*image.RGBA, error)
	Preview(img image.Image) *image.RGBA
	EncodePNG(img image.Image) ([]byte, error)
	MaxBorder() int
}

type photoService struct {
	fill         color.RGBA
	maxBorder    int
	previewWidth int
	maxPixels    int
}

func NewPhotoService(cfg config.PhotoConfig) PhotoService {
	return &photoService{
		fill:         cfg.FillColor,
		maxBorder:    cfg.MaxBorder,
		previewWidth: cfg.PreviewWidth,
		maxPixels:    cfg.MaxPixels,
	}
}

func (p *photoService) MaxBorder() int {
	return p.maxBorder
}

// Decode implements PhotoService. The header is read first so that an image
// over the pixel limit is rejected before its pixels are allocated.
func (p *photoService) Decode(data []byte) (image.Image, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrImageDecode, err)
	}

	if p.maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(p.maxPixels) {
		return nil, format, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, p.maxPixels)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrImageDecode, err)
	}
	return img, format, nil
}

// AddBorder implements PhotoService. The result is a new (w+2b)×(h+2b)
// image; img is never modified.
func (p *photoService) AddBorder(img image.Image, width int) (*image.RGBA, error) {
	if width < 0 || width > p.maxBorder {
		return nil, fmt.Errorf("%w: %d (allowed 0-%d)", ErrInvalidBorderWidth, width, p.maxBorder)
	}

	src := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, src.Dx()+2*width, src.Dy()+2*width))

	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: p.fill}, image.Point{}, draw.Src)
	inner := image.Rect(width, width, width+src.Dx(), width+src.Dy())
	draw.Draw(dst, inner, img, src.Min, draw.Src)

	return dst, nil
}

// Preview implements PhotoService. It scales img to the configured preview
// width, keeping the aspect ratio.
func (p *photoService) Preview(img image.Image) *image.RGBA {
	src := img.Bounds()
	w := p.previewWidth
	if w <= 0 {
		w = src.Dx()
	}

	h := src.Dy() * w / max(src.Dx(), 1)
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

// EncodePNG implements PhotoService.
func (p *photoService) EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
