package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// ImageProcessor validates uploaded images and renders display variants
// before they go to object storage.
type ImageProcessor struct {
	MaxSize int64
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: 5 * 1024 * 1024}
}

// ValidateImage rejects files over the size limit or outside the accepted
// formats (jpeg, png, webp, gif).
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("image exceeds %dMB limit", p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("not an image: %w", err)
	}
	switch format {
	case "jpeg", "png", "webp", "gif":
		return nil
	default:
		return fmt.Errorf("image format %s not allowed (jpeg, png, webp, gif)", format)
	}
}

// ProcessImage returns resized JPEG variants keyed by name.
func (p *ImageProcessor) ProcessImage(data []byte) (map[string][]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}
	sizes := map[string]int{"large": 1200, "medium": 600, "thumbnail": 300}
	variants := make(map[string][]byte, len(sizes))
	for name, size := range sizes {
		resized := imaging.Fit(img, size, size, imaging.Lanczos)
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 90}); err != nil {
			return nil, fmt.Errorf("cannot encode %s variant: %w", name, err)
		}
		variants[name] = buf.Bytes()
	}
	return variants, nil
}
