// Package imaging normalizes uploaded photos to web-safe JPEG.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"

	"blogforge/internal/logger"
)

const minQuality = 40

// Options controls the normalization pass.
type Options struct {
	MaxWidth    int
	JPEGQuality int
	MaxBytes    int
}

// Info reports what the normalization did.
type Info struct {
	OriginalBytes  int
	OptimizedBytes int
	Width          int
	Height         int
	Quality        int
}

// Optimize applies the camera orientation, downsizes anything wider than
// MaxWidth, and re-encodes as JPEG. When MaxBytes is set, the quality steps
// down until the output fits (bounded below by minQuality).
func Optimize(data []byte, opts Options) ([]byte, Info, error) {
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = 1920
	}
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = 80
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, Info{}, fmt.Errorf("decode image: %w", err)
	}

	img = applyOrientation(img, readOrientation(data))

	if img.Bounds().Dx() > opts.MaxWidth {
		img = imaging.Resize(img, opts.MaxWidth, 0, imaging.Lanczos)
	}

	quality := opts.JPEGQuality
	encoded, err := encodeJPEG(img, quality)
	if err != nil {
		return nil, Info{}, err
	}
	for opts.MaxBytes > 0 && len(encoded) > opts.MaxBytes && quality-10 >= minQuality {
		quality -= 10
		if encoded, err = encodeJPEG(img, quality); err != nil {
			return nil, Info{}, err
		}
	}

	bounds := img.Bounds()
	info := Info{
		OriginalBytes:  len(data),
		OptimizedBytes: len(encoded),
		Width:          bounds.Dx(),
		Height:         bounds.Dy(),
		Quality:        quality,
	}
	logger.Debug("image optimized",
		"original_bytes", info.OriginalBytes, "optimized_bytes", info.OptimizedBytes,
		"width", info.Width, "height", info.Height, "quality", quality)
	return encoded, info, nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// readOrientation pulls the EXIF orientation tag; anything unreadable counts
// as the identity orientation.
func readOrientation(data []byte) int {
	meta, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := meta.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
