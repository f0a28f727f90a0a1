// Package preprocess prepares logbook photos for extraction: orientation
// fix, grayscale, contrast normalization, bounded resize, and a bottom-band
// crop where the handwritten table physically sits on the source page.
package preprocess

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"

	// imaging covers JPEG/PNG via image's standard decoders; WEBP is on the
	// input allow-list too and needs its decoder registered explicitly.
	_ "golang.org/x/image/webp"

	"flotta/internal/domain"
)

// Options control the preprocessing pipeline.
type Options struct {
	MaxWidth       int     // output width; smaller images are upscaled
	BottomFraction float64 // height fraction of the bottom crop band
	Contrast       float64 // percentage passed to contrast adjustment
	JPEGQuality    int
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{MaxWidth: 1600, BottomFraction: 0.40, Contrast: 15, JPEGQuality: 85}
}

// Preprocessor converts raw image bytes into JPEG sub-region crops.
type Preprocessor struct {
	opts Options
}

// New creates a Preprocessor, filling zero option values with defaults.
func New(opts Options) *Preprocessor {
	def := DefaultOptions()
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = def.MaxWidth
	}
	if opts.BottomFraction <= 0 || opts.BottomFraction > 1 {
		opts.BottomFraction = def.BottomFraction
	}
	if opts.JPEGQuality <= 0 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = def.JPEGQuality
	}
	return &Preprocessor{opts: opts}
}

// Prepare runs the full pipeline and returns one or more JPEG-encoded crops,
// primary crop first. A decode or crop failure is fatal to the request;
// there is no retry.
func (p *Preprocessor) Prepare(imageBytes []byte) ([][]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableImage, err)
	}

	img = applyOrientation(img, readOrientation(imageBytes))
	img = imaging.Grayscale(img)
	img = imaging.AdjustContrast(img, p.opts.Contrast)
	img = imaging.Resize(img, p.opts.MaxWidth, 0, imaging.Lanczos)

	// Read dimensions back after resizing; a wrong assumed size would
	// silently corrupt the crop window.
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, domain.ErrUnreadableImage
	}

	crop := imaging.Crop(img, bottomRegion(width, height, p.opts.BottomFraction))

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, crop, imaging.JPEG, imaging.JPEGQuality(p.opts.JPEGQuality)); err != nil {
		return nil, fmt.Errorf("encoding crop: %w", err)
	}
	return [][]byte{buf.Bytes()}, nil
}

// bottomRegion computes the crop window covering the bottom fraction of an
// image, clamped to stay inside the bounds. Pure function of the dimensions
// so the codec interaction stays out of geometry tests.
func bottomRegion(width, height int, fraction float64) image.Rectangle {
	if fraction <= 0 || fraction > 1 {
		fraction = 1
	}
	bandHeight := int(float64(height) * fraction)
	if bandHeight < 1 {
		bandHeight = 1
	}
	if bandHeight > height {
		bandHeight = height
	}
	return image.Rect(0, height-bandHeight, width, height)
}

// readOrientation extracts the EXIF orientation tag (1-8). Missing or
// unreadable metadata means "already upright", not an error.
func readOrientation(imageBytes []byte) int {
	meta, err := exif.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return 1
	}
	tag, err := meta.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil || orientation < 1 || orientation > 8 {
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
	}
	return img
}
