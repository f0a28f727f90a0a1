package preprocess

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flotta/internal/domain"
)

// A 1x1 lossy WEBP file; WEBP is on the input allow-list, so Prepare must be
// able to decode it.
const tinyWebP = "UklGRiQAAABXRUJQVlA4IBgAAAAwAQCdASoBAAEAAgA0JaQAA3AA/vuUAAA="

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPrepare_CropsBottomBandAsJPEG(t *testing.T) {
	p := New(Options{MaxWidth: 100, BottomFraction: 0.4, JPEGQuality: 85})

	crops, err := p.Prepare(testPNG(t, 100, 200))
	require.NoError(t, err)
	require.Len(t, crops, 1)

	decoded, format, err := image.Decode(bytes.NewReader(crops[0]))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 100, decoded.Bounds().Dx())
	assert.Equal(t, 80, decoded.Bounds().Dy())
}

func TestPrepare_ResizesToMaxWidth(t *testing.T) {
	p := New(Options{MaxWidth: 50, BottomFraction: 1})

	crops, err := p.Prepare(testPNG(t, 200, 100))
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(crops[0]))
	require.NoError(t, err)
	assert.Equal(t, 50, decoded.Bounds().Dx())
	assert.Equal(t, 25, decoded.Bounds().Dy())
}

func TestPrepare_DecodesWebP(t *testing.T) {
	webpBytes, err := base64.StdEncoding.DecodeString(tinyWebP)
	require.NoError(t, err)

	p := New(Options{MaxWidth: 40, BottomFraction: 0.5})
	crops, err := p.Prepare(webpBytes)
	require.NoError(t, err)
	require.Len(t, crops, 1)

	decoded, format, err := image.Decode(bytes.NewReader(crops[0]))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 40, decoded.Bounds().Dx())
	assert.Equal(t, 20, decoded.Bounds().Dy())
}

func TestPrepare_UnreadableBytes(t *testing.T) {
	p := New(DefaultOptions())
	_, err := p.Prepare([]byte("definitely not an image"))
	assert.ErrorIs(t, err, domain.ErrUnreadableImage)
}

func TestNew_FillsZeroValues(t *testing.T) {
	p := New(Options{})
	def := DefaultOptions()
	assert.Equal(t, def.MaxWidth, p.opts.MaxWidth)
	assert.Equal(t, def.BottomFraction, p.opts.BottomFraction)
	assert.Equal(t, def.JPEGQuality, p.opts.JPEGQuality)
}

func TestBottomRegion(t *testing.T) {
	assert.Equal(t, image.Rect(0, 120, 100, 200), bottomRegion(100, 200, 0.4))
	assert.Equal(t, image.Rect(0, 0, 100, 200), bottomRegion(100, 200, 1))
	// tiny fraction still yields a non-empty band
	assert.Equal(t, image.Rect(0, 199, 100, 200), bottomRegion(100, 200, 0.001))
	// out-of-range fractions fall back to the full image
	assert.Equal(t, image.Rect(0, 0, 100, 200), bottomRegion(100, 200, 0))
	assert.Equal(t, image.Rect(0, 0, 100, 200), bottomRegion(100, 200, 1.5))
}
