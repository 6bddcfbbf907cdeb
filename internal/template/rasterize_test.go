package template

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const previewTemplate = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" width="100" height="100">
  <rect x="0" y="0" width="100" height="100" fill="#2244AA"/>
  <image x="25" y="25" width="50" height="50" href="placeholder"/>
</svg>`

func TestPreviewPNG(t *testing.T) {
	qr := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for i := 0; i < len(qr.Pix); i += 4 {
		qr.Pix[i] = 255
		qr.Pix[i+3] = 255
	}

	data, err := PreviewPNG(previewTemplate, qr, 200)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 200, img.Bounds().Dx())
	require.Equal(t, 200, img.Bounds().Dy())

	// Template backdrop outside the placeholder.
	r, _, b, a := img.At(10, 10).RGBA()
	assert.Equal(t, uint32(0xffff), a)
	assert.Greater(t, b, r, "backdrop should be blue")

	// QR raster composited into the placeholder rectangle (25..75 scaled x2).
	r, _, _, a = img.At(100, 100).RGBA()
	assert.Equal(t, uint32(0xffff), a)
	assert.Greater(t, r, uint32(0x8000), "placeholder should show the red raster")
}

func TestPreviewPNGWithoutPlaceholderStillRenders(t *testing.T) {
	tpl := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 50 50"><rect width="50" height="50" fill="#000"/></svg>`
	data, err := PreviewPNG(tpl, image.NewRGBA(image.Rect(0, 0, 8, 8)), 100)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
}

func TestPreviewPNGRejectsInvalidSVG(t *testing.T) {
	_, err := PreviewPNG("not svg at all", image.NewRGBA(image.Rect(0, 0, 4, 4)), 100)
	require.Error(t, err)
}

func TestImagePlaceholderRect(t *testing.T) {
	rect, ok := imagePlaceholderRect(previewTemplate, 2)
	require.True(t, ok)
	assert.Equal(t, image.Rect(50, 50, 150, 150), rect)

	_, ok = imagePlaceholderRect(`<svg></svg>`, 1)
	assert.False(t, ok)

	_, ok = imagePlaceholderRect(`<svg><image href="p"/></svg>`, 1)
	assert.False(t, ok, "placeholder without dimensions is unusable")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
