package qr

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	"github.com/fogleman/gg"

	"github.com/qrartisan/qrartisan/internal/design"
)

// DefaultModuleSize is the pixel size of one module when no size is given.
const DefaultModuleSize = 16

// Render composites one design over the module matrix and returns the final
// raster. bg is the decoded background image, or nil when the design uses no
// image or the image failed to load or decode.
//
// Stage order is fixed: background, data modules, eyes, canvas shape. Each
// call allocates a fresh surface; nothing is shared between renders.
func Render(m Matrix, d design.Design, bg image.Image, moduleSize int) (*image.RGBA, error) {
	d.Normalize()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if moduleSize <= 0 {
		moduleSize = DefaultModuleSize
	}

	g := newGeometry(m.Size(), moduleSize, d.Padding)
	imageInUse := d.UseImage && bg != nil

	dc := gg.NewContext(g.side, g.side)
	paintBackground(dc, d, bg, g)
	renderModules(dc, m, d, g, imageInUse)
	renderEyes(dc, d, g, imageInUse)

	return applyCanvasShape(dc.Image().(*image.RGBA), d.CanvasShape), nil
}

// EncodePNGDataURI encodes img as a PNG data URI suitable for direct display
// or template injection.
func EncodePNGDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeImageDataURI decodes a base64 data URI (or bare base64 payload) into
// an image.
func DecodeImageDataURI(s string) (image.Image, error) {
	if i := strings.Index(s, ","); i >= 0 && strings.HasPrefix(s, "data:") {
		s = s[i+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
