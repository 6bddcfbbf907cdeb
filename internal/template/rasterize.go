package template

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"regexp"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

var imageElemRe = regexp.MustCompile(`<image\b[^>]*?>`)

// PreviewPNG rasterizes an artifact template to a PNG preview. The vector
// shapes are rendered with oksvg; embedded image references are not handled
// by that renderer, so the QR raster is composited afterwards into the
// template's image placeholder rectangle.
func PreviewPNG(tpl string, qr image.Image, width int) ([]byte, error) {
	// Ignore mode keeps unsupported SVG features (like the image element
	// itself) from failing the whole preview.
	icon, err := oksvg.ReadIconStream(strings.NewReader(tpl), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse template svg: %w", err)
	}

	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		return nil, fmt.Errorf("template has no usable viewBox")
	}
	if width <= 0 {
		width = int(vw)
	}
	height := int(float64(width) * vh / vw)
	scale := float64(width) / vw

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	icon.SetTarget(0, 0, float64(width), float64(height))
	scanner := rasterx.NewScannerGV(width, height, out, out.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1)

	if qr != nil {
		if rect, ok := imagePlaceholderRect(tpl, scale); ok {
			fitted := imaging.Fit(qr, rect.Dx(), rect.Dy(), imaging.Lanczos)
			pos := image.Pt(
				rect.Min.X+(rect.Dx()-fitted.Bounds().Dx())/2,
				rect.Min.Y+(rect.Dy()-fitted.Bounds().Dy())/2,
			)
			draw.Draw(out, fitted.Bounds().Add(pos), fitted, image.Point{}, draw.Over)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encode preview png: %w", err)
	}
	return buf.Bytes(), nil
}

// imagePlaceholderRect extracts the x/y/width/height of the template's first
// image element, scaled into preview pixels.
func imagePlaceholderRect(tpl string, scale float64) (image.Rectangle, bool) {
	elem := imageElemRe.FindString(tpl)
	if elem == "" {
		return image.Rectangle{}, false
	}
	x := floatAttr(elem, "x", 0)
	y := floatAttr(elem, "y", 0)
	w := floatAttr(elem, "width", 0)
	h := floatAttr(elem, "height", 0)
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(
		int(x*scale), int(y*scale),
		int((x+w)*scale), int((y+h)*scale),
	), true
}

func floatAttr(elem, name string, fallback float64) float64 {
	re := regexp.MustCompile(`\b` + name + `\s*=\s*["']([0-9.]+)["']`)
	m := re.FindStringSubmatch(elem)
	if m == nil {
		return fallback
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return fallback
	}
	return v
}
