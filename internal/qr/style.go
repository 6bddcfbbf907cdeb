package qr

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/fogleman/gg"

	"github.com/qrartisan/qrartisan/internal/design"
)

// ParseHex parses a #RRGGBB color, returning fallback for anything it cannot
// parse. The literal "transparent" yields a fully transparent color.
func ParseHex(s string, fallback color.RGBA) color.RGBA {
	if s == "" {
		return fallback
	}
	if strings.EqualFold(s, "transparent") {
		return color.RGBA{}
	}
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return fallback
	}
	r, err1 := strconv.ParseUint(s[0:2], 16, 8)
	g, err2 := strconv.ParseUint(s[2:4], 16, 8)
	b, err3 := strconv.ParseUint(s[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return fallback
	}
	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}
}

// Paint is the resolved paint source for one surface: either a solid color or
// a linear gradient spanning the full canvas corner-to-corner.
type Paint struct {
	Solid    color.RGBA
	Start    color.RGBA
	End      color.RGBA
	Gradient bool
}

// apply sets the fill style of dc to this paint. Gradients always run from
// the canvas origin to its far corner, matching the source styling even when
// padding or clipping narrows the visible area.
func (p Paint) apply(dc *gg.Context, side float64) {
	if !p.Gradient {
		dc.SetColor(p.Solid)
		return
	}
	grad := gg.NewLinearGradient(0, 0, side, side)
	grad.AddColorStop(0, p.Start)
	grad.AddColorStop(1, p.End)
	dc.SetFillStyle(grad)
}

// PixelPaint resolves the paint for data modules. The gradient pair wins over
// the solid color only when both endpoints are set and no image background is
// in use; image backgrounds force solid modules to preserve scan contrast.
func PixelPaint(d design.Design, imageInUse bool) Paint {
	solid := ParseHex(d.PixelColor, color.RGBA{0, 0, 0, 255})
	if d.HasPixelGradient() && !imageInUse {
		return Paint{
			Start:    ParseHex(d.PixelGradientStart, solid),
			End:      ParseHex(d.PixelGradientEnd, solid),
			Gradient: true,
		}
	}
	return Paint{Solid: solid}
}

// BackgroundPaint resolves the paint for the background surface.
func BackgroundPaint(d design.Design) Paint {
	solid := ParseHex(d.BackgroundColor, color.RGBA{255, 255, 255, 255})
	if d.HasBgGradient() {
		return Paint{
			Start:    ParseHex(d.BgGradientStart, solid),
			End:      ParseHex(d.BgGradientEnd, solid),
			Gradient: true,
		}
	}
	return Paint{Solid: solid}
}

// geometry fixes the pixel layout of one rendering pass.
type geometry struct {
	n       int     // modules per side
	side    int     // canvas pixels per side
	padding float64 // quiet zone thickness in pixels
	cell    float64 // pixels per module
}

func newGeometry(n, moduleSize, padding int) geometry {
	return geometry{
		n:       n,
		side:    n*moduleSize + 2*padding,
		padding: float64(padding),
		cell:    float64(moduleSize),
	}
}

// region returns the side length of the QR region inside the quiet zone.
func (g geometry) region() float64 {
	return float64(g.side) - 2*g.padding
}

// cellOrigin returns the top-left pixel of the module cell at (x, y).
func (g geometry) cellOrigin(x, y int) (float64, float64) {
	return g.padding + float64(x)*g.cell, g.padding + float64(y)*g.cell
}
