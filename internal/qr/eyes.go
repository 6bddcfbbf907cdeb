package qr

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/qrartisan/qrartisan/internal/design"
)

// renderEyes draws the three finder-pattern glyphs. Each eye is composed on
// its own local surface and then placed onto the canvas, so eye drawing never
// touches pixels outside its 7x7-module block.
func renderEyes(dc *gg.Context, d design.Design, g geometry, imageInUse bool) {
	fg := ParseHex(d.PixelColor, color.RGBA{0, 0, 0, 255})
	bg := ParseHex(d.BackgroundColor, color.RGBA{255, 255, 255, 255})
	carveClear := d.TransparentBg && !imageInUse

	eye := renderEye(d, g.cell, fg, bg, carveClear)

	corners := [3][2]int{{0, 0}, {g.n - 7, 0}, {0, g.n - 7}}
	for _, c := range corners {
		ex := int(math.Round(g.padding + float64(c[0])*g.cell))
		ey := int(math.Round(g.padding + float64(c[1])*g.cell))
		dc.DrawImage(eye, ex, ey)
	}
}

// renderEye builds one eye glyph in three strictly ordered layers: the full
// frame silhouette, a carved pupil socket, and the pupil itself. Carving uses
// a rasterized socket mask instead of boolean path subtraction, which keeps
// the construction to plain fill operations.
func renderEye(d design.Design, cell float64, fg, bg color.RGBA, carveClear bool) *image.RGBA {
	s := cell * 7
	es := int(math.Ceil(s))
	dc := gg.NewContext(es, es)

	// Layer 1: frame silhouette, always solid pixel color. Gradients are
	// not applied to eyes so finder contrast stays scannable.
	dc.SetColor(fg)
	traceEyeFrame(dc, d.EyeShape, s, d.EyeRadius*cell/8)
	dc.Fill()

	// Layer 2: punch the pupil socket out of the frame.
	mask := gg.NewContext(es, es)
	mask.SetRGB(0, 0, 0)
	traceSocket(mask, d, s, cell)
	mask.Fill()
	carve(dc.Image().(*image.RGBA), mask.Image().(*image.RGBA), bg, carveClear)

	// Layer 3: pupil on top of the carved socket.
	dc.SetColor(fg)
	tracePupil(dc, d, s, cell)
	dc.Fill()

	return dc.Image().(*image.RGBA)
}

// traceEyeFrame adds the outer eye silhouette to the current path.
func traceEyeFrame(dc *gg.Context, shape design.EyeShape, s, radius float64) {
	switch shape {
	case design.EyeShield:
		// Apex at top center, straight sides down to 75% height, rounded
		// bottom meeting at center bottom.
		dc.MoveTo(s/2, 0)
		dc.LineTo(s, s*0.18)
		dc.LineTo(s, s*0.75)
		dc.QuadraticTo(s, s, s/2, s)
		dc.QuadraticTo(0, s, 0, s*0.75)
		dc.LineTo(0, s*0.18)
		dc.ClosePath()
	case design.EyeFlower:
		// Radial bloom: eight petals around a solid core.
		cx, cy := s/2, s/2
		core := s * 0.32
		petal := s * 0.18
		dist := s/2 - petal
		for k := 0; k < 8; k++ {
			a := float64(k) * math.Pi / 4
			dc.DrawCircle(cx+math.Cos(a)*dist, cy+math.Sin(a)*dist, petal)
		}
		dc.DrawCircle(cx, cy, core)
	default: // design.EyeFrame
		if radius > s/2 {
			radius = s / 2
		}
		roundedRect(dc, 0, 0, s, s, radius)
	}
}

// roundedRect degrades to a plain rectangle when the radius is negligible.
func roundedRect(dc *gg.Context, x, y, w, h, r float64) {
	if r < 0.5 {
		dc.DrawRectangle(x, y, w, h)
		return
	}
	dc.DrawRoundedRectangle(x, y, w, h, r)
}

// traceSocket adds the pupil-socket silhouette: the pupil footprint grown by
// a one-module margin inside the frame.
func traceSocket(dc *gg.Context, d design.Design, s, cell float64) {
	pupil := cell * 3
	margin := cell
	switch d.EyeStyle {
	case design.EyeStyleCircle:
		dc.DrawCircle(s/2, s/2, pupil/2+margin)
	default: // design.EyeStyleSquare
		side := pupil + 2*margin
		roundedRect(dc, (s-side)/2, (s-side)/2, side, side, d.EyeRadius*cell/16)
	}
}

// tracePupil adds the pupil silhouette, centered, with no margin.
func tracePupil(dc *gg.Context, d design.Design, s, cell float64) {
	pupil := cell * 3
	switch d.EyeStyle {
	case design.EyeStyleCircle:
		dc.DrawCircle(s/2, s/2, pupil/2)
	default: // design.EyeStyleSquare
		roundedRect(dc, (s-pupil)/2, (s-pupil)/2, pupil, pupil, d.EyeRadius*cell/16)
	}
}

// carve applies the socket mask to dst. Where the mask has coverage, dst is
// either blended toward the opaque fill color or, when clear is set, knocked
// out to transparency. Partial coverage at the mask edge blends, so carved
// edges stay antialiased.
func carve(dst, mask *image.RGBA, fill color.RGBA, clear bool) {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			ma := uint32(mask.RGBAAt(x, y).A)
			if ma == 0 {
				continue
			}
			p := dst.RGBAAt(x, y)
			if clear {
				inv := 255 - ma
				dst.SetRGBA(x, y, color.RGBA{
					R: uint8(uint32(p.R) * inv / 255),
					G: uint8(uint32(p.G) * inv / 255),
					B: uint8(uint32(p.B) * inv / 255),
					A: uint8(uint32(p.A) * inv / 255),
				})
				continue
			}
			inv := 255 - ma
			dst.SetRGBA(x, y, color.RGBA{
				R: uint8((uint32(fill.R)*ma + uint32(p.R)*inv) / 255),
				G: uint8((uint32(fill.G)*ma + uint32(p.G)*inv) / 255),
				B: uint8((uint32(fill.B)*ma + uint32(p.B)*inv) / 255),
				A: uint8((255*ma + uint32(p.A)*inv) / 255),
			})
		}
	}
}
