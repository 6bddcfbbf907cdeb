package qr

import (
	"github.com/fogleman/gg"

	"github.com/qrartisan/qrartisan/internal/design"
)

// renderModules draws every dark data module. Eye regions are rendered
// separately, and a configured logo exclusion zone is left empty.
func renderModules(dc *gg.Context, m Matrix, d design.Design, g geometry, imageInUse bool) {
	paint := PixelPaint(d, imageInUse)
	paint.apply(dc, float64(g.side))

	exclStart, exclEnd := logoExclusion(g.n, d.LogoSizeFraction)

	for y := 0; y < g.n; y++ {
		for x := 0; x < g.n; x++ {
			if !m.Dark(x, y) {
				continue
			}
			if IsEyeModule(x, y, g.n) {
				continue
			}
			if x >= exclStart && x < exclEnd && y >= exclStart && y < exclEnd {
				continue
			}
			px, py := g.cellOrigin(x, y)
			traceModule(dc, d.PixelStyle, px, py, g.cell)
		}
	}
	dc.Fill()
}

// logoExclusion returns the half-open module range [start, end) of the
// centered square exclusion zone. A zero fraction yields an empty range.
func logoExclusion(n int, fraction float64) (int, int) {
	if fraction <= 0 {
		return 0, 0
	}
	side := int(float64(n) * fraction)
	if side <= 0 {
		return 0, 0
	}
	start := (n - side) / 2
	return start, start + side
}

// traceModule adds one module cell to the current path.
func traceModule(dc *gg.Context, style design.PixelStyle, x, y, cell float64) {
	switch style {
	case design.PixelRounded:
		dc.DrawRoundedRectangle(x, y, cell, cell, cell*0.25)
	case design.PixelCircle:
		// Slight inset keeps neighboring dots visually separated.
		dc.DrawCircle(x+cell/2, y+cell/2, cell/2*0.9)
	case design.PixelDiamond:
		dc.MoveTo(x+cell/2, y)
		dc.LineTo(x+cell, y+cell/2)
		dc.LineTo(x+cell/2, y+cell)
		dc.LineTo(x, y+cell/2)
		dc.ClosePath()
	default: // design.PixelSquare
		dc.DrawRectangle(x, y, cell, cell)
	}
}
