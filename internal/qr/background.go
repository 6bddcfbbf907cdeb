package qr

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/qrartisan/qrartisan/internal/design"
)

// paintBackground paints the canvas before any module or eye is drawn.
// Priority: full transparency, then an available background image, then
// gradient or solid fill. The quiet zone is always the solid background
// color unless the whole canvas is transparent.
func paintBackground(dc *gg.Context, d design.Design, bg image.Image, g geometry) {
	solid := ParseHex(d.BackgroundColor, color.RGBA{255, 255, 255, 255})
	side := float64(g.side)

	if d.TransparentBg && !d.UseImage {
		// A fresh context is already fully transparent.
		return
	}

	if d.UseImage && bg != nil {
		dc.SetColor(solid)
		dc.Clear()

		region := int(g.region())
		fitted := imaging.Fill(bg, region, region, imaging.Center, imaging.Lanczos)
		filtered := filterImage(fitted, d.ImageFilter, d.ImageBlur)
		dc.DrawImage(filtered, int(g.padding), int(g.padding))

		if d.ImageOverlayOpacity > 0 {
			overlay := ParseHex(d.ImageOverlayColor, color.RGBA{255, 255, 255, 255})
			dc.SetRGBA(
				float64(overlay.R)/255,
				float64(overlay.G)/255,
				float64(overlay.B)/255,
				d.ImageOverlayOpacity,
			)
			dc.DrawRectangle(g.padding, g.padding, g.region(), g.region())
			dc.Fill()
		}
		return
	}

	if d.UseImage {
		// Image was requested but never materialized: solid fallback.
		dc.SetColor(solid)
		dc.Clear()
		return
	}

	// Quiet zone first, then the QR region with its resolved paint.
	dc.SetColor(solid)
	dc.Clear()
	paint := BackgroundPaint(d)
	if paint.Gradient {
		paint.apply(dc, side)
		dc.DrawRectangle(g.padding, g.padding, g.region(), g.region())
		dc.Fill()
	}
}

// filterImage applies the configured compositing filter and blur to a fitted
// background image.
func filterImage(img *image.NRGBA, filter design.ImageFilter, blur float64) image.Image {
	out := img
	switch filter {
	case design.FilterLight:
		out = imaging.AdjustBrightness(out, 25)
	case design.FilterBlackAndWhite:
		out = imaging.Grayscale(out)
	case design.FilterSketchy:
		out = imaging.Grayscale(out)
		out = imaging.AdjustContrast(out, 40)
		out = imaging.AdjustBrightness(out, 15)
	case design.FilterNone:
	}
	if blur > 0 {
		out = imaging.Blur(out, blur)
	}
	return out
}
