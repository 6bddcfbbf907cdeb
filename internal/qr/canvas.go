package qr

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/qrartisan/qrartisan/internal/design"
)

// applyCanvasShape clips the fully composited raster to the configured
// canvas silhouette. It must run strictly last: earlier stages reference
// unclipped coordinates. For a square canvas this is a no-op.
func applyCanvasShape(img *image.RGBA, shape design.CanvasShape) *image.RGBA {
	if shape != design.CanvasCircle {
		return img
	}

	b := img.Bounds()
	side := b.Dx()

	mask := gg.NewContext(side, b.Dy())
	mask.SetRGB(0, 0, 0)
	mask.DrawCircle(float64(side)/2, float64(b.Dy())/2, float64(side)/2)
	mask.Fill()
	alpha := mask.Image().(*image.RGBA)

	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			ma := uint32(alpha.RGBAAt(x, y).A)
			if ma == 0 {
				continue
			}
			p := img.RGBAAt(x, y)
			if ma == 255 {
				out.SetRGBA(x, y, p)
				continue
			}
			out.SetRGBA(x, y, color.RGBA{
				R: uint8(uint32(p.R) * ma / 255),
				G: uint8(uint32(p.G) * ma / 255),
				B: uint8(uint32(p.B) * ma / 255),
				A: uint8(uint32(p.A) * ma / 255),
			})
		}
	}
	return out
}
