package design

import "fmt"

// PixelStyle selects the geometry used for ordinary data modules.
type PixelStyle string

const (
	PixelSquare  PixelStyle = "square"
	PixelRounded PixelStyle = "rounded"
	PixelCircle  PixelStyle = "circle"
	PixelDiamond PixelStyle = "diamond"
)

// EyeShape selects the outer silhouette of the finder-pattern frame.
type EyeShape string

const (
	EyeFrame  EyeShape = "frame"
	EyeShield EyeShape = "shield"
	EyeFlower EyeShape = "flower"
)

// EyeStyle selects the pupil and pupil-socket silhouette.
type EyeStyle string

const (
	EyeStyleSquare EyeStyle = "square"
	EyeStyleCircle EyeStyle = "circle"
)

// CanvasShape selects the final clip applied to the composited raster.
type CanvasShape string

const (
	CanvasSquare CanvasShape = "square"
	CanvasCircle CanvasShape = "circle"
)

// ImageFilter selects the compositing filter applied to a background image.
type ImageFilter string

const (
	FilterNone          ImageFilter = "none"
	FilterLight         ImageFilter = "light"
	FilterBlackAndWhite ImageFilter = "black-and-white"
	FilterSketchy       ImageFilter = "sketchy"
)

// Design is one visual preset. It is passed by value into the renderer,
// which never mutates it.
type Design struct {
	ID   int    `json:"id"`
	Name string `json:"name"`

	PixelStyle  PixelStyle  `json:"pixelStyle"`
	EyeShape    EyeShape    `json:"eyeShape"`
	EyeStyle    EyeStyle    `json:"eyeStyle"`
	EyeRadius   float64     `json:"eyeRadius"`
	Padding     int         `json:"padding"`
	CanvasShape CanvasShape `json:"canvasShape"`

	PixelColor      string `json:"pixelColor"`
	BackgroundColor string `json:"backgroundColor"`
	ForegroundColor string `json:"foregroundColor,omitempty"`

	PixelGradientStart string `json:"pixelGradientStart,omitempty"`
	PixelGradientEnd   string `json:"pixelGradientEnd,omitempty"`
	BgGradientStart    string `json:"bgGradientStart,omitempty"`
	BgGradientEnd      string `json:"bgGradientEnd,omitempty"`

	UseImage            bool        `json:"useImage"`
	ImageFilter         ImageFilter `json:"imageFilter,omitempty"`
	ImageBlur           float64     `json:"imageBlur,omitempty"`
	ImageOverlayColor   string      `json:"imageOverlayColor,omitempty"`
	ImageOverlayOpacity float64     `json:"imageOverlayOpacity,omitempty"`

	TransparentBg bool `json:"transparentBg"`

	// LogoSizeFraction reserves a centered square region of the matrix,
	// expressed as a fraction of the matrix side. Zero disables it.
	LogoSizeFraction float64 `json:"logoSizeFraction,omitempty"`

	Template string `json:"template,omitempty"`
	Text     string `json:"text,omitempty"`
}

// Normalize fills zero-valued enum fields with their defaults and clamps
// numeric fields into their valid ranges.
func (d *Design) Normalize() {
	if d.PixelStyle == "" {
		d.PixelStyle = PixelSquare
	}
	if d.EyeShape == "" {
		d.EyeShape = EyeFrame
	}
	if d.EyeStyle == "" {
		d.EyeStyle = EyeStyleSquare
	}
	if d.CanvasShape == "" {
		d.CanvasShape = CanvasSquare
	}
	if d.ImageFilter == "" {
		d.ImageFilter = FilterNone
	}
	if d.PixelColor == "" {
		d.PixelColor = "#000000"
	}
	if d.BackgroundColor == "" {
		d.BackgroundColor = "#FFFFFF"
	}
	if d.Padding < 0 {
		d.Padding = 0
	}
	if d.ImageBlur < 0 {
		d.ImageBlur = 0
	}
	if d.ImageOverlayOpacity < 0 {
		d.ImageOverlayOpacity = 0
	}
	if d.ImageOverlayOpacity > 1 {
		d.ImageOverlayOpacity = 1
	}
	if d.LogoSizeFraction < 0 {
		d.LogoSizeFraction = 0
	}
	if d.LogoSizeFraction > 0.5 {
		d.LogoSizeFraction = 0.5
	}
}

// Validate reports the first invalid enum value, if any.
func (d Design) Validate() error {
	switch d.PixelStyle {
	case PixelSquare, PixelRounded, PixelCircle, PixelDiamond:
	default:
		return fmt.Errorf("unknown pixelStyle %q", d.PixelStyle)
	}
	switch d.EyeShape {
	case EyeFrame, EyeShield, EyeFlower:
	default:
		return fmt.Errorf("unknown eyeShape %q", d.EyeShape)
	}
	switch d.EyeStyle {
	case EyeStyleSquare, EyeStyleCircle:
	default:
		return fmt.Errorf("unknown eyeStyle %q", d.EyeStyle)
	}
	switch d.CanvasShape {
	case CanvasSquare, CanvasCircle:
	default:
		return fmt.Errorf("unknown canvasShape %q", d.CanvasShape)
	}
	switch d.ImageFilter {
	case FilterNone, FilterLight, FilterBlackAndWhite, FilterSketchy:
	default:
		return fmt.Errorf("unknown imageFilter %q", d.ImageFilter)
	}
	return nil
}

// HasPixelGradient reports whether both pixel gradient endpoints are set.
func (d Design) HasPixelGradient() bool {
	return d.PixelGradientStart != "" && d.PixelGradientEnd != ""
}

// HasBgGradient reports whether both background gradient endpoints are set.
func (d Design) HasBgGradient() bool {
	return d.BgGradientStart != "" && d.BgGradientEnd != ""
}
