package render

import "github.com/lixenwraith/vi-sketch/component"

// RGB shares the style component's color so entity styles pass through unchanged
type RGB = component.RGB

// Palette
var (
	RGBBlack      = RGB{R: 0, G: 0, B: 0}
	RgbBackground = RGB{R: 26, G: 27, B: 38}
	RgbPoint      = RGB{R: 224, G: 175, B: 104}
	RgbLine       = RGB{R: 122, G: 162, B: 247}
	RgbCircle     = RGB{R: 158, G: 206, B: 106}
	RgbSelected   = RGB{R: 247, G: 118, B: 142}
	RgbActive     = RGB{R: 255, G: 255, B: 255}
	RgbPending    = RGB{R: 187, G: 154, B: 247}
	RgbStatusFg   = RGB{R: 192, G: 202, B: 245}
	RgbStatusBg   = RGB{R: 41, G: 46, B: 66}
	RgbError      = RGB{R: 219, G: 75, B: 75}
)

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func Blend(dst, src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
	}
}

// Max returns the per-channel maximum, a non-destructive highlight
func Max(dst, src RGB) RGB {
	return RGB{
		R: max(dst.R, src.R),
		G: max(dst.G, src.G),
		B: max(dst.B, src.B),
	}
}
