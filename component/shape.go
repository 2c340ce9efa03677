package component

import "github.com/lixenwraith/vi-sketch/vmath"

// ShapeComponent caches the evaluated geometry in virtual space
type ShapeComponent struct {
	Shape vmath.Shape
}

// ScreenComponent caches the virtual shape projected through the current viewport
type ScreenComponent struct {
	Shape vmath.Shape
}
