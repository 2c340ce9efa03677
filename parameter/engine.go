package parameter

import "time"

// Interactive Loop Timing
const (
	// FrameUpdateInterval is the terminal redraw interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// DragSealDelay ends drag coalescing after the pointer rests this long
	DragSealDelay = 400 * time.Millisecond
)

// Spatial Index Defaults, in screen cells
const (
	// DefaultCellSize is the grid bucket edge length
	DefaultCellSize = 4.0

	// DefaultPickRadius is the hit-test tolerance, must not exceed the cell size
	// so one neighbour ring always covers an exact hit
	DefaultPickRadius = 1.5
)

// Viewport Defaults
const (
	DefaultViewportWidth  = 80
	DefaultViewportHeight = 24
	DefaultViewportScale  = 1.0

	// ZoomStep is the multiplicative scale change per zoom key
	ZoomStep = 1.25
	// MinZoomScale and MaxZoomScale bound interactive zoom
	MinZoomScale = 1.0 / 64
	MaxZoomScale = 64.0
	// PanStep is the virtual distance per pan key at scale 1
	PanStep = 4.0
)

// History Defaults
const (
	// DefaultHistoryLimit caps kept transactions, 0 is unbounded
	DefaultHistoryLimit = 512
)

// Log Rotation
const (
	LogDir      = "logs"
	LogFileName = "vi-sketch.log"
	MaxLogSize  = 10 * 1024 * 1024
)
