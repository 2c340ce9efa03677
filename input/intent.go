// Package input turns terminal events into document intents.
// It is pure translation: no document access, no side effects.
package input

import "github.com/lixenwraith/vi-sketch/tool"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System
	IntentQuit   // Ctrl+C, q
	IntentEscape // cancel construction, clear selection
	IntentToggleMute
	IntentResize

	// Tools
	IntentTool // switch tool, Tool set

	// History
	IntentUndo
	IntentRedo

	// Editing
	IntentRemoveSelected
	IntentHideSelected
	IntentUnhideAll
	IntentReset // clear the whole document

	// Viewport
	IntentPan  // Delta set, in cells
	IntentZoom // Factor set

	// Mouse
	IntentClick   // left press on empty space or an entity
	IntentDrag    // left button held and moved
	IntentDragEnd // left release
)

// Intent is one parsed action
type Intent struct {
	Type IntentType
	Tool tool.Kind

	// Screen cell for mouse intents
	X, Y int
	// Pointer is set when X, Y came from the mouse
	Pointer bool
	// Additive is set when a modifier was held with the click
	Additive bool

	DX, DY int
	Factor float64
}
