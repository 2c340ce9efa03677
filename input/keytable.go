package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-sketch/tool"
)

// KeyEntry describes what a key does
type KeyEntry struct {
	Intent IntentType
	Tool   tool.Kind
	DX, DY int
	Factor float64
}

// KeyTable maps keys to entries
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Delete)
	SpecialKeys map[tcell.Key]KeyEntry
	// Plain rune bindings
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns the default bindings
func DefaultKeyTable() *KeyTable {
	reg := actionRegistry
	return &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC:  reg["quit"],
			tcell.KeyEscape: reg["escape"],
			tcell.KeyCtrlR:  reg["redo"],
			tcell.KeyCtrlS:  reg["toggle_mute"],
			tcell.KeyCtrlN:  reg["reset"],
			tcell.KeyDelete: reg["remove_selected"],
			tcell.KeyLeft:   reg["pan_left"],
			tcell.KeyRight:  reg["pan_right"],
			tcell.KeyUp:     reg["pan_up"],
			tcell.KeyDown:   reg["pan_down"],
		},
		Runes: map[rune]KeyEntry{
			'q': reg["quit"],
			'p': reg["tool_point"],
			'L': reg["tool_line"],
			'c': reg["tool_circle"],
			'm': reg["tool_midpoint"],
			'=': reg["tool_parallel"],
			'|': reg["tool_perpendicular"],
			's': reg["tool_select"],
			'H': reg["tool_hide"],
			'u': reg["undo"],
			'x': reg["remove_selected"],
			'z': reg["hide_selected"],
			'U': reg["unhide_all"],
			'h': reg["pan_left"],
			'l': reg["pan_right"],
			'k': reg["pan_up"],
			'j': reg["pan_down"],
			'+': reg["zoom_in"],
			'-': reg["zoom_out"],
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	out := &KeyTable{
		SpecialKeys: make(map[tcell.Key]KeyEntry, len(kt.SpecialKeys)),
		Runes:       make(map[rune]KeyEntry, len(kt.Runes)),
	}
	for k, v := range kt.SpecialKeys {
		out.SpecialKeys[k] = v
	}
	for k, v := range kt.Runes {
		out.Runes[k] = v
	}
	return out
}
