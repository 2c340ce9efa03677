package input

import (
	"sort"

	"github.com/lixenwraith/vi-sketch/parameter"
	"github.com/lixenwraith/vi-sketch/tool"
)

// actionRegistry maps canonical action names to entries
// Used by the keymap loader to resolve TOML action strings
var actionRegistry map[string]KeyEntry

func init() {
	actionRegistry = buildActionRegistry()
}

func buildActionRegistry() map[string]KeyEntry {
	reg := map[string]KeyEntry{
		// Unbind sentinel
		"none": {},

		"quit":        {Intent: IntentQuit},
		"escape":      {Intent: IntentEscape},
		"toggle_mute": {Intent: IntentToggleMute},

		"undo": {Intent: IntentUndo},
		"redo": {Intent: IntentRedo},

		"remove_selected": {Intent: IntentRemoveSelected},
		"hide_selected":   {Intent: IntentHideSelected},
		"unhide_all":      {Intent: IntentUnhideAll},
		"reset":           {Intent: IntentReset},

		"pan_left":  {Intent: IntentPan, DX: -1},
		"pan_right": {Intent: IntentPan, DX: 1},
		"pan_up":    {Intent: IntentPan, DY: -1},
		"pan_down":  {Intent: IntentPan, DY: 1},
		"zoom_in":   {Intent: IntentZoom, Factor: parameter.ZoomStep},
		"zoom_out":  {Intent: IntentZoom, Factor: 1 / parameter.ZoomStep},
	}
	for k := tool.Point; k <= tool.Hide; k++ {
		reg["tool_"+k.String()] = KeyEntry{Intent: IntentTool, Tool: k}
	}
	return reg
}

// ActionEntry returns the entry for a named action
func ActionEntry(name string) (KeyEntry, bool) {
	e, ok := actionRegistry[name]
	return e, ok
}

// ActionNames returns every bindable action name, sorted
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
