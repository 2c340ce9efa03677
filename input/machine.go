package input

import (
	"github.com/gdamore/tcell/v2"
)

// Machine translates tcell events, tracking the left button for drags
type Machine struct {
	keys *KeyTable

	pressed      bool
	lastX, lastY int
}

// NewMachine creates a machine over keys, nil for the defaults
func NewMachine(keys *KeyTable) *Machine {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	return &Machine{keys: keys}
}

// Process returns the intent for ev, nil when the event means nothing
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventMouse:
		return m.processMouse(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		return &Intent{Type: IntentResize, X: w, Y: h}
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey) *Intent {
	var entry KeyEntry
	var ok bool
	if ev.Key() == tcell.KeyRune {
		entry, ok = m.keys.Runes[ev.Rune()]
	} else {
		entry, ok = m.keys.SpecialKeys[ev.Key()]
	}
	if !ok || entry.Intent == IntentNone {
		return nil
	}
	return &Intent{Type: entry.Intent, Tool: entry.Tool, DX: entry.DX, DY: entry.DY, Factor: entry.Factor}
}

func (m *Machine) processMouse(ev *tcell.EventMouse) *Intent {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		return &Intent{Type: IntentZoom, X: x, Y: y, Pointer: true, Factor: actionRegistry["zoom_in"].Factor}
	case buttons&tcell.WheelDown != 0:
		return &Intent{Type: IntentZoom, X: x, Y: y, Pointer: true, Factor: actionRegistry["zoom_out"].Factor}

	case buttons&tcell.Button1 != 0:
		if !m.pressed {
			m.pressed = true
			m.lastX, m.lastY = x, y
			additive := ev.Modifiers()&(tcell.ModShift|tcell.ModCtrl) != 0
			return &Intent{Type: IntentClick, X: x, Y: y, Pointer: true, Additive: additive}
		}
		if x == m.lastX && y == m.lastY {
			return nil
		}
		m.lastX, m.lastY = x, y
		return &Intent{Type: IntentDrag, X: x, Y: y, Pointer: true}

	case m.pressed:
		m.pressed = false
		return &Intent{Type: IntentDragEnd, X: x, Y: y, Pointer: true}
	}
	return nil
}
