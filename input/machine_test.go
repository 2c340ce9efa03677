package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-sketch/errors"
	"github.com/lixenwraith/vi-sketch/tool"
)

func TestKeyIntents(t *testing.T) {
	m := NewMachine(nil)

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want IntentType
		tool tool.Kind
	}{
		{"line tool", tcell.NewEventKey(tcell.KeyRune, 'L', tcell.ModNone), IntentTool, tool.Line},
		{"undo", tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModNone), IntentUndo, 0},
		{"redo", tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), IntentRedo, 0},
		{"reset", tcell.NewEventKey(tcell.KeyCtrlN, 0, tcell.ModCtrl), IntentReset, 0},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), IntentEscape, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Process(tt.ev)
			if got == nil {
				t.Fatal("no intent")
			}
			if got.Type != tt.want || got.Tool != tt.tool {
				t.Errorf("intent = %+v, want type %d tool %v", got, tt.want, tt.tool)
			}
		})
	}

	if got := m.Process(tcell.NewEventKey(tcell.KeyRune, '#', tcell.ModNone)); got != nil {
		t.Errorf("unbound key produced %+v", got)
	}
}

func TestMouseClickDragRelease(t *testing.T) {
	m := NewMachine(nil)

	seq := []struct {
		ev   *tcell.EventMouse
		want IntentType
	}{
		{tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModNone), IntentClick},
		{tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModNone), IntentNone},
		{tcell.NewEventMouse(5, 4, tcell.Button1, tcell.ModNone), IntentDrag},
		{tcell.NewEventMouse(5, 4, tcell.ButtonNone, tcell.ModNone), IntentDragEnd},
		{tcell.NewEventMouse(5, 4, tcell.ButtonNone, tcell.ModNone), IntentNone},
	}
	for i, s := range seq {
		got := m.Process(s.ev)
		if s.want == IntentNone {
			if got != nil {
				t.Errorf("step %d: got %+v, want nothing", i, got)
			}
			continue
		}
		if got == nil || got.Type != s.want {
			t.Fatalf("step %d: got %+v, want %d", i, got, s.want)
		}
	}

	click := m.Process(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModShift))
	if click == nil || !click.Additive {
		t.Errorf("shift click = %+v, want additive", click)
	}
}

func TestLoadKeyConfig(t *testing.T) {
	data := []byte(`
[keys]
L = "none"
l = "tool_line"
plus = "undo"

[special]
"Ctrl-Z" = "undo"
`)
	override, err := LoadKeyConfig(data)
	if err != nil {
		t.Fatal(err)
	}
	kt := MergeKeyTable(DefaultKeyTable(), override)

	if _, ok := kt.Runes['L']; ok {
		t.Error("'none' did not unbind L")
	}
	if e := kt.Runes['l']; e.Intent != IntentTool || e.Tool != tool.Line {
		t.Errorf("l = %+v", e)
	}
	if e := kt.Runes['+']; e.Intent != IntentUndo {
		t.Errorf("+ = %+v", e)
	}
	if e := kt.SpecialKeys[tcell.KeyCtrlZ]; e.Intent != IntentUndo {
		t.Errorf("Ctrl-Z = %+v", e)
	}
	if e := DefaultKeyTable().Runes['L']; e.Tool != tool.Line {
		t.Error("merge mutated the defaults")
	}

	bad := []string{
		"[keys]\nab = \"undo\"",
		"[keys]\nx = \"fly\"",
		"[special]\nNope = \"undo\"",
		"[other]\nx = \"undo\"",
	}
	for _, b := range bad {
		_, err := LoadKeyConfig([]byte(b))
		if err == nil {
			t.Errorf("LoadKeyConfig(%q) accepted", b)
			continue
		}
		if !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("LoadKeyConfig(%q) code = %q, want %q", b, errors.GetCode(err), errors.ErrCodeInvalidConfig)
		}
	}
}
