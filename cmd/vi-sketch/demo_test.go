package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/vi-sketch/config"
	"github.com/lixenwraith/vi-sketch/document"
	"github.com/lixenwraith/vi-sketch/vmath"
)

func TestScenarioSteps(t *testing.T) {
	d := document.New(config.Default(), log.New(io.Discard))
	d.SetCrashHandler(func(err error) { t.Fatalf("unexpected crash: %v", err) })

	c, steps, err := runScenario(d)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range steps {
		if s.Err != nil {
			t.Errorf("step %q: %v", s.Command, s.Err)
		}
	}

	// The scenario ends undone: the removal is reverted, the move kept
	if d.World.Count() != 7 {
		t.Errorf("count = %d, want 7", d.World.Count())
	}
	shape, ok := d.World.Shape(c.L)
	if !ok || !shape.A.Near(vmath.V(0, 10)) || !shape.B.Near(vmath.V(10, 0)) {
		t.Errorf("L = %+v, want (0,10)-(10,0)", shape)
	}
	if pos, _ := d.World.Position(c.M); !pos.Near(vmath.V(5, 5)) {
		t.Errorf("M = %v, want (5,5)", pos)
	}
}

func TestDemoReport(t *testing.T) {
	var out bytes.Buffer
	if err := runDemo(&out, config.Default(), log.New(io.Discard)); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"remove A", "CYCLE", "all as expected"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("report missing %q:\n%s", want, out.String())
		}
	}
}

func TestGraphCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"graph"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}

	dot := out.String()
	if !strings.HasPrefix(dot, "digraph G {") {
		t.Fatalf("output is not DOT:\n%s", dot)
	}
	for _, want := range []string{"L line", "M midpoint", "Q line", "->"} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q", want)
		}
	}
}

func TestRootRejectsMissingConfig(t *testing.T) {
	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--config", "does-not-exist.toml", "graph"})
	if err := root.Execute(); err == nil {
		t.Error("missing config file accepted")
	}
}
