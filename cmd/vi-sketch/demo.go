package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/vi-sketch/component"
	"github.com/lixenwraith/vi-sketch/config"
	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/document"
	"github.com/lixenwraith/vi-sketch/errors"
	"github.com/lixenwraith/vi-sketch/vmath"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorDim    = lipgloss.Color("240")

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleExpect  = lipgloss.NewStyle().Foreground(colorYellow)
	styleFail    = lipgloss.NewStyle().Foreground(colorRed)
	styleHeader  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	styleCell    = lipgloss.NewStyle().Padding(0, 1)
	styleSummary = lipgloss.NewStyle().MarginTop(1)
)

// construction is the reference document: two points, the line through them,
// their midpoint, a circle about it and a parallel through a fifth point
type construction struct {
	A, B, L, M, C, P, Q core.Entity
	names               map[core.Entity]string
}

// label names an entity for tables and diagrams
func (c *construction) label(d *document.Document) func(core.Entity) string {
	return func(e core.Entity) string {
		name, ok := c.names[e]
		if !ok {
			name = e.String()
		}
		if def, ok := d.World.Definition(e); ok {
			return name + " " + def.Kind().String()
		}
		return name
	}
}

func buildConstruction(d *document.Document) (*construction, error) {
	c := &construction{names: make(map[core.Entity]string)}
	steps := []struct {
		name string
		dst  *core.Entity
		run  func() (core.Entity, error)
	}{
		{"A", &c.A, func() (core.Entity, error) { return d.InsertPoint(vmath.V(0, 0)) }},
		{"B", &c.B, func() (core.Entity, error) { return d.InsertPoint(vmath.V(10, 0)) }},
		{"L", &c.L, func() (core.Entity, error) { return d.InsertLine(component.LineTwoPoints, c.A, c.B) }},
		{"M", &c.M, func() (core.Entity, error) { return d.InsertMidpoint(c.A, c.B) }},
		{"C", &c.C, func() (core.Entity, error) { return d.InsertCircle(c.M, c.B) }},
		{"P", &c.P, func() (core.Entity, error) { return d.InsertPoint(vmath.V(5, 5)) }},
		{"Q", &c.Q, func() (core.Entity, error) { return d.InsertLine(component.LineParallel, c.L, c.P) }},
	}
	for _, s := range steps {
		e, err := s.run()
		if err != nil {
			return nil, fmt.Errorf("insert %s: %w", s.name, err)
		}
		*s.dst = e
		c.names[e] = s.name
	}
	return c, nil
}

func formatVec(v vmath.Vec2) string {
	return fmt.Sprintf("(%.4g,%.4g)", v.X, v.Y)
}

func describeShape(s vmath.Shape) string {
	switch s.Kind {
	case vmath.ShapePoint:
		return formatVec(s.A)
	case vmath.ShapeLine:
		return formatVec(s.A) + "-" + formatVec(s.B)
	case vmath.ShapeCircle:
		return fmt.Sprintf("center %s r %.4g", formatVec(s.A), s.R)
	default:
		return "degenerate"
	}
}

// demoStep is one row of the scenario report
type demoStep struct {
	Command string
	Outcome string
	// Rejected marks a command the scenario expects to fail
	Rejected bool
	Err      error
}

// runScenario drives the reference construction through a move, a rejected
// cycle, a cascading removal and its undo and redo
func runScenario(d *document.Document) (*construction, []demoStep, error) {
	c, err := buildConstruction(d)
	if err != nil {
		return nil, nil, err
	}

	var steps []demoStep
	shapeOf := func(e core.Entity) string {
		s, ok := d.World.Shape(e)
		if !ok {
			return "gone"
		}
		return describeShape(s)
	}
	record := func(cmd, outcome string, err error) {
		steps = append(steps, demoStep{Command: cmd, Outcome: outcome, Err: err})
	}

	record("build A B L M C P Q", fmt.Sprintf("%d entities", d.World.Count()), nil)

	err = d.UpdatePoint(c.A, vmath.V(0, 10))
	record("move A to (0,10)", "L "+shapeOf(c.L)+", M "+shapeOf(c.M), err)

	err = d.Redefine(c.L, component.Parallel(c.Q, c.P))
	steps = append(steps, demoStep{
		Command:  "redefine L parallel to Q",
		Outcome:  string(errors.GetCode(err)),
		Rejected: true,
		Err:      expectCode(err, errors.ErrCodeCycle),
	})

	err = d.Remove(c.A)
	record("remove A", fmt.Sprintf("%d entities left", d.World.Count()), err)

	_, err = d.Undo()
	record("undo", fmt.Sprintf("%d entities, L %s", d.World.Count(), shapeOf(c.L)), err)

	_, err = d.Redo()
	record("redo", fmt.Sprintf("%d entities", d.World.Count()), err)

	_, err = d.Undo()
	record("undo", fmt.Sprintf("%d entities", d.World.Count()), err)

	return c, steps, nil
}

// expectCode turns the wanted rejection into success and anything else into an error
func expectCode(err error, code errors.Code) error {
	if errors.Is(err, code) {
		return nil
	}
	if err == nil {
		return errors.New(errors.ErrCodeInternal, "expected %s, command was accepted", code)
	}
	return err
}

func renderReport(w io.Writer, d *document.Document, c *construction, steps []demoStep) {
	fmt.Fprintln(w, styleTitle.Render("vi-sketch reference scenario"))
	fmt.Fprintln(w, styleDim.Render("document "+d.ID.String()))

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		Headers("#", "Command", "Outcome", "").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		})

	failed := 0
	for i, s := range steps {
		mark := styleOK.Render("✓")
		switch {
		case s.Err != nil:
			mark = styleFail.Render("✗ " + errors.UserMessage(s.Err))
			failed++
		case s.Rejected:
			mark = styleExpect.Render("rejected")
		}
		t.Row(fmt.Sprint(i+1), s.Command, s.Outcome, mark)
	}
	fmt.Fprintln(w, t.Render())

	label := c.label(d)
	entities := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleDim).
		Headers("Entity", "Shape").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		})
	for _, e := range d.World.Entities() {
		s, _ := d.World.Shape(e)
		entities.Row(label(e), describeShape(s))
	}
	fmt.Fprintln(w, entities.Render())

	summary := styleOK.Render(fmt.Sprintf("%d steps, all as expected", len(steps)))
	if failed > 0 {
		summary = styleFail.Render(fmt.Sprintf("%d of %d steps failed", failed, len(steps)))
	}
	fmt.Fprintln(w, styleSummary.Render(summary))
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the reference construction headless and print a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return runDemo(cmd.OutOrStdout(), configFromContext(ctx), loggerFromContext(ctx))
		},
	}
}

func runDemo(w io.Writer, cfg *config.Config, logger *log.Logger) error {
	d := document.New(cfg, logger)
	d.SetCrashHandler(func(err error) {
		logger.Fatal("document diverged", "err", err)
	})

	c, steps, err := runScenario(d)
	if err != nil {
		return err
	}
	renderReport(w, d, c, steps)

	for _, s := range steps {
		if s.Err != nil {
			return fmt.Errorf("scenario step %q: %w", s.Command, s.Err)
		}
	}
	return nil
}
