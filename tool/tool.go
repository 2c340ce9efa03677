// Package tool is the construction state machine that turns clicks into commands.
//
// Each tool is a state; multi-click tools carry one construction sub-state,
// the first pick, which any tool change discards.
package tool

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/vi-sketch/command"
	"github.com/lixenwraith/vi-sketch/component"
	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/errors"
	"github.com/lixenwraith/vi-sketch/vmath"
)

// Kind is the active tool
type Kind uint8

const (
	Point Kind = iota
	Line
	Circle
	Midpoint
	Parallel
	Perpendicular
	Select
	Hide
)

var kindNames = [...]string{
	Point:         "point",
	Line:          "line",
	Circle:        "circle",
	Midpoint:      "midpoint",
	Parallel:      "parallel",
	Perpendicular: "perpendicular",
	Select:        "select",
	Hide:          "hide",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind resolves a tool name, case-insensitive
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), true
		}
	}
	return 0, false
}

// Handler is the command surface clicks resolve to
type Handler interface {
	InsertPoint(pos vmath.Vec2) (core.Entity, error)
	InsertMidpoint(a, b core.Entity) (core.Entity, error)
	InsertLine(form component.LineForm, a, b core.Entity) (core.Entity, error)
	InsertCircle(center, radiusPoint core.Entity) (core.Entity, error)
	Select(mode command.SelectMode, entities ...core.Entity) error
	Hide(entities ...core.Entity) error
}

// Pick is one resolved click
type Pick struct {
	// Pos is the click position in virtual space
	Pos vmath.Vec2
	// Entity under the cursor, NoEntity on empty space
	Entity core.Entity
	// Kind of Entity's definition
	Kind component.DefKind
	// Additive toggles instead of replacing the selection
	Additive bool
}

// Machine tracks the active tool and its construction sub-state
type Machine struct {
	handler Handler
	tool    Kind
	first   core.Entity
	logger  *log.Logger
}

// NewMachine starts on the point tool
func NewMachine(h Handler, logger *log.Logger) *Machine {
	return &Machine{handler: h, tool: Point, logger: logger.With("system", "tool")}
}

// Tool returns the active tool
func (m *Machine) Tool() Kind { return m.tool }

// First returns the pending first pick of a multi-click construction
func (m *Machine) First() (core.Entity, bool) {
	return m.first, m.first != core.NoEntity
}

// SetTool switches tools and discards any construction in progress
func (m *Machine) SetTool(k Kind) {
	if m.first != core.NoEntity {
		m.logger.Debug("construction discarded", "tool", m.tool, "first", m.first)
	}
	m.tool = k
	m.first = core.NoEntity
}

// Cancel discards the construction in progress
func (m *Machine) Cancel() {
	m.first = core.NoEntity
}

// Click advances the active tool with one pick
// Returns the entity a completed step produced (a placed point, a finished line), NoEntity otherwise
func (m *Machine) Click(p Pick) (core.Entity, error) {
	switch m.tool {
	case Point:
		if p.Entity != core.NoEntity && component.IsPointKind(p.Kind) {
			return p.Entity, nil
		}
		return m.handler.InsertPoint(p.Pos)

	case Line, Circle, Midpoint:
		pt, err := m.pointFor(p)
		if err != nil {
			return core.NoEntity, err
		}
		if m.first == core.NoEntity {
			m.first = pt
			return core.NoEntity, nil
		}
		var e core.Entity
		switch m.tool {
		case Line:
			e, err = m.handler.InsertLine(component.LineTwoPoints, m.first, pt)
		case Circle:
			e, err = m.handler.InsertCircle(m.first, pt)
		default:
			e, err = m.handler.InsertMidpoint(m.first, pt)
		}
		return m.complete(e, err)

	case Parallel, Perpendicular:
		if m.first == core.NoEntity {
			if p.Entity == core.NoEntity || p.Kind != component.DefLine {
				return core.NoEntity, errors.New(errors.ErrCodeInvalidInput, "%s tool needs a line first", m.tool)
			}
			m.first = p.Entity
			return core.NoEntity, nil
		}
		pt, err := m.pointFor(p)
		if err != nil {
			return core.NoEntity, err
		}
		form := component.LineParallel
		if m.tool == Perpendicular {
			form = component.LinePerpendicular
		}
		return m.complete(m.handler.InsertLine(form, m.first, pt))

	case Select:
		mode := command.SelectReplace
		if p.Additive {
			mode = command.SelectToggle
		}
		if p.Entity == core.NoEntity {
			if p.Additive {
				return core.NoEntity, nil
			}
			return core.NoEntity, m.handler.Select(command.SelectReplace)
		}
		return core.NoEntity, m.handler.Select(mode, p.Entity)

	case Hide:
		if p.Entity == core.NoEntity {
			return core.NoEntity, nil
		}
		return core.NoEntity, m.handler.Hide(p.Entity)
	}
	return core.NoEntity, errors.New(errors.ErrCodeInvalidInput, "unknown tool %d", m.tool)
}

// pointFor resolves a click to a point, placing a free point on empty space
func (m *Machine) pointFor(p Pick) (core.Entity, error) {
	if p.Entity != core.NoEntity && component.IsPointKind(p.Kind) {
		return p.Entity, nil
	}
	return m.handler.InsertPoint(p.Pos)
}

// complete resets the sub-state after the second pick
// A stale first pick is dropped; other rejections keep it so the user can pick again
func (m *Machine) complete(e core.Entity, err error) (core.Entity, error) {
	if err != nil {
		if errors.Is(err, errors.ErrCodeMissingEntity) {
			m.first = core.NoEntity
		}
		return core.NoEntity, err
	}
	m.first = core.NoEntity
	return e, nil
}
