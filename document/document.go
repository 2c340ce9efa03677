// Package document wires the entity store, event stream, data managers,
// command handlers and tool machine into one editable construction.
//
// Every mutating call runs the command, then drains the event stream so the
// dependency graph, spatial index and history are in step before it returns.
package document

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lixenwraith/vi-sketch/command"
	"github.com/lixenwraith/vi-sketch/config"
	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/engine"
	"github.com/lixenwraith/vi-sketch/errors"
	"github.com/lixenwraith/vi-sketch/event"
	"github.com/lixenwraith/vi-sketch/system"
	"github.com/lixenwraith/vi-sketch/tool"
)

// Feedback receives audible or visual confirmation of command outcomes
type Feedback interface {
	PlayConfirm()
	PlayError()
}

type silent struct{}

func (silent) PlayConfirm() {}
func (silent) PlayError()   {}

// Document holds one construction and everything that keeps it consistent
type Document struct {
	// ===== Immutable After Init =====

	ID     uuid.UUID
	World  *engine.World
	Stream *event.Stream

	Eval       *system.Evaluator
	Dependency *system.DependencySystem
	Spatial    *system.SpatialSystem
	History    *system.HistorySystem
	Dispatcher *system.Dispatcher

	Handlers *command.Handlers
	Tool     *tool.Machine

	// ===== Settings =====

	pickRadius float64
	logger     *log.Logger
	feedback   Feedback
	crash      func(error)

	// viewport revision the spatial index and screen shapes were last projected for
	projected uint64
}

// New builds an empty document from cfg
func New(cfg *config.Config, logger *log.Logger) *Document {
	if cfg == nil {
		cfg = config.Default()
	}

	w := engine.NewWorld()
	w.Resource.Viewport.Set(cfg.Transform(), cfg.Viewport.Width, cfg.Viewport.Height)

	stream := event.NewStream()
	eval := system.NewEvaluator(w)

	d := &Document{
		ID:         uuid.New(),
		World:      w,
		Stream:     stream,
		Eval:       eval,
		Dependency: system.NewDependencySystem(w, stream, eval, logger),
		Spatial:    system.NewSpatialSystem(w, cfg.Grid.CellSize, logger),
		History:    system.NewHistorySystem(w, cfg.History.Limit, logger),
		pickRadius: cfg.Pick.Radius,
		logger:     logger.With("system", "document"),
		feedback:   silent{},
	}
	d.projected = w.Resource.Viewport.Revision
	d.crash = func(err error) { panic(err) }

	d.Dispatcher = system.NewDispatcher(stream, logger, d.Dependency, d.Spatial, d.History)
	d.Handlers = command.New(w, stream, eval, d.Dependency.Graph(), logger)
	d.Tool = tool.NewMachine(d, logger)
	return d
}

// SetCrashHandler replaces the fatal error path; the default panics
// The handler must not return control to the document
func (d *Document) SetCrashHandler(fn func(error)) {
	if fn != nil {
		d.crash = fn
	}
}

// SetFeedback installs command outcome feedback
func (d *Document) SetFeedback(f Feedback) {
	if f == nil {
		f = silent{}
	}
	d.feedback = f
}

// sync drains the stream into the managers
// Any failure here means the derived structures diverged from the store
func (d *Document) sync() error {
	if _, err := d.Dispatcher.Drain(); err != nil {
		d.logger.Error("event delivery failed", "err", err)
		d.crash(err)
		return err
	}
	return nil
}

// done settles a command: validation errors are reported, accepted commands synced
func (d *Document) done(err error) error {
	if err != nil {
		d.feedback.PlayError()
		return err
	}
	return d.sync()
}

// LastActivePoint returns the point most recently created or moved
func (d *Document) LastActivePoint() (core.Entity, bool) {
	e := d.World.Resource.Active.Point
	if e == core.NoEntity || !d.World.Alive(e) {
		return core.NoEntity, false
	}
	return e, true
}

// RequestExit raises the finish flag the outer loop polls
func (d *Document) RequestExit() { d.World.Resource.Exit.Requested = true }

// ExitRequested reports the finish flag
func (d *Document) ExitRequested() bool { return d.World.Resource.Exit.Requested }

// Subscribe opens a stream cursor for an outside consumer such as the renderer
// An open cursor pins unread events; read it every frame or close it
// Manager names and names of open cursors are refused with INVALID_INPUT
func (d *Document) Subscribe(name string) (*event.Cursor, error) {
	if d.Dispatcher.Cursor(name) != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "consumer name %q is reserved", name)
	}
	return d.Stream.Subscribe(name)
}
