package system

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/depgraph"
	"github.com/lixenwraith/vi-sketch/engine"
	"github.com/lixenwraith/vi-sketch/errors"
	"github.com/lixenwraith/vi-sketch/event"
	"github.com/lixenwraith/vi-sketch/parameter"
)

// DependencySystem owns the dependency graph and runs dirty propagation
type DependencySystem struct {
	engine.SystemBase

	graph  *depgraph.Graph
	eval   *Evaluator
	stream *event.Stream
	logger *log.Logger

	lastPass []core.Entity
}

// NewDependencySystem creates the dependency manager
func NewDependencySystem(w *engine.World, stream *event.Stream, eval *Evaluator, logger *log.Logger) *DependencySystem {
	return &DependencySystem{
		SystemBase: engine.NewSystemBase(w),
		graph:      depgraph.New(),
		eval:       eval,
		stream:     stream,
		logger:     logger.With("system", "dependency"),
	}
}

func (s *DependencySystem) Name() string  { return "dependency" }
func (s *DependencySystem) Priority() int { return parameter.PriorityDependency }

// Graph exposes the graph for read-only validation by command handlers
func (s *DependencySystem) Graph() *depgraph.Graph { return s.graph }

// Reset empties the graph after the world was cleared
func (s *DependencySystem) Reset() {
	s.graph.Clear()
	s.lastPass = nil
}

// LastPass returns the recompute order of the most recent propagation
func (s *DependencySystem) LastPass() []core.Entity { return slices.Clone(s.lastPass) }

// HandleEvent keeps graph edges in step with definitions and propagates geometry changes
func (s *DependencySystem) HandleEvent(ev event.GeometryEvent) error {
	switch ev.Kind {
	case event.Inserted:
		if err := s.graph.Add(ev.Entity, ev.New.Parents()); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "graph rejected insert of %v", ev.Entity)
		}
		s.propagate(ev.Entity)

	case event.Removed:
		if affected := s.graph.Remove(ev.Entity); len(affected) > 0 {
			// Removal runs children first, anything left here outlives its parent
			s.logger.Warn("removed entity still had dependents", "entity", ev.Entity, "dependents", affected)
		}

	case event.Updated:
		if ev.Propagated {
			return nil
		}
		if !slices.Equal(ev.Old.Parents(), ev.New.Parents()) {
			if err := s.graph.Add(ev.Entity, ev.New.Parents()); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "graph rejected redefinition of %v", ev.Entity)
			}
		}
		if ev.New.GeometryChanged(ev.Old) {
			s.propagate(ev.Entity)
		}
	}
	return nil
}

// propagate recomputes every transitive dependent of e once, parents first
// Results go back on the stream as propagated updates, which never start another pass
func (s *DependencySystem) propagate(e core.Entity) {
	order := s.graph.TopologicalRecomputeOrder([]core.Entity{e})
	if len(order) == 0 {
		return
	}
	s.lastPass = order

	for _, d := range order {
		old, cur, ok := s.eval.Refresh(d)
		if !ok {
			s.logger.Warn("dependent missing from store", "entity", d)
			continue
		}
		if old == cur {
			continue
		}
		event.EmitPropagated(s.stream, d, old, cur)
	}
	s.logger.Debug("propagated", "from", e, "count", len(order))
}
