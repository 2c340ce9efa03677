package system

import (
	"github.com/charmbracelet/log"

	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/engine"
	"github.com/lixenwraith/vi-sketch/event"
	"github.com/lixenwraith/vi-sketch/parameter"
	"github.com/lixenwraith/vi-sketch/spatial"
	"github.com/lixenwraith/vi-sketch/vmath"
)

// SpatialSystem owns the screen-space index
// Hidden entities and degenerate shapes are never indexed
type SpatialSystem struct {
	engine.SystemBase

	index  *spatial.Index
	logger *log.Logger
}

// NewSpatialSystem creates the spatial manager clipped to the current viewport
func NewSpatialSystem(w *engine.World, cellSize float64, logger *log.Logger) *SpatialSystem {
	return &SpatialSystem{
		SystemBase: engine.NewSystemBase(w),
		index:      spatial.New(cellSize, w.Resource.Viewport.Bounds()),
		logger:     logger.With("system", "spatial"),
	}
}

func (s *SpatialSystem) Name() string  { return "spatial" }
func (s *SpatialSystem) Priority() int { return parameter.PrioritySpatial }

// Index exposes the index for read-only queries
func (s *SpatialSystem) Index() *spatial.Index { return s.index }

// Reset empties the index, keeping cell size and bounds
func (s *SpatialSystem) Reset() { s.index.Clear() }

// HandleEvent mirrors screen shape changes into bucket membership
func (s *SpatialSystem) HandleEvent(ev event.GeometryEvent) error {
	switch ev.Kind {
	case event.Inserted:
		if ev.New.Visible() {
			s.index.Insert(ev.Entity, ev.New.Screen)
		}

	case event.Removed:
		s.index.Remove(ev.Entity)

	case event.Updated:
		if !ev.New.ScreenChanged(ev.Old) {
			return nil
		}
		if ev.New.Visible() {
			s.index.Update(ev.Entity, ev.New.Screen)
		} else {
			s.index.Remove(ev.Entity)
		}
	}
	return nil
}

// SetBounds re-clips every indexed shape to a new screen rectangle
func (s *SpatialSystem) SetBounds(bounds vmath.AABB) {
	s.index.SetBounds(bounds)
	s.logger.Debug("bounds changed", "width", bounds.Width(), "height", bounds.Height())
}

// Pick returns the entity under pos within radius
// Candidates come from the index and are tested exactly; points win over curves, then distance
// accept filters candidates, nil accepts all
func (s *SpatialSystem) Pick(pos vmath.Vec2, radius float64, accept func(core.Entity) bool) (core.Entity, bool) {
	best := core.NoEntity
	bestPoint := false
	bestDist := 0.0

	for _, e := range s.index.QueryPoint(pos, radius) {
		if accept != nil && !accept(e) {
			continue
		}
		shape, ok := s.World.Screen(e)
		if !ok || s.World.IsHidden(e) {
			continue
		}
		d := shape.DistTo(pos)
		if d > radius {
			continue
		}
		isPoint := shape.Kind == vmath.ShapePoint
		switch {
		case best == core.NoEntity,
			isPoint && !bestPoint,
			isPoint == bestPoint && d < bestDist:
			best, bestPoint, bestDist = e, isPoint, d
		}
	}
	return best, best != core.NoEntity
}

// Region returns entities whose visible screen extent lies inside rect
func (s *SpatialSystem) Region(rect vmath.AABB) []core.Entity {
	var out []core.Entity
	clip := s.index.Bounds()
	for _, e := range s.index.QueryRegion(rect) {
		shape, ok := s.World.Screen(e)
		if !ok {
			continue
		}
		if box, ok := shape.Bounds(clip); ok && rect.ContainsBox(box) {
			out = append(out, e)
		}
	}
	return out
}
