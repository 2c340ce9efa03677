package engine

import (
	"github.com/lixenwraith/vi-sketch/component"
)

// ComponentStore provides cached pointers to typed component stores
// Built once with the World; pointers remain valid for the document lifetime
type ComponentStore struct {
	// Definitions, at most one per entity
	Points    *Store[component.FreePointComponent]
	Midpoints *Store[component.MidpointComponent]
	Lines     *Store[component.LineComponent]
	Circles   *Store[component.CircleComponent]

	// Computed
	Shapes  *Store[component.ShapeComponent]
	Screens *Store[component.ScreenComponent]

	// Presentation
	Styles *Store[component.StyleComponent]

	// Markers
	Hidden   *Store[component.HiddenComponent]
	Selected *Store[component.SelectedComponent]
	Element  *Store[component.ElementComponent]
}

func newComponentStore() ComponentStore {
	return ComponentStore{
		Points:    NewStore[component.FreePointComponent](),
		Midpoints: NewStore[component.MidpointComponent](),
		Lines:     NewStore[component.LineComponent](),
		Circles:   NewStore[component.CircleComponent](),

		Shapes:  NewStore[component.ShapeComponent](),
		Screens: NewStore[component.ScreenComponent](),

		Styles: NewStore[component.StyleComponent](),

		Hidden:   NewStore[component.HiddenComponent](),
		Selected: NewStore[component.SelectedComponent](),
		Element:  NewStore[component.ElementComponent](),
	}
}

// all lists every store for uniform lifecycle operations
func (c *ComponentStore) all() []AnyStore {
	return []AnyStore{
		c.Points, c.Midpoints, c.Lines, c.Circles,
		c.Shapes, c.Screens,
		c.Styles,
		c.Hidden, c.Selected, c.Element,
	}
}

// definitions lists the stores of which an entity owns at most one
func (c *ComponentStore) definitions() []AnyStore {
	return []AnyStore{c.Points, c.Midpoints, c.Lines, c.Circles}
}
