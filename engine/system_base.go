package engine

import (
	"github.com/lixenwraith/vi-sketch/event"
)

// System is a data manager fed one geometry event at a time
// Each system owns one derived structure and mutates only that structure
type System interface {
	// Name identifies the system's stream cursor
	Name() string
	// Priority orders delivery, lower values receive each event first
	Priority() int
	// HandleEvent must fully apply ev before returning
	HandleEvent(ev event.GeometryEvent) error
}

// SystemBase provides common dependency for all system
// Embed in system struct to eliminate boilerplate
type SystemBase struct {
	World     *World
	Resource  Resource
	Component ComponentStore
}

// NewSystemBase initializes base dependency from world
// Call once in system constructor
func NewSystemBase(w *World) SystemBase {
	return SystemBase{
		World:     w,
		Resource:  w.Resource,
		Component: w.Components,
	}
}
