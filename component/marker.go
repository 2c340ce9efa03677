package component

// HiddenComponent tags an entity excluded from rendering and hit-testing
type HiddenComponent struct{}

// SelectedComponent tags an entity in the current selection
type SelectedComponent struct{}

// ElementComponent tags user-visible document geometry
// Entities without it are internal or UI-only (construction previews)
type ElementComponent struct{}
