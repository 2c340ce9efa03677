package engine

import (
	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/vmath"
)

// Resource holds singleton document resources, accessed via World.Resource
type Resource struct {
	Viewport *ViewportResource
	Active   *ActiveResource
	Exit     *ExitResource
}

func newResource() Resource {
	return Resource{
		Viewport: &ViewportResource{Transform: vmath.Identity, Width: 80, Height: 24},
		Active:   &ActiveResource{},
		Exit:     &ExitResource{},
	}
}

// ViewportResource maps virtual space onto the screen
type ViewportResource struct {
	Transform vmath.Transform
	Width     float64
	Height    float64
	// Revision increments on every change so the tick loop can detect reprojection
	Revision uint64
}

// Bounds returns the visible screen rectangle
func (v *ViewportResource) Bounds() vmath.AABB {
	return vmath.AABB{Min: vmath.V(0, 0), Max: vmath.V(v.Width, v.Height)}
}

// Set replaces the transform and size
func (v *ViewportResource) Set(t vmath.Transform, width, height float64) {
	if v.Transform == t && v.Width == width && v.Height == height {
		return
	}
	v.Transform = t
	v.Width = width
	v.Height = height
	v.Revision++
}

// ActiveResource tracks the last point the user created or moved
type ActiveResource struct {
	Point core.Entity
}

// ExitResource is the quit request flag raised by the front-end
type ExitResource struct {
	Requested bool
}
