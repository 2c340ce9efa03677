package parameter

// Manager Delivery Priorities (lower receives each event first)
// Dependency must settle derived geometry before spatial indexes it, history observes last
const (
	PriorityDependency = 10
	PrioritySpatial    = 20
	PriorityHistory    = 30
)
