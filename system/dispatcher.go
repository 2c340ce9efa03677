package system

import (
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/vi-sketch/engine"
	"github.com/lixenwraith/vi-sketch/errors"
	"github.com/lixenwraith/vi-sketch/event"
)

type subscription struct {
	system engine.System
	cursor *event.Cursor
}

// Dispatcher fans the geometry stream out to the managers
// Each event reaches every manager in priority order before the next event is delivered;
// events appended while delivering are delivered in the same drain
type Dispatcher struct {
	stream *event.Stream
	subs   []subscription
	logger *log.Logger
}

// NewDispatcher subscribes each system to stream under its name
// Panics when two systems share a name
func NewDispatcher(stream *event.Stream, logger *log.Logger, systems ...engine.System) *Dispatcher {
	sorted := make([]engine.System, len(systems))
	copy(sorted, systems)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})

	d := &Dispatcher{stream: stream, logger: logger.With("system", "dispatcher")}
	for _, s := range sorted {
		cursor, err := stream.Subscribe(s.Name())
		if err != nil {
			panic(err)
		}
		d.subs = append(d.subs, subscription{system: s, cursor: cursor})
	}
	return d
}

// Cursor returns the cursor of a registered system
func (d *Dispatcher) Cursor(name string) *event.Cursor {
	for _, sub := range d.subs {
		if sub.system.Name() == name {
			return sub.cursor
		}
	}
	return nil
}

// Drain delivers every pending event and returns how many were delivered
// A closed manager cursor yields CHANNEL_CLOSED; the document cannot stay consistent after it
func (d *Dispatcher) Drain() (int, error) {
	if len(d.subs) == 0 {
		return 0, nil
	}

	delivered := 0
	for {
		for _, sub := range d.subs {
			if sub.cursor.Closed() {
				return delivered, errors.New(errors.ErrCodeChannelClosed, "%s manager stopped consuming events", sub.system.Name())
			}
		}
		if d.subs[0].cursor.Pending() == 0 {
			break
		}

		var ev event.GeometryEvent
		for _, sub := range d.subs {
			var ok bool
			var err error
			ev, ok, err = sub.cursor.Next()
			if err != nil {
				return delivered, err
			}
			if !ok {
				return delivered, errors.New(errors.ErrCodeInternal, "%s cursor out of step", sub.system.Name())
			}
			if err := sub.system.HandleEvent(ev); err != nil {
				return delivered, err
			}
		}
		d.logger.Debug("delivered", "seq", ev.Seq, "kind", ev.Kind, "entity", ev.Entity, "origin", ev.Origin)
		delivered++
	}

	d.stream.Compact()
	return delivered, nil
}
