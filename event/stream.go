package event

import (
	"github.com/lixenwraith/vi-sketch/errors"
)

// Stream is an append-only log of geometry events with named consumer cursors
// Single goroutine: handlers push and the dispatcher drains on the same call path
type Stream struct {
	events  []GeometryEvent
	base    uint64 // Seq of events[0]
	next    uint64
	cursors []*Cursor
}

// NewStream creates an empty stream
func NewStream() *Stream {
	return &Stream{
		events: make([]GeometryEvent, 0, 64),
		base:   1,
		next:   1,
	}
}

// Push appends an event and returns its sequence number
func (s *Stream) Push(ev GeometryEvent) uint64 {
	ev.Seq = s.next
	s.next++
	s.events = append(s.events, ev)
	return ev.Seq
}

// Len returns the number of retained events
func (s *Stream) Len() int {
	return len(s.events)
}

// Head returns the sequence number the next pushed event will get
func (s *Stream) Head() uint64 {
	return s.next
}

// Subscribe registers a consumer that sees every event pushed from now on
// Names are unique among open cursors; a closed cursor's name can be taken again
func (s *Stream) Subscribe(name string) (*Cursor, error) {
	for i, c := range s.cursors {
		if c.name != name {
			continue
		}
		if !c.closed {
			return nil, errors.New(errors.ErrCodeInvalidInput, "consumer %q is already subscribed", name)
		}
		s.cursors = append(s.cursors[:i], s.cursors[i+1:]...)
		break
	}
	c := &Cursor{stream: s, name: name, pos: s.next}
	s.cursors = append(s.cursors, c)
	return c, nil
}

// Compact drops events every open cursor has consumed
func (s *Stream) Compact() int {
	low := s.next
	for _, c := range s.cursors {
		if c.closed {
			continue
		}
		if c.pos < low {
			low = c.pos
		}
	}
	n := int(low - s.base)
	if n <= 0 {
		return 0
	}
	// Copy so the backing array does not pin dropped snapshots
	rest := make([]GeometryEvent, len(s.events)-n, cap(s.events))
	copy(rest, s.events[n:])
	s.events = rest
	s.base = low
	return n
}

// Cursor is one consumer's read position on the stream
type Cursor struct {
	stream *Stream
	name   string
	pos    uint64
	closed bool
}

// Name returns the subscription name
func (c *Cursor) Name() string { return c.name }

// Next returns the next unread event
// A closed cursor returns CHANNEL_CLOSED
func (c *Cursor) Next() (GeometryEvent, bool, error) {
	if c.closed {
		return GeometryEvent{}, false, errors.New(errors.ErrCodeChannelClosed, "consumer %q is gone", c.name)
	}
	if c.pos >= c.stream.next {
		return GeometryEvent{}, false, nil
	}
	ev := c.stream.events[c.pos-c.stream.base]
	c.pos++
	return ev, true, nil
}

// Pending returns the number of unread events
func (c *Cursor) Pending() int {
	if c.closed {
		return 0
	}
	return int(c.stream.next - c.pos)
}

// Close detaches the consumer; further reads fail with CHANNEL_CLOSED
func (c *Cursor) Close() { c.closed = true }

// Closed reports whether Close was called
func (c *Cursor) Closed() bool { return c.closed }
