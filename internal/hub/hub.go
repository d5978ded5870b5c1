package hub

import (
	"github.com/ksk1130/tsvloggen/internal/model"
)

// Observer receives notifications from the write loop.
type Observer interface {
	// OnLine is called after a line of size bytes (newline included) was written.
	OnLine(line model.Line, size int)
	// OnProgress is called every N lines with the running totals.
	OnProgress(p model.Progress)
}

// Hub broadcasts write-loop notifications to all subscribers.
// Delivery is synchronous and in subscription order; the write loop is
// single-threaded so no locking is done.
type Hub struct {
	subscribers []Observer
}

// New creates a Hub with the given initial subscribers.
func New(observers ...Observer) *Hub {
	h := &Hub{}
	for _, o := range observers {
		h.Subscribe(o)
	}
	return h
}

// Subscribe adds an observer. Nil observers are ignored.
func (h *Hub) Subscribe(o Observer) {
	if o == nil {
		return
	}
	h.subscribers = append(h.subscribers, o)
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	return len(h.subscribers)
}

// OnLine forwards a written line to every subscriber.
func (h *Hub) OnLine(line model.Line, size int) {
	for _, o := range h.subscribers {
		o.OnLine(line, size)
	}
}

// OnProgress forwards a progress notice to every subscriber.
func (h *Hub) OnProgress(p model.Progress) {
	for _, o := range h.subscribers {
		o.OnProgress(p)
	}
}
