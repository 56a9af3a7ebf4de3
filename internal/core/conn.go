package core

import (
	"sync/atomic"

	"github.com/google/uuid"
)

const defaultEventBuffer = 32

// Conn is a live transport connection as seen by the core. Identity is the
// pointer itself; ID only exists for logs.
type Conn struct {
	ID     string
	events chan *Event
	closed atomic.Bool
}

// NewConn constructs an open connection whose outbound queue holds buffer events.
func NewConn(buffer int) *Conn {
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}
	return &Conn{
		ID:     uuid.NewString(),
		events: make(chan *Event, buffer),
	}
}

// Events is the outbound stream for the transport write loop. The hub closes
// it after the connection's disconnect has been processed.
func (c *Conn) Events() <-chan *Event {
	return c.events
}

// Open reports whether the connection can still receive events.
func (c *Conn) Open() bool {
	return !c.closed.Load()
}

func (c *Conn) markClosed() bool {
	return c.closed.CompareAndSwap(false, true)
}

// send is fire-and-forget: closed connections and full queues drop the event.
func (c *Conn) send(ev *Event) bool {
	if c == nil || !c.Open() {
		return false
	}
	select {
	case c.events <- ev:
		return true
	default:
		return false
	}
}

// registry tracks connections known to the hub. Owned by the hub goroutine.
type registry map[*Conn]struct{}

func (r registry) add(c *Conn) {
	r[c] = struct{}{}
}

// release forgets c and closes its event stream. Safe to call twice.
func (r registry) release(c *Conn) {
	if _, ok := r[c]; !ok {
		return
	}
	delete(r, c)
	close(c.events)
}
