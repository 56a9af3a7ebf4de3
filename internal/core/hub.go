package core

import (
	"context"

	"github.com/rs/zerolog"
)

const inboxSize = 256

// Hub serializes every room mutation on a single goroutine. Commands and
// disconnects share one FIFO inbox, so a connection's last command is always
// handled before its disconnect.
type Hub struct {
	store     *Store
	conns     registry
	validator MoveValidator
	log       *zerolog.Logger

	inbox chan *Command
	done  chan struct{}
}

// Option customizes a Hub.
type Option func(*Hub)

// WithStore injects the room store.
func WithStore(s *Store) Option {
	return func(h *Hub) {
		h.store = s
	}
}

// WithValidator installs a move legality check.
func WithValidator(v MoveValidator) Option {
	return func(h *Hub) {
		h.validator = v
	}
}

// WithLogger sets the hub logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(h *Hub) {
		h.log = l
	}
}

// NewHub creates a hub. Call Run to start processing.
func NewHub(opts ...Option) *Hub {
	nop := zerolog.Nop()
	h := &Hub{
		conns: make(registry),
		log:   &nop,
		inbox: make(chan *Command, inboxSize),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.store == nil {
		h.store = NewStore()
	}
	return h
}

// Run processes the inbox until ctx is cancelled. On exit every registered
// connection is closed so transport write loops can finish.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()

	for {
		select {
		case cmd := <-h.inbox:
			h.dispatch(cmd)
		case <-ctx.Done():
			return
		}
	}
}

// Register announces a new connection. It fails with ErrHubStopped once the
// hub has exited; the caller should then drop the connection.
func (h *Hub) Register(c *Conn) error {
	return h.enqueue(context.Background(), &Command{Kind: commandRegister, Conn: c})
}

// Submit queues a client command. It blocks until queued, ctx ends or the hub stops.
func (h *Hub) Submit(ctx context.Context, cmd *Command) error {
	return h.enqueue(ctx, cmd)
}

// Disconnect queues room cleanup behind any commands c already submitted.
// Those commands are still handled; c is marked closed only when the cleanup
// runs.
func (h *Hub) Disconnect(c *Conn) {
	h.enqueue(context.Background(), &Command{Kind: commandDisconnect, Conn: c})
}

// Done is closed once the hub has stopped.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// ListRooms returns joinable rooms for callers without a connection.
func (h *Hub) ListRooms(ctx context.Context) ([]RoomSummary, error) {
	reply := make(chan []RoomSummary, 1)
	if err := h.enqueue(ctx, &Command{Kind: CommandListRooms, reply: reply}); err != nil {
		return nil, err
	}
	select {
	case rooms := <-reply:
		return rooms, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-h.done:
		return nil, ErrHubStopped
	}
}

func (h *Hub) enqueue(ctx context.Context, cmd *Command) error {
	select {
	case <-h.done:
		return ErrHubStopped
	default:
	}

	select {
	case h.inbox <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-h.done:
		return ErrHubStopped
	}
}

func (h *Hub) dispatch(cmd *Command) {
	switch cmd.Kind {
	case commandRegister:
		h.conns.add(cmd.Conn)
		h.log.Debug().Str("conn_id", cmd.Conn.ID).Int("connections", len(h.conns)).Msg("connection registered")
		return
	case commandDisconnect:
		h.disconnect(cmd.Conn)
		return
	}

	if cmd.reply != nil {
		cmd.reply <- h.store.ListJoinable()
		return
	}
	if cmd.Conn == nil || !cmd.Conn.Open() {
		return
	}

	switch cmd.Kind {
	case CommandCreateRoom:
		h.createRoom(cmd)
	case CommandJoinRoom:
		h.joinRoom(cmd)
	case CommandMove:
		h.move(cmd)
	case CommandListRooms:
		h.listRooms(cmd)
	default:
		h.log.Debug().Str("conn_id", cmd.Conn.ID).Int("kind", int(cmd.Kind)).Msg("unknown command ignored")
	}
}

// shutdown stops intake, then closes every known connection including those
// whose registration was still queued.
func (h *Hub) shutdown() {
	close(h.done)

	for c := range h.conns {
		c.markClosed()
		h.conns.release(c)
	}
	for {
		select {
		case cmd := <-h.inbox:
			// Registered but never dispatched: close it the same way.
			if cmd.Kind == commandRegister {
				h.conns.add(cmd.Conn)
				cmd.Conn.markClosed()
				h.conns.release(cmd.Conn)
			}
		default:
			return
		}
	}
}
