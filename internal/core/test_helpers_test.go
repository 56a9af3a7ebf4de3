package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T, opts ...Option) *Hub {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	hub := NewHub(opts...)
	go hub.Run(ctx)
	return hub
}

func connect(t *testing.T, hub *Hub) *Conn {
	t.Helper()

	c := NewConn(0)
	require.NoError(t, hub.Register(c))
	return c
}

func submit(t *testing.T, hub *Hub, cmd *Command) {
	t.Helper()
	require.NoError(t, hub.Submit(context.Background(), cmd))
}

// settle waits until the hub has handled everything queued so far.
func settle(t *testing.T, hub *Hub) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := hub.ListRooms(ctx)
	require.NoError(t, err)
}

// mustEvent expects the next event on c to be of kind.
func mustEvent(t *testing.T, c *Conn, kind EventKind) *Event {
	t.Helper()

	select {
	case ev, ok := <-c.Events():
		require.True(t, ok, "event stream closed while waiting for %v", kind)
		require.Equal(t, kind, ev.Kind, "unexpected event %+v", ev)
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("expected event kind %v not received", kind)
		return nil
	}
}

// noEvent asserts nothing is queued for c once the hub is idle.
func noEvent(t *testing.T, hub *Hub, c *Conn) {
	t.Helper()

	settle(t, hub)
	select {
	case ev, ok := <-c.Events():
		if ok {
			t.Fatalf("unexpected event %v: %+v", ev.Kind, ev)
		}
	default:
	}
}

// openRoom creates a room owned by white and seats black in it.
func openRoom(t *testing.T, hub *Hub, white, black *Conn) string {
	t.Helper()

	submit(t, hub, &Command{Kind: CommandCreateRoom, Conn: white})
	code := mustEvent(t, white, EventRoomCreated).RoomCode

	submit(t, hub, &Command{Kind: CommandJoinRoom, Conn: black, RoomCode: code, PlayerName: "Bob"})
	mustEvent(t, white, EventPlayerJoined)
	mustEvent(t, black, EventRoomJoined)
	return code
}

func sq(row, col int) Square {
	return Square{Row: row, Col: col}
}
