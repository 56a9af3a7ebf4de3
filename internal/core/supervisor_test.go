package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisconnectNotifiesOpponentOnce(t *testing.T) {
	for _, leaver := range []Color{White, Black} {
		t.Run(string(leaver)+" leaves", func(t *testing.T) {
			store := NewStore()
			hub := startHub(t, WithStore(store))
			white := connect(t, hub)
			black := connect(t, hub)
			code := openRoom(t, hub, white, black)

			gone, stays := white, black
			if leaver == Black {
				gone, stays = black, white
			}

			hub.Disconnect(gone)

			ev := mustEvent(t, stays, EventOpponentDisconnected)
			assert.Equal(t, code, ev.RoomCode)
			noEvent(t, hub, stays)

			_, ok := store.Get(code)
			assert.False(t, ok)
			assert.Empty(t, store.RoomsOf(stays))

			// A later disconnect of the survivor has nothing left to clean up.
			hub.Disconnect(stays)
			settle(t, hub)
			assert.Zero(t, store.Len())
		})
	}
}

func TestDisconnectRemovedRoomIsNotJoinable(t *testing.T) {
	hub := startHub(t)
	alice := connect(t, hub)
	bob := connect(t, hub)

	submit(t, hub, &Command{Kind: CommandCreateRoom, Conn: alice})
	code := mustEvent(t, alice, EventRoomCreated).RoomCode

	hub.Disconnect(alice)

	submit(t, hub, &Command{Kind: CommandListRooms, Conn: bob})
	assert.Empty(t, mustEvent(t, bob, EventRoomList).Rooms)

	submit(t, hub, &Command{Kind: CommandJoinRoom, Conn: bob, RoomCode: code})
	assert.Equal(t, MsgRoomNotFound, mustEvent(t, bob, EventJoinError).Error.Message)
}

func TestDisconnectSkipsClosedOpponent(t *testing.T) {
	hub := startHub(t)
	white := connect(t, hub)
	black := connect(t, hub)
	openRoom(t, hub, white, black)

	black.markClosed()
	hub.Disconnect(white)
	settle(t, hub)

	select {
	case ev := <-black.Events():
		t.Fatalf("closed opponent received %+v", ev)
	default:
	}
}

func TestDisconnectCleansEveryRoomOfConn(t *testing.T) {
	store := NewStore()
	hub := startHub(t, WithStore(store))
	alice := connect(t, hub)
	bob := connect(t, hub)
	carol := connect(t, hub)

	withBob := openRoom(t, hub, alice, bob)
	withCarol := openRoom(t, hub, alice, carol)
	submit(t, hub, &Command{Kind: CommandCreateRoom, Conn: alice})
	mustEvent(t, alice, EventRoomCreated)

	settle(t, hub)
	require.ElementsMatch(t, []string{withBob, withCarol}, store.RoomsOf(alice)[:2])
	require.Len(t, store.RoomsOf(alice), 3)

	hub.Disconnect(alice)

	assert.Equal(t, withBob, mustEvent(t, bob, EventOpponentDisconnected).RoomCode)
	assert.Equal(t, withCarol, mustEvent(t, carol, EventOpponentDisconnected).RoomCode)
	noEvent(t, hub, bob)
	noEvent(t, hub, carol)
	assert.Zero(t, store.Len())

	rooms, err := hub.ListRooms(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestDisconnectClosesEventStream(t *testing.T) {
	hub := startHub(t)
	alice := connect(t, hub)

	hub.Disconnect(alice)
	settle(t, hub)

	_, ok := <-alice.Events()
	assert.False(t, ok)
	assert.False(t, alice.Open())
}

func TestDisconnectRunsAfterQueuedCommands(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var gate sync.Once
	hub := startHub(t, WithValidator(MoveValidatorFunc(func(Game, Move) error {
		gate.Do(func() {
			close(entered)
			<-release
		})
		return nil
	})))
	white := connect(t, hub)
	black := connect(t, hub)
	code := openRoom(t, hub, white, black)

	// Park the hub inside white's move so black's move and disconnect queue up.
	submit(t, hub, &Command{Kind: CommandMove, Conn: white, RoomCode: code, Move: Move{From: sq(6, 4), To: sq(4, 4)}})
	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("hub never reached the validator")
	}
	submit(t, hub, &Command{Kind: CommandMove, Conn: black, RoomCode: code, Move: Move{From: sq(1, 4), To: sq(3, 4)}})
	hub.Disconnect(black)
	close(release)

	assert.Equal(t, sq(6, 4), mustEvent(t, white, EventMoveMade).Move.From)
	last := mustEvent(t, white, EventMoveMade)
	assert.Equal(t, sq(1, 4), last.Move.From)
	assert.Equal(t, "p", last.Game.Board[3][4])
	assert.Equal(t, White, last.Game.Turn)
	assert.Equal(t, code, mustEvent(t, white, EventOpponentDisconnected).RoomCode)
	noEvent(t, hub, white)
}
