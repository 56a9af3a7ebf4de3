package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/boardrelay/internal/config"
	"github.com/vovakirdan/boardrelay/internal/core"
	"github.com/vovakirdan/boardrelay/internal/proto"
)

const frameTimeout = 2 * time.Second

func startTestServer(t *testing.T, mutate ...func(*config.Config)) *httptest.Server {
	t.Helper()

	hub := core.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)

	cfg := config.Default()
	for _, m := range mutate {
		m(&cfg)
	}
	logger := zerolog.Nop()
	server := NewServer(hub, &cfg, &logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), frameTimeout)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msg any) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), frameTimeout)
	defer cancel()
	require.NoError(t, wsjson.Write(ctx, conn, msg))
}

func sendRaw(t *testing.T, conn *websocket.Conn, frame string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), frameTimeout)
	defer cancel()
	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte(frame)))
}

// expect reads the next frame, checks its type and decodes it into out.
func expect(t *testing.T, conn *websocket.Conn, typ string, out any) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), frameTimeout)
	defer cancel()

	_, frame, err := conn.Read(ctx)
	require.NoError(t, err, "waiting for %s", typ)

	env, err := proto.Decode(frame)
	require.NoError(t, err)
	require.Equal(t, typ, env.Type, "frame: %s", frame)

	if out != nil {
		require.NoError(t, json.Unmarshal(frame, out))
	}
}

func createRoom(t *testing.T, conn *websocket.Conn, private bool) string {
	t.Helper()

	send(t, conn, map[string]any{"type": proto.InboundTypeCreateRoom, "isPrivate": private})
	var created proto.RoomCreated
	expect(t, conn, proto.OutboundTypeRoomCreated, &created)
	return created.RoomCode
}

func listRooms(t *testing.T, conn *websocket.Conn) []proto.RoomInfo {
	t.Helper()

	send(t, conn, map[string]any{"type": proto.InboundTypeGetRooms})
	var list proto.RoomList
	expect(t, conn, proto.OutboundTypeRoomList, &list)
	return list.Rooms
}

func moveFrame(code string, fromRow, fromCol, toRow, toCol int) map[string]any {
	return map[string]any{
		"type":     proto.InboundTypeMove,
		"roomCode": code,
		"from":     map[string]int{"row": fromRow, "col": fromCol},
		"to":       map[string]int{"row": toRow, "col": toCol},
	}
}

func codes(rooms []proto.RoomInfo) []string {
	out := make([]string, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Code)
	}
	return out
}
