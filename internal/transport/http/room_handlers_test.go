package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/boardrelay/internal/core"
	"github.com/vovakirdan/boardrelay/internal/proto"
)

type stubHub struct {
	rooms []core.RoomSummary
	err   error
}

func (s *stubHub) Register(*core.Conn) error                   { return nil }
func (s *stubHub) Submit(context.Context, *core.Command) error { return nil }
func (s *stubHub) Disconnect(*core.Conn)                       {}
func (s *stubHub) Done() <-chan struct{}                       { return nil }
func (s *stubHub) ListRooms(context.Context) ([]core.RoomSummary, error) {
	return s.rooms, s.err
}

func serveRooms(t *testing.T, hub Hub) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)
	logger := zerolog.Nop()
	router := gin.New()
	router.GET("/api/rooms", NewRoomHandlers(hub, &logger).ListRooms)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))
	return rec
}

func TestListRoomsHandler(t *testing.T) {
	rec := serveRooms(t, &stubHub{rooms: []core.RoomSummary{
		{Code: "1234", Players: 1},
		{Code: "5678", Players: 1},
	}})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp RoomsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []proto.RoomInfo{
		{Code: "1234", Players: 1},
		{Code: "5678", Players: 1},
	}, resp.Rooms)
}

func TestListRoomsHandlerEmptyIsArray(t *testing.T) {
	rec := serveRooms(t, &stubHub{})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"rooms":[]}`, rec.Body.String())
}

func TestListRoomsHandlerHubStopped(t *testing.T) {
	rec := serveRooms(t, &stubHub{err: core.ErrHubStopped})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"rooms unavailable"}`, rec.Body.String())
}

func TestListRoomsOverHTTPMatchesWebsocket(t *testing.T) {
	ts := startTestServer(t)
	alice := dial(t, ts)
	public := createRoom(t, alice, false)
	createRoom(t, alice, true)

	resp, err := ts.Client().Get(ts.URL + "/api/rooms")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body RoomsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []proto.RoomInfo{{Code: public, Players: 1}}, body.Rooms)
	assert.Equal(t, listRooms(t, alice), body.Rooms)
}
