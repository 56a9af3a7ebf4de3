package core

// EventKind is a notification the core emits to connections.
type EventKind int

const (
	// EventRoomCreated confirms a create_room to its sender.
	EventRoomCreated EventKind = iota
	// EventJoinError refuses a join_room.
	EventJoinError
	// EventPlayerJoined tells the white player that black has arrived.
	EventPlayerJoined
	// EventRoomJoined confirms a join_room to its sender.
	EventRoomJoined
	// EventMoveMade is broadcast to both players after a move is applied.
	EventMoveMade
	// EventRoomList answers get_rooms.
	EventRoomList
	// EventOpponentDisconnected tells the remaining player the room is gone.
	EventOpponentDisconnected
)

func (k EventKind) String() string {
	switch k {
	case EventRoomCreated:
		return "room_created"
	case EventJoinError:
		return "join_error"
	case EventPlayerJoined:
		return "player_joined"
	case EventRoomJoined:
		return "room_joined"
	case EventMoveMade:
		return "move_made"
	case EventRoomList:
		return "room_list"
	case EventOpponentDisconnected:
		return "opponent_disconnected"
	default:
		return "unknown"
	}
}

// Event carries everything any outbound message needs. Which fields are set
// depends on Kind. Game is always a snapshot, never the live room state.
type Event struct {
	Kind          EventKind
	RoomCode      string
	Private       bool
	PlayerName    string
	PlayerColor   Color
	OpponentName  string
	OpponentColor Color
	Move          Move
	Game          *Game
	Rooms         []RoomSummary
	Error         *JoinError
}
