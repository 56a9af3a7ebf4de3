package core

// CommandKind describes what the connection wants to do.
type CommandKind int

const (
	// CommandCreateRoom opens a room with the sender as white.
	CommandCreateRoom CommandKind = iota
	// CommandJoinRoom seats the sender as black.
	CommandJoinRoom
	// CommandMove applies a move and relays it to both players.
	CommandMove
	// CommandListRooms asks for joinable rooms.
	CommandListRooms

	commandRegister
	commandDisconnect
)

func (k CommandKind) String() string {
	switch k {
	case CommandCreateRoom:
		return "create_room"
	case CommandJoinRoom:
		return "join_room"
	case CommandMove:
		return "move"
	case CommandListRooms:
		return "get_rooms"
	case commandRegister:
		return "register"
	case commandDisconnect:
		return "disconnect"
	default:
		return "unknown"
	}
}

// Command represents an action requested by a connection.
type Command struct {
	Kind       CommandKind
	Conn       *Conn
	RoomCode   string
	Private    bool
	PlayerName string
	Move       Move

	// set for listings requested outside any connection
	reply chan<- []RoomSummary
}
