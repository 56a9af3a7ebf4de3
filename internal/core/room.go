package core

// Room pairs a white (creator) and black (joiner) connection around one game.
type Room struct {
	Code    string
	White   *Conn
	Black   *Conn
	Game    *Game
	Private bool
}

// NewRoom constructs a room with owner in the white slot and a fresh game.
func NewRoom(code string, owner *Conn, private bool) *Room {
	return &Room{
		Code:    code,
		White:   owner,
		Game:    NewGame(),
		Private: private,
	}
}

// Player returns the connection seated for color, or nil.
func (r *Room) Player(color Color) *Conn {
	if color == White {
		return r.White
	}
	return r.Black
}

// ColorOf reports which slot c occupies.
func (r *Room) ColorOf(c *Conn) (Color, bool) {
	switch {
	case c == nil:
		return "", false
	case r.White == c:
		return White, true
	case r.Black == c:
		return Black, true
	default:
		return "", false
	}
}

// Opponent returns the participant facing c, or nil when c is alone or absent.
func (r *Room) Opponent(c *Conn) *Conn {
	color, ok := r.ColorOf(c)
	if !ok {
		return nil
	}
	return r.Player(color.Opponent())
}

// Players counts occupied slots.
func (r *Room) Players() int {
	n := 0
	if r.White != nil {
		n++
	}
	if r.Black != nil {
		n++
	}
	return n
}

// Joinable reports whether the room shows up in listings.
func (r *Room) Joinable() bool {
	return !r.Private && r.Black == nil
}

// Summary is the listing view of the room.
func (r *Room) Summary() RoomSummary {
	return RoomSummary{
		Code:    r.Code,
		Players: r.Players(),
		Private: r.Private,
	}
}

// RoomSummary is one entry of a room listing.
type RoomSummary struct {
	Code    string
	Players int
	Private bool
}
