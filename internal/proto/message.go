// Package proto defines the JSON messages exchanged over the WebSocket.
// Every message is a flat object carrying a "type" discriminator.
package proto

import "encoding/json"

const (
	InboundTypeCreateRoom = "create_room"
	InboundTypeJoinRoom   = "join_room"
	InboundTypeMove       = "move"
	InboundTypeGetRooms   = "get_rooms"

	OutboundTypeRoomCreated          = "room_created"
	OutboundTypeJoinError            = "join_error"
	OutboundTypePlayerJoined         = "player_joined"
	OutboundTypeRoomJoined           = "room_joined"
	OutboundTypeMoveMade             = "move_made"
	OutboundTypeRoomList             = "room_list"
	OutboundTypeOpponentDisconnected = "opponent_disconnected"
)

// Envelope peeks at the discriminator of an inbound frame.
type Envelope struct {
	Type string `json:"type"`
}

// Decode reads the discriminator, keeping the raw frame for a second pass.
func Decode(frame []byte) (Envelope, error) {
	var env Envelope
	err := json.Unmarshal(frame, &env)
	return env, err
}

// CreateRoom asks for a new room. IsPrivate hides it from listings.
type CreateRoom struct {
	IsPrivate Flag `json:"isPrivate"`
}

// Flag is a boolean that accepts any JSON value: false, 0, "" and null are
// false, everything else is true.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(x)
	case float64:
		*f = x != 0
	case string:
		*f = x != ""
	default:
		*f = true
	}
	return nil
}

// JoinRoom asks to take the black slot of RoomCode.
type JoinRoom struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
}

// Square is a board coordinate, row 0 being black's back rank.
type Square struct {
	Row int `json:"row" validate:"min=0,max=7"`
	Col int `json:"col" validate:"min=0,max=7"`
}

// Move relocates a piece. Promotion is relayed verbatim.
type Move struct {
	RoomCode  string  `json:"roomCode"`
	From      *Square `json:"from" validate:"required"`
	To        *Square `json:"to" validate:"required"`
	Promotion string  `json:"promotion,omitempty"`
}

// GameState is the full board as clients render it.
type GameState struct {
	Board    [8][8]string `json:"board"`
	Turn     string       `json:"turn"`
	GameOver bool         `json:"gameOver"`
}

// RoomCreated confirms create_room.
type RoomCreated struct {
	Type      string `json:"type"`
	RoomCode  string `json:"roomCode"`
	IsPrivate bool   `json:"isPrivate"`
}

// JoinError refuses join_room.
type JoinError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// PlayerJoined tells the creator an opponent arrived.
type PlayerJoined struct {
	Type         string `json:"type"`
	OpponentName string `json:"opponentName"`
	PlayerColor  string `json:"playerColor"`
}

// RoomJoined confirms join_room to the joiner.
type RoomJoined struct {
	Type          string     `json:"type"`
	RoomCode      string     `json:"roomCode"`
	PlayerName    string     `json:"playerName"`
	PlayerColor   string     `json:"playerColor"`
	OpponentName  string     `json:"opponentName"`
	OpponentColor string     `json:"opponentColor"`
	GameState     *GameState `json:"gameState"`
}

// MoveMade is broadcast to both players after a move is applied.
type MoveMade struct {
	Type      string     `json:"type"`
	From      Square     `json:"from"`
	To        Square     `json:"to"`
	Promotion string     `json:"promotion,omitempty"`
	GameState *GameState `json:"gameState"`
}

// RoomInfo is one joinable room.
type RoomInfo struct {
	Code      string `json:"code"`
	Players   int    `json:"players"`
	IsPrivate bool   `json:"isPrivate"`
}

// RoomList answers get_rooms.
type RoomList struct {
	Type  string     `json:"type"`
	Rooms []RoomInfo `json:"rooms"`
}

// OpponentDisconnected tells the remaining player the room was closed.
type OpponentDisconnected struct {
	Type string `json:"type"`
}
