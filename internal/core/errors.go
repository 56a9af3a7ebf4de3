package core

import "errors"

// Wire messages for join failures. Clients match on these strings.
const (
	MsgRoomNotFound = "Room not found"
	MsgRoomFull     = "Room is full"
	MsgOwnRoom      = "Cannot join your own room"
)

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomFull           = errors.New("room is full")
	ErrOwnRoom            = errors.New("already seated in room")
	ErrCodeSpaceExhausted = errors.New("no free room codes")
	ErrOffBoard           = errors.New("square off board")
	ErrEmptySquare        = errors.New("no piece on square")
	ErrHubStopped         = errors.New("hub stopped")
)

// JoinError is reported to a client whose join_room request was refused.
type JoinError struct {
	Err     error
	Message string
}

func (e *JoinError) Error() string {
	return e.Message
}

func (e *JoinError) Unwrap() error {
	return e.Err
}

func joinError(err error) *JoinError {
	switch {
	case errors.Is(err, ErrRoomFull):
		return &JoinError{Err: err, Message: MsgRoomFull}
	case errors.Is(err, ErrOwnRoom):
		return &JoinError{Err: err, Message: MsgOwnRoom}
	default:
		return &JoinError{Err: ErrRoomNotFound, Message: MsgRoomNotFound}
	}
}
