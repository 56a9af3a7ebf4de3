package http

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/vovakirdan/boardrelay/internal/core"
	"github.com/vovakirdan/boardrelay/internal/proto"
)

var validate = validator.New()

// inboundToCommand decodes one frame. (nil, nil) means the type is unknown
// and the frame should be ignored.
func inboundToCommand(conn *core.Conn, frame []byte) (*core.Command, error) {
	env, err := proto.Decode(frame)
	if err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	switch env.Type {
	case proto.InboundTypeCreateRoom:
		var msg proto.CreateRoom
		if err := json.Unmarshal(frame, &msg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return &core.Command{
			Kind:    core.CommandCreateRoom,
			Conn:    conn,
			Private: bool(msg.IsPrivate),
		}, nil
	case proto.InboundTypeJoinRoom:
		var msg proto.JoinRoom
		if err := json.Unmarshal(frame, &msg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return &core.Command{
			Kind:       core.CommandJoinRoom,
			Conn:       conn,
			RoomCode:   msg.RoomCode,
			PlayerName: msg.PlayerName,
		}, nil
	case proto.InboundTypeMove:
		var msg proto.Move
		if err := json.Unmarshal(frame, &msg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		if err := validate.Struct(msg); err != nil {
			return nil, fmt.Errorf("validate %s: %w", env.Type, err)
		}
		return &core.Command{
			Kind:     core.CommandMove,
			Conn:     conn,
			RoomCode: msg.RoomCode,
			Move: core.Move{
				From:      core.Square{Row: msg.From.Row, Col: msg.From.Col},
				To:        core.Square{Row: msg.To.Row, Col: msg.To.Col},
				Promotion: msg.Promotion,
			},
		}, nil
	case proto.InboundTypeGetRooms:
		return &core.Command{Kind: core.CommandListRooms, Conn: conn}, nil
	default:
		return nil, nil
	}
}

func outboundFromEvent(event *core.Event) any {
	switch event.Kind {
	case core.EventRoomCreated:
		return proto.RoomCreated{
			Type:      proto.OutboundTypeRoomCreated,
			RoomCode:  event.RoomCode,
			IsPrivate: event.Private,
		}
	case core.EventJoinError:
		msg := core.MsgRoomNotFound
		if event.Error != nil {
			msg = event.Error.Message
		}
		return proto.JoinError{
			Type:    proto.OutboundTypeJoinError,
			Message: msg,
		}
	case core.EventPlayerJoined:
		return proto.PlayerJoined{
			Type:         proto.OutboundTypePlayerJoined,
			OpponentName: event.OpponentName,
			PlayerColor:  string(event.PlayerColor),
		}
	case core.EventRoomJoined:
		return proto.RoomJoined{
			Type:          proto.OutboundTypeRoomJoined,
			RoomCode:      event.RoomCode,
			PlayerName:    event.PlayerName,
			PlayerColor:   string(event.PlayerColor),
			OpponentName:  event.OpponentName,
			OpponentColor: string(event.OpponentColor),
			GameState:     gameStateFrom(event.Game),
		}
	case core.EventMoveMade:
		return proto.MoveMade{
			Type:      proto.OutboundTypeMoveMade,
			From:      squareFrom(event.Move.From),
			To:        squareFrom(event.Move.To),
			Promotion: event.Move.Promotion,
			GameState: gameStateFrom(event.Game),
		}
	case core.EventRoomList:
		return proto.RoomList{
			Type:  proto.OutboundTypeRoomList,
			Rooms: roomInfos(event.Rooms),
		}
	case core.EventOpponentDisconnected:
		return proto.OpponentDisconnected{Type: proto.OutboundTypeOpponentDisconnected}
	default:
		return proto.Envelope{Type: event.Kind.String()}
	}
}

func gameStateFrom(g *core.Game) *proto.GameState {
	if g == nil {
		return nil
	}
	return &proto.GameState{
		Board:    g.Board,
		Turn:     string(g.Turn),
		GameOver: g.GameOver,
	}
}

func squareFrom(s core.Square) proto.Square {
	return proto.Square{Row: s.Row, Col: s.Col}
}

func roomInfos(rooms []core.RoomSummary) []proto.RoomInfo {
	return lo.Map(rooms, func(r core.RoomSummary, _ int) proto.RoomInfo {
		return proto.RoomInfo{
			Code:      r.Code,
			Players:   r.Players,
			IsPrivate: r.Private,
		}
	})
}
