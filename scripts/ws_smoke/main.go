// Command ws_smoke plays a short scripted session against a running relay:
// one side creates a room, the other joins, white moves, black leaves.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/boardrelay/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:3000/ws", "WebSocket address")
	name := flag.String("name", "tester", "player name used when joining")
	private := flag.Bool("private", false, "create a private room")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	white, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial white: %w", err)
	}
	defer white.Close(websocket.StatusNormalClosure, "bye")

	black, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial black: %w", err)
	}

	if err := wsjson.Write(ctx, white, map[string]any{"type": proto.InboundTypeCreateRoom, "isPrivate": *private}); err != nil {
		return fmt.Errorf("send create_room: %w", err)
	}
	var created proto.RoomCreated
	if err := await(ctx, white, proto.OutboundTypeRoomCreated, &created); err != nil {
		return err
	}
	fmt.Printf("room created: code=%s private=%t\n", created.RoomCode, created.IsPrivate)

	if err := wsjson.Write(ctx, black, map[string]any{"type": proto.InboundTypeJoinRoom, "roomCode": created.RoomCode, "playerName": *name}); err != nil {
		return fmt.Errorf("send join_room: %w", err)
	}
	var joined proto.RoomJoined
	if err := await(ctx, black, proto.OutboundTypeRoomJoined, &joined); err != nil {
		return err
	}
	fmt.Printf("joined as %s against %s\n", joined.PlayerColor, joined.OpponentColor)

	var arrived proto.PlayerJoined
	if err := await(ctx, white, proto.OutboundTypePlayerJoined, &arrived); err != nil {
		return err
	}
	fmt.Printf("opponent arrived: %s\n", arrived.OpponentName)

	move := map[string]any{
		"type":     proto.InboundTypeMove,
		"roomCode": created.RoomCode,
		"from":     proto.Square{Row: 6, Col: 4},
		"to":       proto.Square{Row: 4, Col: 4},
	}
	if err := wsjson.Write(ctx, white, move); err != nil {
		return fmt.Errorf("send move: %w", err)
	}
	var made proto.MoveMade
	if err := await(ctx, black, proto.OutboundTypeMoveMade, &made); err != nil {
		return err
	}
	fmt.Printf("move relayed: %v -> %v, turn=%s\n", made.From, made.To, made.GameState.Turn)

	black.Close(websocket.StatusNormalClosure, "leaving")
	if err := await(ctx, white, proto.OutboundTypeOpponentDisconnected, nil); err != nil {
		return err
	}
	fmt.Println("opponent disconnected, room closed")
	return nil
}

// await reads frames until one of the wanted type arrives.
func await(ctx context.Context, conn *websocket.Conn, typ string, out any) error {
	for {
		_, frame, err := conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("waiting for %s: %w", typ, err)
		}
		env, err := proto.Decode(frame)
		if err != nil {
			return fmt.Errorf("decode frame: %w", err)
		}
		if env.Type == proto.OutboundTypeJoinError {
			return fmt.Errorf("server refused: %s", frame)
		}
		if env.Type != typ {
			fmt.Printf("skipping %s\n", env.Type)
			continue
		}
		if out == nil {
			return nil
		}
		return json.Unmarshal(frame, out)
	}
}
