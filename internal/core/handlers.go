package core

func (h *Hub) createRoom(cmd *Command) {
	room, err := h.store.Create(cmd.Private, cmd.Conn)
	if err != nil {
		h.log.Warn().Err(err).Str("conn_id", cmd.Conn.ID).Msg("create room failed")
		return
	}

	h.log.Info().Str("room", room.Code).Bool("private", room.Private).Str("conn_id", cmd.Conn.ID).Msg("room created")
	cmd.Conn.send(&Event{
		Kind:     EventRoomCreated,
		RoomCode: room.Code,
		Private:  room.Private,
	})
}

func (h *Hub) joinRoom(cmd *Command) {
	room, err := h.store.Seat(cmd.RoomCode, cmd.Conn)
	if err != nil {
		h.log.Debug().Err(err).Str("room", cmd.RoomCode).Str("conn_id", cmd.Conn.ID).Msg("join refused")
		cmd.Conn.send(&Event{
			Kind:  EventJoinError,
			Error: joinError(err),
		})
		return
	}

	h.log.Info().Str("room", room.Code).Str("conn_id", cmd.Conn.ID).Msg("player joined")

	// Both sides see the joiner's own name as opponentName; the creator never
	// sends one.
	room.White.send(&Event{
		Kind:         EventPlayerJoined,
		OpponentName: cmd.PlayerName,
		PlayerColor:  Black,
	})
	cmd.Conn.send(&Event{
		Kind:          EventRoomJoined,
		RoomCode:      room.Code,
		PlayerName:    cmd.PlayerName,
		PlayerColor:   Black,
		OpponentName:  cmd.PlayerName,
		OpponentColor: White,
		Game:          room.Game.Snapshot(),
	})
}

func (h *Hub) move(cmd *Command) {
	room, ok := h.store.Get(cmd.RoomCode)
	if !ok {
		h.log.Debug().Str("room", cmd.RoomCode).Str("conn_id", cmd.Conn.ID).Msg("move for unknown room dropped")
		return
	}

	// The piece on the origin square decides who may move, not Game.Turn.
	// An empty origin belongs to nobody: the move is dropped rather than
	// counted as white's and used to blank the target square.
	owner, ok := room.Game.Owner(cmd.Move.From)
	if !ok || room.Player(owner) != cmd.Conn {
		h.log.Debug().Str("room", room.Code).Str("conn_id", cmd.Conn.ID).Msg("move not owned by sender dropped")
		return
	}

	if h.validator != nil {
		if err := h.validator.ValidateMove(*room.Game.Snapshot(), cmd.Move); err != nil {
			h.log.Debug().Err(err).Str("room", room.Code).Msg("move rejected by validator")
			return
		}
	}

	if err := room.Game.Apply(cmd.Move); err != nil {
		h.log.Debug().Err(err).Str("room", room.Code).Msg("move not applied")
		return
	}

	ev := &Event{
		Kind:     EventMoveMade,
		RoomCode: room.Code,
		Move:     cmd.Move,
		Game:     room.Game.Snapshot(),
	}
	room.White.send(ev)
	room.Black.send(ev)
}

func (h *Hub) listRooms(cmd *Command) {
	cmd.Conn.send(&Event{
		Kind:  EventRoomList,
		Rooms: h.store.ListJoinable(),
	})
}
