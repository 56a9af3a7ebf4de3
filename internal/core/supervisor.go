package core

// disconnect tears down every room c is seated in. The remaining participant
// of each room gets exactly one opponent_disconnected, unless it is closed too.
func (h *Hub) disconnect(c *Conn) {
	c.markClosed()

	for _, code := range h.store.RoomsOf(c) {
		room, ok := h.store.Get(code)
		if !ok {
			continue
		}
		if opponent := room.Opponent(c); opponent != nil {
			opponent.send(&Event{Kind: EventOpponentDisconnected, RoomCode: code})
		}
		h.store.Remove(code)
		h.log.Info().Str("room", code).Str("conn_id", c.ID).Msg("room closed on disconnect")
	}

	h.conns.release(c)
	h.log.Debug().Str("conn_id", c.ID).Int("connections", len(h.conns)).Msg("connection released")
}
