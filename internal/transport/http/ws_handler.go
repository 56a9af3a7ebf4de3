package http

import (
	"context"
	"errors"
	"io"
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/boardrelay/internal/core"
)

// WSHandler upgrades HTTP connections and bridges them to core.Conn.
type WSHandler struct {
	hub               Hub
	log               *zerolog.Logger
	accept            *websocket.AcceptOptions
	maxMessageBytes   int64
	eventBuffer       int
	messagesPerMinute int
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(hub Hub, opts WSOptions, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{
		hub:               hub,
		log:               logger,
		accept:            acceptOptions(opts.AllowedOrigins),
		maxMessageBytes:   opts.MaxMessageBytes,
		eventBuffer:       opts.EventBuffer,
		messagesPerMinute: opts.MessagesPerMinute,
	}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, h.accept)
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	if h.maxMessageBytes > 0 {
		conn.SetReadLimit(h.maxMessageBytes)
	}

	client := core.NewConn(h.eventBuffer)
	if err := h.hub.Register(client); err != nil {
		h.log.Warn().Err(err).Str("conn_id", client.ID).Msg("ws register failed")
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}
	defer h.hub.Disconnect(client)

	h.log.Debug().Str("conn_id", client.ID).Str("remote", r.RemoteAddr).Msg("ws connected")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != -1 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = "connection error"
			h.log.Warn().Err(err).Str("conn_id", client.ID).Msg("ws connection closed with error")
		}
	}

	h.log.Debug().Str("conn_id", client.ID).Msg("ws disconnected")
	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Conn) error {
	limiter := newRateLimiter(h.messagesPerMinute)

	for {
		_, frame, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		if !limiter.allow() {
			h.log.Debug().Str("conn_id", client.ID).Msg("rate limited frame dropped")
			continue
		}

		// Malformed and unknown frames are dropped without a reply.
		cmd, err := inboundToCommand(client, frame)
		if err != nil {
			h.log.Debug().Err(err).Str("conn_id", client.ID).Msg("malformed frame ignored")
			continue
		}
		if cmd == nil {
			h.log.Debug().Str("conn_id", client.ID).Msg("unknown message type ignored")
			continue
		}

		if err := h.hub.Submit(ctx, cmd); err != nil {
			return err
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Conn) error {
	for {
		select {
		case event, ok := <-client.Events():
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				h.log.Error().Err(err).Str("conn_id", client.ID).Msg("write ws event")
				return err
			}
		case <-h.hub.Done():
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
