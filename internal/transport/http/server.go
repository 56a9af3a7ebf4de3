package http

import (
	"context"
	stdhttp "net/http"
	"net/url"
	"slices"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/boardrelay/internal/config"
	"github.com/vovakirdan/boardrelay/internal/core"
)

// Hub is the part of core.Hub the transport drives.
type Hub interface {
	Register(c *core.Conn) error
	Submit(ctx context.Context, cmd *core.Command) error
	Disconnect(c *core.Conn)
	ListRooms(ctx context.Context) ([]core.RoomSummary, error)
	Done() <-chan struct{}
}

// WSOptions tunes the WebSocket endpoint.
type WSOptions struct {
	AllowedOrigins    []string
	MaxMessageBytes   int64
	EventBuffer       int
	MessagesPerMinute int
}

// NewServer builds the HTTP server: websocket relay, room listing, health
// probe and an optional static file mount.
func NewServer(hub Hub, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, WSOptions{
		AllowedOrigins:    cfg.AllowedOrigins,
		MaxMessageBytes:   cfg.MaxMessageBytes,
		EventBuffer:       cfg.EventBuffer,
		MessagesPerMinute: cfg.MessagesPerMinute,
	}, logger)))

	rooms := NewRoomHandlers(hub, logger)
	router.GET("/api/rooms", rooms.ListRooms)

	if cfg.StaticDir != "" {
		router.NoRoute(gin.WrapH(stdhttp.FileServer(gin.Dir(cfg.StaticDir, false))))
		logger.Info().Str("dir", cfg.StaticDir).Msg("serving static files")
	}

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{stdhttp.MethodGet},
	}).Handler(router)

	return &stdhttp.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}

// acceptOptions maps configured origins (full URLs or "*") onto the host
// patterns the websocket library checks. Same-origin requests always pass.
func acceptOptions(origins []string) *websocket.AcceptOptions {
	if len(origins) == 0 || slices.Contains(origins, "*") {
		return &websocket.AcceptOptions{InsecureSkipVerify: true}
	}

	patterns := make([]string, 0, len(origins))
	for _, origin := range origins {
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			patterns = append(patterns, origin)
			continue
		}
		patterns = append(patterns, u.Host)
	}
	return &websocket.AcceptOptions{OriginPatterns: patterns}
}
