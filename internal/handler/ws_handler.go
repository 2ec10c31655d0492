package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect-backend/internal/config"
	"github.com/educonnect/educonnect-backend/internal/response"
	ws "github.com/educonnect/educonnect-backend/internal/websocket"
)

const maxClientMessageSize = 4096

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams a user's inbox over WebSocket.
type WSHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// MessagingStream godoc
// WS /ws/v1/messaging/stream?token=
// Forwards every message published to the caller's inbox channel. The client
// may send {"action":"ping"} and receives {"event":"pong"}.
func (h *WSHandler) MessagingStream(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("user_id", p.UserID.String()).Logger()

	reqCtx := c.Request.Context()
	pubsub := h.rdb.Subscribe(reqCtx, config.CacheKey.UserInboxChannel(p.UserID))
	defer pubsub.Close()

	// Wait for the subscription to be confirmed before announcing readiness.
	if _, err := pubsub.Receive(reqCtx); err != nil {
		wsLog.Error().Err(err).Msg("Inbox subscribe failed")
		ws.WriteError(conn, string(response.ErrUnavailable))
		return
	}
	ch := pubsub.Channel()

	if err := ws.WriteTyped(conn, ws.ReadyResponse{Event: ws.EventReady, UserID: p.UserID.String()}); err != nil {
		return
	}
	wsLog.Info().Msg("User attached to inbox stream")

	// The reader goroutine owns reads; all writes happen in the loop below.
	actions := make(chan ws.Action, 8)
	done := make(chan struct{})
	go h.readLoop(conn, wsLog, actions, done)

	pingTicker := time.NewTicker(ws.PingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case <-done:
			wsLog.Info().Msg("User detached from inbox stream")
			return

		case <-reqCtx.Done():
			return

		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := ws.WriteRaw(conn, []byte(msg.Payload)); err != nil {
				wsLog.Debug().Err(err).Msg("Forward failed")
				return
			}

		case action := <-actions:
			switch action {
			case ws.ActionPing:
				err = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			default:
				err = ws.WriteError(conn, "unknown action: "+string(action))
			}
			if err != nil {
				return
			}

		case <-pingTicker.C:
			if err := ws.WritePing(conn); err != nil {
				return
			}
		}
	}
}

func (h *WSHandler) readLoop(conn *websocket.Conn, log zerolog.Logger, actions chan<- ws.Action, done chan<- struct{}) {
	defer close(done)
	ws.PrepareRead(conn, maxClientMessageSize)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("Unexpected close")
			}
			return
		}

		var env ws.RequestEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			env.Action = "invalid"
		}
		select {
		case actions <- env.Action:
		default:
			log.Warn().Msg("Dropping client action, writer is busy")
		}
	}
}
