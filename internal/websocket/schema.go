package websocket

import "github.com/educonnect/educonnect-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError     Event = "error"
	EventReady     Event = "ready"
	EventMessage   Event = "message"
	EventPong      Event = "pong"
	EventHeartbeat Event = "heartbeat"
)

// ReadyResponse is sent once the inbox subscription is live.
type ReadyResponse struct {
	Event  Event  `json:"event"`
	UserID string `json:"userId"`
}

// MessageEvent carries a newly stored chat message to each participant.
type MessageEvent struct {
	Event   Event         `json:"event"`
	Message model.Message `json:"message"`
}

// NewMessageEvent wraps m for delivery.
func NewMessageEvent(m model.Message) MessageEvent {
	return MessageEvent{Event: EventMessage, Message: m}
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
