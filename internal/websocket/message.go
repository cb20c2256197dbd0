package websocket

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// MessageType identifies the type of a websocket message.
type MessageType string

const (
	TypeNotification MessageType = "notification"
	TypePong         MessageType = "pong"
)

// Message is the websocket envelope.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload,omitempty"`
}

// NewMessage creates a message stamped with now.
func NewMessage(msgType MessageType, payload any, now time.Time) Message {
	return Message{Type: msgType, Timestamp: now.UTC(), Payload: payload}
}

// JSON serializes the message.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// NotificationPayload mirrors a provider notification.
type NotificationPayload struct {
	Template string            `json:"template"`
	Lang     string            `json:"lang"`
	Params   map[string]string `json:"params"`
}

// FromNotification builds the payload for n.
func FromNotification(n domain.Notification) NotificationPayload {
	return NotificationPayload{Template: n.Template, Lang: n.Lang, Params: n.Params}
}
