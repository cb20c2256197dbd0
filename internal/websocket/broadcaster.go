package websocket

import (
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// ProviderFeed forwards notifications addressed to the provider to every connected client.
type ProviderFeed struct {
	hub        *Hub
	providerID int64
	now        func() time.Time
	logger     Logger
}

// NewProviderFeed creates a feed for the given provider.
func NewProviderFeed(hub *Hub, providerID int64, logger Logger) *ProviderFeed {
	return &ProviderFeed{hub: hub, providerID: providerID, now: time.Now, logger: logger}
}

// Notify broadcasts n if it is addressed to the provider.
func (f *ProviderFeed) Notify(n domain.Notification) {
	if n.Recipient != f.providerID {
		return
	}

	data, err := NewMessage(TypeNotification, FromNotification(n), f.now()).JSON()
	if err != nil {
		f.logger.Warn("WebSocket: encode %s: %v", n.Template, err)
		return
	}
	f.hub.Broadcast(data)
}
