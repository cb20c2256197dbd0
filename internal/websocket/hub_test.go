package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(logger.NewNop())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub
}

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg, ok := <-c.Send():
		require.True(t, ok, "client channel closed")
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
		return nil
	}
}

func TestProviderFeed_ForwardsOnlyProviderMessages(t *testing.T) {
	hub := startHub(t)
	client := NewClient()
	require.True(t, hub.Register(client))

	feed := NewProviderFeed(hub, 1000, logger.NewNop())
	feed.now = func() time.Time { return time.Date(2026, 2, 20, 7, 0, 0, 0, time.UTC) }

	feed.Notify(domain.Notification{Recipient: 1, Template: domain.TemplateApproved})
	feed.Notify(domain.Notification{Recipient: 1000, Lang: "ru", Template: domain.TemplateNewRequest, Params: map[string]string{"booking_id": "3"}})

	var msg struct {
		Type    MessageType         `json:"type"`
		Payload NotificationPayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(receive(t, client), &msg))
	assert.Equal(t, TypeNotification, msg.Type)
	assert.Equal(t, domain.TemplateNewRequest, msg.Payload.Template)
	assert.Equal(t, "3", msg.Payload.Params["booking_id"])
}

func TestHub_UnregisterClosesClient(t *testing.T) {
	hub := startHub(t)
	client := NewClient()
	require.True(t, hub.Register(client))
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Unregister(client)

	select {
	case _, ok := <-client.Send():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("client was not closed")
	}
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_RegisterAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(logger.NewNop())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	assert.False(t, hub.Register(NewClient()))
}
