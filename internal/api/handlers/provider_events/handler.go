package provider_events

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	ws "github.com/m04kA/SMC-SlotBooking/internal/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
)

type Handler struct {
	hub      Hub
	upgrader websocket.Upgrader
	logger   Logger
}

func NewHandler(hub Hub, logger Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// доступ уже проверен middleware ProviderOnly
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Handle GET /api/v1/provider/events
// Поток уведомлений мастера в реальном времени
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("GET /provider/events - Upgrade failed: %v", err)
		return
	}

	client := ws.NewClient()
	if !h.hub.Register(client) {
		h.logger.Warn("GET /provider/events - Hub stopped, closing connection")
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
		_ = conn.Close()
		return
	}

	go h.writePump(conn, client)
	go h.readPump(conn, client)
}

// writePump отправляет сообщения хаба в соединение
func (h *Handler) writePump(conn *websocket.Conn, client *ws.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump читает соединение до закрытия, входящие сообщения игнорируются
func (h *Handler) readPump(conn *websocket.Conn, client *ws.Client) {
	defer func() {
		h.hub.Unregister(client)
		_ = conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("GET /provider/events - Read error: %v", err)
			}
			return
		}
	}
}
