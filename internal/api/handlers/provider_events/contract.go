package provider_events

import (
	ws "github.com/m04kA/SMC-SlotBooking/internal/websocket"
)

type Hub interface {
	Register(client *ws.Client) bool
	Unregister(client *ws.Client)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
