package notifier

import "github.com/m04kA/SMC-SlotBooking/internal/domain"

// Message тело запроса к шлюзу уведомлений
type Message struct {
	Recipient int64             `json:"recipient"`
	Lang      string            `json:"lang"`
	Template  string            `json:"template"`
	Params    map[string]string `json:"params"`
}

// ErrorResponse модель ошибки от шлюза
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func fromNotification(n domain.Notification) Message {
	params := n.Params
	if params == nil {
		params = map[string]string{}
	}
	return Message{
		Recipient: n.Recipient,
		Lang:      n.Lang,
		Template:  n.Template,
		Params:    params,
	}
}
