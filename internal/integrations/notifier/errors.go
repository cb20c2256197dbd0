package notifier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("notifier client: invalid response")

	// ErrRecipientUnreachable возвращается, когда шлюз не может доставить сообщение получателю
	ErrRecipientUnreachable = errors.New("notifier client: recipient unreachable")
)
