package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// Client клиент шлюза уведомлений
// Шлюз сам рендерит шаблон на языке получателя и доставляет сообщение в мессенджер
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента шлюза
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет уведомление в шлюз
func (c *Client) Send(ctx context.Context, n domain.Notification) error {
	body, err := json.Marshal(fromNotification(n))
	if err != nil {
		return fmt.Errorf("%w: failed to encode message: %v", ErrInternal, err)
	}

	url := c.baseURL + "/notifications"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	case http.StatusNotFound, http.StatusGone:
		return fmt.Errorf("%w: recipient %d", ErrRecipientUnreachable, n.Recipient)
	default:
		var errResp ErrorResponse
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &errResp) == nil && errResp.Message != "" {
			return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}
}

// LogSender пишет уведомления в лог; используется, когда шлюз не настроен
type LogSender struct {
	log Logger
}

// NewLogSender создает отправителя в лог
func NewLogSender(log Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, n domain.Notification) error {
	s.log.Info("Notification to %d [%s/%s]: %v", n.Recipient, n.Template, n.Lang, n.Params)
	return nil
}
