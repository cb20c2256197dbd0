package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
)

type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *countingMetrics) Notification(template, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[template+"/"+result]++
}

func (m *countingMetrics) get(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key]
}

func TestClient_Send(t *testing.T) {
	var got Message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/notifications", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", time.Second, logger.NewNop())
	err := client.Send(context.Background(), domain.Notification{
		Recipient: 42,
		Lang:      domain.LangUZ,
		Template:  domain.TemplateApproved,
		Params:    map[string]string{"date": "2026-02-24"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), got.Recipient)
	assert.Equal(t, domain.LangUZ, got.Lang)
	assert.Equal(t, domain.TemplateApproved, got.Template)
	assert.Equal(t, "2026-02-24", got.Params["date"])
}

func TestClient_SendErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "recipient blocked the bot", status: http.StatusGone, wantErr: ErrRecipientUnreachable},
		{name: "gateway failure", status: http.StatusInternalServerError, body: `{"code":500,"message":"boom"}`, wantErr: ErrInvalidResponse},
		{name: "bad request", status: http.StatusBadRequest, body: "nope", wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := NewClient(server.URL, time.Second, logger.NewNop()).Send(context.Background(), domain.Notification{Recipient: 1})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

type stubSender struct {
	mu    sync.Mutex
	sent  []domain.Notification
	fail  error
	block chan struct{}
}

func (s *stubSender) Send(_ context.Context, n domain.Notification) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
	return s.fail
}

func (s *stubSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	sender := &stubSender{}
	metrics := &countingMetrics{}
	d := NewDispatcher(sender, 8, time.Second, metrics, logger.NewNop())
	d.Start()

	d.Notify(domain.Notification{Recipient: 1, Template: domain.TemplateNewRequest})
	d.Notify(domain.Notification{Recipient: 2, Template: domain.TemplateApproved})
	d.Stop()

	require.Equal(t, 2, sender.count())
	assert.Equal(t, domain.TemplateNewRequest, sender.sent[0].Template)
	assert.Equal(t, domain.TemplateApproved, sender.sent[1].Template)
	assert.Equal(t, 1, metrics.get(domain.TemplateApproved+"/"+ResultDelivered))

	d.Notify(domain.Notification{Template: domain.TemplateRejected})
	assert.Equal(t, 1, metrics.get(domain.TemplateRejected+"/"+ResultDropped))
}

func TestDispatcher_FailureIsCounted(t *testing.T) {
	sender := &stubSender{fail: errors.New("gateway down")}
	metrics := &countingMetrics{}
	d := NewDispatcher(sender, 1, time.Second, metrics, logger.NewNop())
	d.Start()

	d.Notify(domain.Notification{Template: domain.TemplateReminder})
	d.Stop()

	assert.Equal(t, 1, metrics.get(domain.TemplateReminder+"/"+ResultFailed))
}

func TestDispatcher_NotifyDoesNotBlockWhenFull(t *testing.T) {
	sender := &stubSender{block: make(chan struct{})}
	metrics := &countingMetrics{}
	d := NewDispatcher(sender, 1, time.Second, metrics, logger.NewNop())
	d.Start()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.Notify(domain.Notification{Template: domain.TemplateSlotBlocked})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked on a full queue")
	}
	assert.Positive(t, metrics.get(domain.TemplateSlotBlocked+"/"+ResultDropped))

	close(sender.block)
	d.Stop()
}

type recording struct {
	got []domain.Notification
}

func (r *recording) Notify(n domain.Notification) {
	r.got = append(r.got, n)
}

func TestMulti_FansOut(t *testing.T) {
	a, b := &recording{}, &recording{}
	Multi{a, b}.Notify(domain.Notification{Template: domain.TemplateApproved})

	assert.Len(t, a.got, 1)
	assert.Len(t, b.got, 1)
}
