package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-club/internal/domain/reminder"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/infra/breaker"
)

type whatsAppMessage struct {
	To            string `json:"to"`
	Text          string `json:"text"`
	AppointmentID uint   `json:"appointment_id"`
	MinutesBefore int    `json:"minutes_before"`
}

// WhatsApp posts reminders to a WhatsApp sending webhook.
type WhatsApp struct {
	url    string
	token  string
	client *http.Client
	cb     *gobreaker.CircuitBreaker
}

func NewWhatsApp(url, token string, client *http.Client, log *zap.Logger) *WhatsApp {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WhatsApp{
		url:    url,
		token:  token,
		client: client,
		cb:     breaker.New("whatsapp", log),
	}
}

func (w *WhatsApp) SendReminder(ctx context.Context, r reminder.Reminder) error {
	body, err := json.Marshal(whatsAppMessage{
		To:            r.Phone,
		Text:          r.Text(),
		AppointmentID: r.AppointmentID,
		MinutesBefore: r.MinutesBefore,
	})
	if err != nil {
		return fmt.Errorf("whatsapp: marshal: %w", err)
	}

	_, err = breaker.Do(w.cb, func() (struct{}, error) {
		return struct{}{}, w.post(ctx, body)
	})
	return err
}

func (w *WhatsApp) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("whatsapp: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.token != "" {
		req.Header.Set("Authorization", "Bearer "+w.token)
	}

	res, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: send: %w", err)
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4096))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return httperr.Upstream("notification_failed", fmt.Errorf("whatsapp: unexpected status %d", res.StatusCode))
	}
	return nil
}

// LogNotifier only logs reminders; used when no webhook is configured.
type LogNotifier struct {
	Log *zap.Logger
}

func (n LogNotifier) SendReminder(_ context.Context, r reminder.Reminder) error {
	n.Log.Info("reminder (no webhook configured)",
		zap.Uint("appointment_id", r.AppointmentID),
		zap.Int("minutes_before", r.MinutesBefore),
		zap.String("text", r.Text()),
	)
	return nil
}

// Compile-time check
var (
	_ reminder.Notifier = (*WhatsApp)(nil)
	_ reminder.Notifier = LogNotifier{}
)
