package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-club/internal/domain/reminder"
	"github.com/BruksfildServices01/barber-club/internal/httperr"
)

func TestWhatsAppPostsReminder(t *testing.T) {
	var got whatsAppMessage
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	n := NewWhatsApp(srv.URL, "tok", srv.Client(), zap.NewNop())

	err := n.SendReminder(context.Background(), reminder.Reminder{
		AppointmentID:  9,
		BarbershopName: "Navalha",
		ClientName:     "Ana",
		Phone:          "+5511999990000",
		StartTime:      time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		MinutesBefore:  60,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", auth)
	assert.Equal(t, "+5511999990000", got.To)
	assert.Equal(t, uint(9), got.AppointmentID)
	assert.Contains(t, got.Text, "Ana")
}

func TestWhatsAppNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewWhatsApp(srv.URL, "", srv.Client(), zap.NewNop())

	err := n.SendReminder(context.Background(), reminder.Reminder{Phone: "1"})
	assert.ErrorContains(t, err, "unexpected status 500")
	assert.True(t, httperr.IsKind(err, httperr.KindUpstream))
}
