package notification

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educonnect/educonnect-backend/internal/config"
)

func withSendgridHost(t *testing.T, h http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(h)
	prev := host
	host = srv.URL
	t.Cleanup(func() {
		host = prev
		srv.Close()
	})
}

func TestNewMailer_FallsBackToConsole(t *testing.T) {
	m := NewMailer(&config.Config{}, zerolog.Nop())
	assert.IsType(t, &ConsoleMailer{}, m)

	m = NewMailer(&config.Config{SendgridAPIKey: "SG.key", MailFromName: "Hillside", MailFromEmail: "no-reply@hillside.test"}, zerolog.Nop())
	assert.IsType(t, &SendgridMailer{}, m)
}

func TestSendgridMailer_Send(t *testing.T) {
	var got struct {
		Personalizations []struct {
			To      []struct{ Email string } `json:"to"`
			Subject string                   `json:"subject"`
		} `json:"personalizations"`
		Content []struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"content"`
	}
	var auth string

	withSendgridHost(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, endpoint, r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusAccepted)
	})

	m := NewSendgridMailer("SG.key", "Hillside", "no-reply@hillside.test")
	err := m.Send(context.Background(), Mail{
		To:      Recipient{Name: "Pat", Email: "pat@school.test"},
		Subject: "Payment received",
		Text:    "Thanks.",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer SG.key", auth)
	require.Len(t, got.Personalizations, 1)
	assert.Equal(t, "[Hillside] Payment received", got.Personalizations[0].Subject)
	require.Len(t, got.Personalizations[0].To, 1)
	assert.Equal(t, "pat@school.test", got.Personalizations[0].To[0].Email)
	require.Len(t, got.Content, 1)
	assert.Equal(t, "Thanks.", got.Content[0].Value)
}

func TestSendgridMailer_ErrorStatus(t *testing.T) {
	withSendgridHost(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	})

	m := NewSendgridMailer("SG.bad", "Hillside", "no-reply@hillside.test")
	err := m.Send(context.Background(), Mail{To: Recipient{Email: "pat@school.test"}, Subject: "x", Text: "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
