package notification

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/educonnect/educonnect-backend/internal/config"
)

var (
	host     = "https://api.sendgrid.com"
	endpoint = "/v3/mail/send"
)

// Recipient is a resolved e-mail destination.
type Recipient struct {
	Name  string
	Email string
}

// Mail is one rendered message for one recipient.
type Mail struct {
	To      Recipient
	Subject string
	Text    string
}

// Mailer delivers rendered mails.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

// NewMailer returns the SendGrid mailer when an API key is configured and the
// console mailer otherwise.
func NewMailer(cfg *config.Config, log zerolog.Logger) Mailer {
	if cfg.SendgridAPIKey == "" {
		log.Warn().Msg("SENDGRID_API_KEY not set, notifications are written to the log")
		return NewConsoleMailer(log)
	}
	return NewSendgridMailer(cfg.SendgridAPIKey, cfg.MailFromName, cfg.MailFromEmail)
}

// SendgridMailer sends through the SendGrid v3 API.
type SendgridMailer struct {
	key        string
	from       *sgmail.Email
	subjPrefix string
}

func NewSendgridMailer(key, fromName, fromEmail string) *SendgridMailer {
	return &SendgridMailer{
		key:        key,
		from:       sgmail.NewEmail(fromName, fromEmail),
		subjPrefix: "[" + fromName + "] ",
	}
}

func (m *SendgridMailer) prepare(msg Mail) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = m.subjPrefix + msg.Subject
	p.AddTos(sgmail.NewEmail(msg.To.Name, msg.To.Email))

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)
	v3.AddContent(sgmail.NewContent("text/plain", msg.Text))
	return v3
}

// Send posts one message. Non-2xx responses are returned as errors.
func (m *SendgridMailer) Send(ctx context.Context, msg Mail) error {
	req := sendgrid.GetRequest(m.key, endpoint, host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m.prepare(msg))

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

// ConsoleMailer writes mails to the log. Used in development.
type ConsoleMailer struct {
	log zerolog.Logger
}

func NewConsoleMailer(log zerolog.Logger) *ConsoleMailer {
	return &ConsoleMailer{log: log.With().Str("component", "console_mailer").Logger()}
}

func (m *ConsoleMailer) Send(_ context.Context, msg Mail) error {
	m.log.Info().
		Str("to", msg.To.Email).
		Str("subject", msg.Subject).
		Str("body", msg.Text).
		Msg("mail")
	return nil
}
