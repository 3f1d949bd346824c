// Package mail delivers plain text email over SMTP with implicit TLS.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/studybuddy/studybuddy-server/internal/model"
)

var _ model.Mailer = (*SMTPMailer)(nil)

type Config struct {
	Address  string
	Password string
	Host     string
	Port     int
}

// SMTPMailer sends through an authenticated SMTP submission server.
type SMTPMailer struct {
	cfg Config
	// extra client options, applied last
	options []gomail.Option
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Enabled() bool {
	return m.cfg.Address != "" && m.cfg.Password != ""
}

func (m *SMTPMailer) Send(ctx context.Context, msg model.MailMessage) error {
	if !m.Enabled() {
		return model.ErrFeatureDisabled
	}

	message, err := m.compose(msg)
	if err != nil {
		return err
	}

	opts := append([]gomail.Option{
		gomail.WithPort(m.cfg.Port),
		gomail.WithSSL(),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Address),
		gomail.WithPassword(m.cfg.Password),
	}, m.options...)

	client, err := gomail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// compose builds the MIME message. Date and Message-ID are set here and
// non-ASCII headers are encoded by go-mail.
func (m *SMTPMailer) compose(msg model.MailMessage) (*gomail.Msg, error) {
	message := gomail.NewMsg()
	if err := message.From(m.cfg.Address); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := message.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	message.Subject(msg.Subject)
	message.SetDate()
	message.SetMessageID()
	message.SetBodyString(gomail.TypeTextPlain, msg.Body)

	return message, nil
}
