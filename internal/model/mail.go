package model

import "context"

// Mailer delivers a message synchronously.
type Mailer interface {
	// Enabled reports whether sender credentials are configured.
	Enabled() bool
	Send(ctx context.Context, msg MailMessage) error
}

// MailMessage is a plain text email.
type MailMessage struct {
	To      string
	Subject string
	Body    string
}
