// Package email delivers quote emails through Postmark.
package email

import (
	"context"
	"errors"
	"time"
)

// ErrNotConfigured is returned when no Postmark token or sender is set.
var ErrNotConfigured = errors.New("email delivery not configured")

// Message is one outbound email.
type Message struct {
	To       string
	Bcc      string
	ReplyTo  string
	Subject  string
	TextBody string
	HTMLBody string
	Tag      string
}

// Mailer sends a message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Config holds Postmark settings.
type Config struct {
	Token   string
	From    string
	ReplyTo string
	Stream  string
	APIURL  string
	Timeout time.Duration
}
