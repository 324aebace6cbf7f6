package auth

import (
	"context"
	"log"
)

// EmailSender dispatches password reset messages. The production binding
// would sit in front of a real mail provider; the default implementation
// writes the reset link to the application log.
type EmailSender interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// LogEmailSender logs reset tokens instead of sending mail. Useful for
// local development and tests.
type LogEmailSender struct {
	baseURL string
}

// NewLogEmailSender creates a LogEmailSender. baseURL is prepended to the
// reset path in the logged link.
func NewLogEmailSender(baseURL string) *LogEmailSender {
	return &LogEmailSender{baseURL: baseURL}
}

// SendPasswordReset logs the reset link for the given account.
func (s *LogEmailSender) SendPasswordReset(_ context.Context, email, token string) error {
	log.Printf("[auth] Password reset requested for %s: %s/reset-password?token=%s", email, s.baseURL, token)
	return nil
}
