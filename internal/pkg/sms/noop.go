package sms

import (
	"context"
	"log/slog"
)

// Noop logs instead of sending, for local development and tests.
type Noop struct{}

// NewNoop returns the logging stand-in.
func NewNoop() *Noop {
	return &Noop{}
}

// Send logs the recipient and returns nil. The body is not logged because it
// carries one-time codes.
func (*Noop) Send(ctx context.Context, to, _ string) error {
	slog.InfoContext(ctx, "sms noop send", "to", to)
	return nil
}
