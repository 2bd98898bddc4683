package notify

import (
	"context"
)

// Notifier tells the operators about events that need their attention.
// Implementations never fail the caller; delivery problems are logged.
type Notifier interface {
	NotifyNewUser(ctx context.Context, username string)
	NotifyPresetSubmitted(ctx context.Context, presetName, username string)
}

// Noop is used when no notification channel is configured.
type Noop struct{}

func (Noop) NotifyNewUser(context.Context, string) {}

func (Noop) NotifyPresetSubmitted(context.Context, string, string) {}
