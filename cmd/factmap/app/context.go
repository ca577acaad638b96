package app

import (
	"context"
	"os/signal"
	"syscall"
)

// Context returns a context that is canceled on SIGINT or SIGTERM.
func Context() (context.Context, context.CancelFunc) {
	return ContextWithSignals(context.Background())
}

// ContextWithSignals wraps parent with cancellation on SIGINT or SIGTERM.
func ContextWithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
