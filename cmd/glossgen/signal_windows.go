//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// notifyContext cancels a glossgen run on Ctrl-C. Windows has no SIGTERM.
func notifyContext(parent context.Context) (ctx context.Context, stop context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
