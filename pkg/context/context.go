// Package context provides the process wide context used by the CLI binaries.
// The context is cancelled on the first SIGTERM/SIGINT so a serving engine can
// drain; a second signal exits immediately.
package context

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/specbind/specbind/pkg/log"
)

var (
	ctx      context.Context
	cancel   context.CancelFunc
	initOnce sync.Once
)

// AddInterruptCancellation cancels the given context on the first interrupt
// signal and exits the process on the second.
func AddInterruptCancellation(ctx context.Context, cancel context.CancelFunc) {
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		interrupts := 0
		for {
			select {
			case <-c:
				interrupts++
				if interrupts > 1 {
					log.Info().Msg("received multiple interrupt signals. exiting")
					os.Exit(1)
				}
				log.Info().Msg("received interrupt signal")
				cancel()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Context returns the global context, initializing it and its interrupt
// handler on first use. Safe to call from multiple goroutines; always returns
// the same context.
func Context() context.Context {
	initOnce.Do(func() {
		ctx, cancel = context.WithCancel(context.Background())
		AddInterruptCancellation(ctx, cancel)
	})
	return ctx
}

// Cancel cancels the global context. Calling it multiple times is equivalent
// to cancelling the same context multiple times.
func Cancel() {
	Context()
	cancel()
}
