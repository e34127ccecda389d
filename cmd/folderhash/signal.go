package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// setupSignalContext returns a context that is cancelled when SIGINT or SIGTERM
// arrives. stop releases the signal handler.
func setupSignalContext(parent context.Context, stderr io.Writer) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigChan:
			warn(stderr, "received signal %v, stopping", sig)
			cancel()
		case <-done:
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		close(done)
		cancel()
	}
}
