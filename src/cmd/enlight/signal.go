// FILE: enlight/src/cmd/enlight/signal.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/log"
)

// Manages OS signals
type SignalHandler struct {
	logger  *log.Logger
	sigChan chan os.Signal
}

// Creates a signal handler for termination signals
func NewSignalHandler(logger *log.Logger) *SignalHandler {
	sh := &SignalHandler{
		logger:  logger,
		sigChan: make(chan os.Signal, 1),
	}

	signal.Notify(sh.sigChan, syscall.SIGINT, syscall.SIGTERM)
	return sh
}

// Blocks until a termination signal arrives or ctx ends, returning nil in the latter case
func (sh *SignalHandler) Wait(ctx context.Context) os.Signal {
	select {
	case sig := <-sh.sigChan:
		sh.logger.Info("msg", "Shutdown signal received", "signal", sig)
		return sig
	case <-ctx.Done():
		return nil
	}
}

// Cleans up signal handling
func (sh *SignalHandler) Stop() {
	signal.Stop(sh.sigChan)
}
