package observability

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// ShutdownFunc is a cleanup hook invoked during shutdown.
type ShutdownFunc func(context.Context) error

// ShutdownManager drains the HTTP server and runs registered cleanup
// hooks when the process receives SIGINT or SIGTERM.
type ShutdownManager struct {
	logger  *Logger
	server  *http.Server
	hooks   []ShutdownFunc
	timeout time.Duration
}

// NewShutdownManager creates a shutdown manager for server.
func NewShutdownManager(logger *Logger, server *http.Server, timeout time.Duration) *ShutdownManager {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &ShutdownManager{logger: logger, server: server, timeout: timeout}
}

// Register adds a cleanup hook, run in registration order after the
// server drains.
func (sm *ShutdownManager) Register(fn ShutdownFunc) {
	sm.hooks = append(sm.hooks, fn)
}

// Wait blocks until a termination signal arrives, then shuts down.
func (sm *ShutdownManager) Wait() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	sm.logger.WithField("signal", s.String()).Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), sm.timeout)
	defer cancel()

	if err := sm.server.Shutdown(ctx); err != nil {
		sm.logger.WithError(err).Error("server shutdown failed")
	}
	for _, fn := range sm.hooks {
		if err := fn(ctx); err != nil {
			sm.logger.WithError(err).Error("shutdown hook failed")
		}
	}
}
