package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/studyatlas/studyatlas/pkg/api"
)

// lazyConn memoizes a verified database handle. The first caller opens
// and pings the database under the mutex, so concurrent callers wait on
// the same attempt instead of racing separate connections. A failed
// attempt leaves the cache empty: the next caller retries a fresh
// connection rather than observing a permanently poisoned handle.
type lazyConn struct {
	url      string
	maxConns int
	minConns int
	timeout  time.Duration

	mu sync.Mutex
	db *sql.DB // nil until a ping has succeeded
}

func newLazyConn(url string, maxConns, minConns int, timeout time.Duration) *lazyConn {
	if timeout == 0 {
		timeout = 3 * time.Second
	}
	return &lazyConn{url: url, maxConns: maxConns, minConns: minConns, timeout: timeout}
}

// acquire returns the cached handle or establishes it. Errors are
// always unavailability: the router falls back on them.
func (c *lazyConn) acquire(ctx context.Context) (*sql.DB, error) {
	if c.url == "" {
		return nil, fmt.Errorf("no postgres URL configured: %w", api.ErrUnavailable)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db != nil {
		return c.db, nil
	}

	db, err := sql.Open("postgres", c.url)
	if err != nil {
		return nil, unavailable(err)
	}
	db.SetMaxOpenConns(c.maxConns)
	db.SetMaxIdleConns(c.minConns)
	db.SetConnMaxLifetime(time.Hour)

	// Bounded so a down database yields a fallback decision in seconds,
	// not a hung request.
	pingCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, unavailable(err)
	}

	c.db = db
	return db, nil
}

// invalidate drops the cached handle so the next acquire reconnects.
func (c *lazyConn) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db != nil {
		c.db.Close()
		c.db = nil
	}
}

func (c *lazyConn) close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// unavailable marks an infrastructure failure so the failover router
// can classify it.
func unavailable(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, api.ErrUnavailable) {
		return err
	}
	return fmt.Errorf("postgres: %v: %w", err, api.ErrUnavailable)
}
