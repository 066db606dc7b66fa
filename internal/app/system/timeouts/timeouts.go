// Package timeouts provides centralized timeout values for handler and
// backend operations.
//
// Values are used with context.WithTimeout around MongoDB calls and
// survey-backend requests. Configure is called once at startup from the
// loaded app config; unset values keep their defaults.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: login, logout, single-record reads
//   - Lookup: one location-hierarchy dropdown fetch
//   - Medium: survey aggregates and report tables
//   - Long: CSV exports that pull a full report
package timeouts

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultLookup = 10 * time.Second
	DefaultMedium = 15 * time.Second
	DefaultLong   = 45 * time.Second
)

// Config holds timeout configuration values.
// Zero values are ignored (defaults are kept).
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Lookup time.Duration
	Medium time.Duration
	Long   time.Duration
}

// Defaults returns the built-in values.
func Defaults() Config {
	return Config{
		Ping:   DefaultPing,
		Short:  DefaultShort,
		Lookup: DefaultLookup,
		Medium: DefaultMedium,
		Long:   DefaultLong,
	}
}

var current atomic.Pointer[Config]

func init() { Reset() }

// Ping returns the timeout for health checks.
func Ping() time.Duration { return current.Load().Ping }

// Short returns the timeout for login/logout and single reads.
func Short() time.Duration { return current.Load().Short }

// Lookup returns the per-request timeout for hierarchy dropdown fetches.
// A lookup that runs past it is treated like any other transport failure.
func Lookup() time.Duration { return current.Load().Lookup }

// Medium returns the timeout for survey aggregate and report queries.
func Medium() time.Duration { return current.Load().Medium }

// Long returns the timeout for CSV exports.
func Long() time.Duration { return current.Load().Long }

// merged returns c with every positive field of over applied.
func (c Config) merged(over Config) Config {
	pick := func(cur, next time.Duration) time.Duration {
		if next > 0 {
			return next
		}
		return cur
	}
	return Config{
		Ping:   pick(c.Ping, over.Ping),
		Short:  pick(c.Short, over.Short),
		Lookup: pick(c.Lookup, over.Lookup),
		Medium: pick(c.Medium, over.Medium),
		Long:   pick(c.Long, over.Long),
	}
}

// Configure applies the positive values of cfg over the current ones.
//
//	timeouts.Configure(timeouts.Config{Lookup: appCfg.BackendTimeout})
func Configure(cfg Config) {
	for {
		old := current.Load()
		next := old.merged(cfg)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Reset restores the defaults. Tests call it in t.Cleanup.
func Reset() {
	d := Defaults()
	current.Store(&d)
}

// Current returns the timeouts in effect.
func Current() Config {
	return *current.Load()
}

// WithTimeout creates a context with timeout and returns a cancel function
// that logs a warning if the deadline was hit before cancel ran.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "welfare csv export")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
