package source

import (
	"context"
	"time"

	"github.com/sentinelx/breachwatch/internal/breach"
	"github.com/sentinelx/breachwatch/internal/logging"
)

// Resolver fronts the live source with a bounded timeout and recovers any
// live failure by consulting the simulated catalog. Lookup never returns a
// source error to its caller.
type Resolver struct {
	live     Client // nil when running simulated-only
	fallback Client
	timeout  time.Duration
	logger   logging.Logger
}

func NewResolver(live Client, fallback Client, timeout time.Duration, logger logging.Logger) *Resolver {
	return &Resolver{
		live:     live,
		fallback: fallback,
		timeout:  timeout,
		logger:   logger.With("module", "source"),
	}
}

func (r *Resolver) Lookup(ctx context.Context, email string) ([]breach.RawEntry, error) {
	if r.live != nil {
		lctx, cancel := context.WithTimeout(ctx, r.timeout)
		entries, err := r.live.Lookup(lctx, email)
		cancel()
		if err == nil {
			return entries, nil
		}
		r.logger.Warn(ctx, "live breach source unavailable, using simulated catalog", "error", err)
	}

	return r.fallback.Lookup(ctx, email)
}
