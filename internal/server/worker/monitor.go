// Package worker runs the periodic monitoring cycle that re-checks every
// actively monitored address.
package worker

import (
	"context"
	"time"

	"github.com/sentinelx/breachwatch/internal/logging"
	"github.com/sentinelx/breachwatch/internal/server/services"
)

// ActiveLister supplies the distinct set of addresses to scan each cycle.
type ActiveLister interface {
	ListActive(ctx context.Context) ([]string, error)
}

// Monitor re-checks every active address on a fixed interval. One failing
// address never stops the cycle; per-cycle stats are logged.
type Monitor struct {
	lister   ActiveLister
	checker  services.Checker
	interval time.Duration
	logger   logging.Logger
}

func NewMonitor(lister ActiveLister, checker services.Checker, interval time.Duration, logger logging.Logger) *Monitor {
	return &Monitor{
		lister:   lister,
		checker:  checker,
		interval: interval,
		logger:   logger.With("module", "monitor"),
	}
}

// Run blocks until the context is cancelled. A non-positive interval
// disables monitoring entirely.
func (m *Monitor) Run(ctx context.Context) {
	if m.interval <= 0 {
		m.logger.Info(ctx, "periodic monitoring disabled")
		return
	}

	m.logger.Info(ctx, "periodic monitoring started", "interval", m.interval.String())

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info(ctx, "periodic monitoring stopped")
			return
		case <-ticker.C:
			m.RunCycle(ctx)
		}
	}
}

// RunCycle scans every active address once and reports cycle stats.
func (m *Monitor) RunCycle(ctx context.Context) {
	started := time.Now()

	emails, err := m.lister.ListActive(ctx)
	if err != nil {
		m.logger.Error(ctx, "monitor cycle failed to list emails", "error", err)
		return
	}

	var checked, alerts, failures int
	for _, email := range emails {
		if ctx.Err() != nil {
			return
		}

		outcome, err := m.checker.Check(ctx, email)
		if err != nil {
			failures++
			m.logger.Error(ctx, "monitor check failed", "email", email, "error", err)
			continue
		}

		checked++
		if outcome.AlertCreated {
			alerts++
		}
	}

	m.logger.Info(ctx, "monitor cycle finished",
		"emails", checked,
		"alerts", alerts,
		"failures", failures,
		"elapsed", time.Since(started).String(),
	)
}
