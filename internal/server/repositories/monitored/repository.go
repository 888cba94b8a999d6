package monitored

import (
	"context"

	"github.com/sentinelx/breachwatch/internal/server/models"
)

type Repository interface {
	Add(ctx context.Context, entry *models.MonitoredEmail) (*models.MonitoredEmail, error)
	Remove(ctx context.Context, userID string, email string) error
	ListByUser(ctx context.Context, userID string) ([]*models.MonitoredEmail, error)
	// ListActive returns the distinct set of addresses any user is actively
	// monitoring; the scheduler checks each one exactly once per cycle.
	ListActive(ctx context.Context) ([]string, error)
	// CountWatchers reports how many other users still actively monitor an
	// address after one of them removes it.
	CountWatchers(ctx context.Context, email string) (int64, error)
}
