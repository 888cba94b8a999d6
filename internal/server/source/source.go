// Package source provides breach-data sources: the live HIBP v3 client, a
// simulated catalog (embedded or loaded from object storage), and a resolver
// that picks between them and recovers from live-source outages.
package source

import (
	"context"

	"github.com/sentinelx/breachwatch/internal/breach"
)

// Client looks up the raw breach entries known for an email address. A nil
// slice with a nil error means the address appears in no known breach.
type Client interface {
	Lookup(ctx context.Context, email string) ([]breach.RawEntry, error)
}
