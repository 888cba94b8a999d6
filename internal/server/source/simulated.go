package source

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sentinelx/breachwatch/internal/breach"
)

//go:embed data/simulated_breaches.json
var catalogFS embed.FS

// Catalog maps a lowercased email address to its known raw breach entries.
type Catalog map[string][]breach.RawEntry

// ParseCatalog decodes a catalog document. Keys are lowercased so lookups
// are case-insensitive.
func ParseCatalog(data []byte) (Catalog, error) {
	raw := map[string][]breach.RawEntry{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("catalog decode error: %w", err)
	}

	catalog := make(Catalog, len(raw))
	for email, entries := range raw {
		catalog[strings.ToLower(strings.TrimSpace(email))] = entries
	}
	return catalog, nil
}

// EmbeddedCatalog returns the catalog compiled into the binary.
func EmbeddedCatalog() (Catalog, error) {
	data, err := catalogFS.ReadFile("data/simulated_breaches.json")
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return ParseCatalog(data)
}

// SimulatedClient serves breach lookups from an in-memory catalog. Addresses
// absent from the catalog still resolve to one generic entry so that every
// pipeline stage stays exercisable without live credentials.
type SimulatedClient struct {
	catalog Catalog
}

func NewSimulatedClient(catalog Catalog) *SimulatedClient {
	return &SimulatedClient{catalog: catalog}
}

func (c *SimulatedClient) Lookup(ctx context.Context, email string) ([]breach.RawEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := strings.ToLower(strings.TrimSpace(email))
	if entries, ok := c.catalog[key]; ok {
		return entries, nil
	}

	return []breach.RawEntry{
		{Name: "RailYatri", BreachDate: "2020-02-25"},
	}, nil
}
