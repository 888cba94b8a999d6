package checks

import (
	"context"

	"github.com/sentinelx/breachwatch/internal/server/models"
)

type Repository interface {
	// Lock takes a transaction-scoped advisory lock keyed by the email,
	// serializing concurrent check pipelines for the same address.
	Lock(ctx context.Context, email string) error
	GetLatest(ctx context.Context, email string) (*models.CheckResult, error)
	Save(ctx context.Context, result *models.CheckResult) error
}
