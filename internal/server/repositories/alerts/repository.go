package alerts

import (
	"context"

	"github.com/sentinelx/breachwatch/internal/server/models"
)

type Repository interface {
	Append(ctx context.Context, alert *models.AlertEvent) (*models.AlertEvent, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	ListByEmail(ctx context.Context, email string) ([]*models.AlertEvent, error)
	DeleteByEmail(ctx context.Context, email string) error
}
