package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sentinelx/breachwatch/internal/common"
	"github.com/sentinelx/breachwatch/internal/server/models"
	"github.com/sentinelx/breachwatch/internal/server/repositories/repomanager"
)

// DashboardService aggregates the stored state of one address for the
// dashboard view. It never triggers a live check.
type DashboardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDashboardService(db *sql.DB, m repomanager.RepositoryManager) *DashboardService {
	return &DashboardService{db: db, repomanager: m}
}

func (s *DashboardService) Dashboard(ctx context.Context, email string) (*models.Dashboard, error) {

	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	dashboard := &models.Dashboard{Email: email}

	latest, err := s.repomanager.Checks(s.db).GetLatest(ctx, email)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	dashboard.Latest = latest

	alerts, err := s.repomanager.Alerts(s.db).ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	dashboard.Alerts = alerts

	watchers, err := s.repomanager.Monitored(s.db).CountWatchers(ctx, email)
	if err != nil {
		return nil, err
	}
	dashboard.Monitored = watchers > 0

	return dashboard, nil
}
