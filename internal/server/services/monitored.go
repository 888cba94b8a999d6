package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sentinelx/breachwatch/internal/common"
	"github.com/sentinelx/breachwatch/internal/dbx"
	"github.com/sentinelx/breachwatch/internal/logging"
	"github.com/sentinelx/breachwatch/internal/server/models"
	"github.com/sentinelx/breachwatch/internal/server/repositories/repomanager"
)

// MonitoredService manages the per-user watch list. Adding an address runs
// an immediate baseline check; removing the last watcher of an address also
// drops its alert history in the same transaction.
type MonitoredService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	checker     Checker
	logger      logging.Logger
}

func NewMonitoredService(db *sql.DB, m repomanager.RepositoryManager, checker Checker, logger logging.Logger) *MonitoredService {
	return &MonitoredService{
		db:          db,
		repomanager: m,
		checker:     checker,
		logger:      logger.With("module", "monitored"),
	}
}

func (s *MonitoredService) Add(ctx context.Context, userID string, email string) (*models.MonitoredEmail, error) {

	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	entry := &models.MonitoredEmail{
		UserID: userID,
		Email:  email,
	}

	repo := s.repomanager.Monitored(s.db)

	entry, err = repo.Add(ctx, entry)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error adding monitored email: %v", err)
	}

	// baseline check so the next cycle has a previous result to diff
	// against; its failure does not fail the add
	if _, err := s.checker.Check(ctx, email); err != nil {
		s.logger.Warn(ctx, "baseline check failed for new monitored email", "email", email, "error", err)
	}

	return entry, nil
}

func (s *MonitoredService) Remove(ctx context.Context, userID string, email string) error {

	email, err := NormalizeEmail(email)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Monitored(tx).Remove(ctx, userID, email); err != nil {
			return err
		}

		watchers, err := s.repomanager.Monitored(tx).CountWatchers(ctx, email)
		if err != nil {
			return err
		}

		if watchers == 0 {
			if err := s.repomanager.Alerts(tx).DeleteByEmail(ctx, email); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *MonitoredService) List(ctx context.Context, userID string) ([]*models.MonitoredEmail, error) {
	return s.repomanager.Monitored(s.db).ListByUser(ctx, userID)
}

// ListActive returns every distinct actively monitored address; used by the
// background monitor cycle.
func (s *MonitoredService) ListActive(ctx context.Context) ([]string, error) {
	return s.repomanager.Monitored(s.db).ListActive(ctx)
}

// ListAlerts returns the alert history for every address the user monitors,
// newest first per address.
func (s *MonitoredService) ListAlerts(ctx context.Context, userID string) ([]*models.AlertEvent, error) {

	entries, err := s.repomanager.Monitored(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	alertsRepo := s.repomanager.Alerts(s.db)

	var result []*models.AlertEvent
	for _, entry := range entries {
		alerts, err := alertsRepo.ListByEmail(ctx, entry.Email)
		if err != nil {
			return nil, err
		}
		result = append(result, alerts...)
	}

	return result, nil
}
