package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sentinelx/breachwatch/internal/breach"
	"github.com/sentinelx/breachwatch/internal/common"
	"github.com/sentinelx/breachwatch/internal/dbx"
	"github.com/sentinelx/breachwatch/internal/logging"
	"github.com/sentinelx/breachwatch/internal/server/mailer"
	"github.com/sentinelx/breachwatch/internal/server/models"
	"github.com/sentinelx/breachwatch/internal/server/repositories/repomanager"
	"github.com/sentinelx/breachwatch/internal/server/source"
)

// Checker runs one breach check for an email. Satisfied by CheckService;
// consumers depend on this so tests can substitute a fake.
type Checker interface {
	Check(ctx context.Context, email string) (*models.CheckOutcome, error)
}

// CheckService runs the check pipeline: lookup, normalize, score, and a
// single per-email-serialized transaction that compares against the previous
// result, stores the new one, and appends an alert when the breach set grew.
// Alert email dispatch happens after commit and never affects the stored
// truth beyond the sent/logged status.
type CheckService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	resolver    source.Client
	mailer      mailer.Mailer // nil disables dispatch
	logger      logging.Logger
	now         func() time.Time
}

func NewCheckService(db *sql.DB, m repomanager.RepositoryManager, resolver source.Client, mail mailer.Mailer, logger logging.Logger) *CheckService {
	return &CheckService{
		db:          db,
		repomanager: m,
		resolver:    resolver,
		mailer:      mail,
		logger:      logger.With("module", "checks"),
		now:         time.Now,
	}
}

func (s *CheckService) Check(ctx context.Context, email string) (*models.CheckOutcome, error) {

	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	entries, err := s.resolver.Lookup(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("breach lookup: %w", err)
	}

	records := breach.Normalize(entries)
	now := s.now().UTC()
	score := breach.Score(records, now)

	outcome := &models.CheckOutcome{
		CheckResult: models.CheckResult{
			Email:           email,
			BreachCount:     len(records),
			Breaches:        records,
			RiskScore:       score,
			RiskCategory:    breach.Category(score),
			Recommendations: breach.Recommendations(records),
			CheckedAt:       now,
		},
	}

	var newDetected bool
	var added []breach.Record
	var alert *models.AlertEvent

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		checksRepo := s.repomanager.Checks(tx)

		if err := checksRepo.Lock(ctx, email); err != nil {
			return err
		}

		previous, err := checksRepo.GetLatest(ctx, email)
		hasPrevious := err == nil
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		var prevRecords []breach.Record
		if hasPrevious {
			prevRecords = previous.Breaches
		}
		newDetected, added = breach.DetectNew(records, prevRecords, hasPrevious)

		if err := checksRepo.Save(ctx, &outcome.CheckResult); err != nil {
			return err
		}

		if newDetected {
			alert = &models.AlertEvent{
				Email:          email,
				CreatedAt:      now,
				NewBreachCount: len(added),
				Breaches:       added,
				Status:         models.AlertStatusLogged,
			}
			if _, err := s.repomanager.Alerts(tx).Append(ctx, alert); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		// degraded response: the computed result is still returned, but
		// nothing was stored and no alert may be claimed
		s.logger.Error(ctx, "check persistence failed", "email", email, "error", err)
		return outcome, nil
	}

	outcome.Persisted = true
	outcome.NewBreachDetected = newDetected
	outcome.NewBreaches = added
	outcome.AlertCreated = alert != nil

	if alert != nil {
		s.dispatchAlert(ctx, alert)
	}

	return outcome, nil
}

// dispatchAlert tries to send the alert email and upgrades the stored status
// to sent on success. Every failure is logged and swallowed.
func (s *CheckService) dispatchAlert(ctx context.Context, alert *models.AlertEvent) {
	if s.mailer == nil {
		return
	}

	if err := s.mailer.SendBreachAlert(ctx, alert.Email, alert.Breaches); err != nil {
		s.logger.Warn(ctx, "alert email dispatch failed", "email", alert.Email, "error", err)
		return
	}

	alert.Status = models.AlertStatusSent
	if err := s.repomanager.Alerts(s.db).UpdateStatus(ctx, alert.ID, models.AlertStatusSent); err != nil {
		s.logger.Warn(ctx, "alert status update failed", "alert_id", alert.ID, "error", err)
	}
}
