package checks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sentinelx/breachwatch/internal/common"
	"github.com/sentinelx/breachwatch/internal/dbx"
	"github.com/sentinelx/breachwatch/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Lock(ctx context.Context, email string) error {

	query := `SELECT pg_advisory_xact_lock(hashtext($1))`

	if _, err := r.db.ExecContext(ctx, query, email); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetLatest(ctx context.Context, email string) (*models.CheckResult, error) {
	query :=
		`SELECT payload FROM checks_latest
		 WHERE email = $1
		 `

	var payload []byte
	err := r.db.QueryRowContext(ctx, query, email).Scan(&payload)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	result := &models.CheckResult{}
	if err := json.Unmarshal(payload, result); err != nil {
		return nil, fmt.Errorf("payload decode error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Save(ctx context.Context, result *models.CheckResult) error {

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("payload encode error: %w", err)
	}

	query :=
		`INSERT INTO checks_latest (email, checked_at, breach_count, risk_score, risk_category, payload)
         VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (email) DO UPDATE
		 SET checked_at = EXCLUDED.checked_at,
		     breach_count = EXCLUDED.breach_count,
		     risk_score = EXCLUDED.risk_score,
		     risk_category = EXCLUDED.risk_category,
		     payload = EXCLUDED.payload
		 `

	_, err = r.db.ExecContext(ctx, query,
		result.Email, result.CheckedAt, result.BreachCount, result.RiskScore, string(result.RiskCategory), payload)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
