package alerts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/sentinelx/breachwatch/internal/breach"
	"github.com/sentinelx/breachwatch/internal/dbx"
	"github.com/sentinelx/breachwatch/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, alert *models.AlertEvent) (*models.AlertEvent, error) {

	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}

	payload, err := json.Marshal(alert.Breaches)
	if err != nil {
		return nil, fmt.Errorf("payload encode error: %w", err)
	}

	query :=
		`INSERT INTO alerts (id, email, created_at, new_breach_count, payload, status)
         VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err = r.db.ExecContext(ctx, query,
		alert.ID, alert.Email, alert.CreatedAt, alert.NewBreachCount, payload, alert.Status)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return alert, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	query :=
		`UPDATE alerts SET status = $2
		 WHERE id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, id, status); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByEmail(ctx context.Context, email string) ([]*models.AlertEvent, error) {
	query :=
		`SELECT id, email, created_at, new_breach_count, payload, status FROM alerts
		 WHERE email = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.AlertEvent
	for rows.Next() {
		alert := &models.AlertEvent{}
		var payload []byte
		if err := rows.Scan(&alert.ID, &alert.Email, &alert.CreatedAt, &alert.NewBreachCount, &payload, &alert.Status); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		var breaches []breach.Record
		if err := json.Unmarshal(payload, &breaches); err != nil {
			return nil, fmt.Errorf("payload decode error: %w", err)
		}
		alert.Breaches = breaches
		result = append(result, alert)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) DeleteByEmail(ctx context.Context, email string) error {
	query :=
		`DELETE FROM alerts
		 WHERE email = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, email); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
