package monitored

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sentinelx/breachwatch/internal/common"
	"github.com/sentinelx/breachwatch/internal/dbx"
	"github.com/sentinelx/breachwatch/internal/server/models"
)

const uniqueViolationCode = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, entry *models.MonitoredEmail) (*models.MonitoredEmail, error) {

	query :=
		`INSERT INTO monitored_emails (user_id, email, active)
         VALUES ($1, $2, true)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.Email).Scan(&entry.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	entry.Active = true
	return entry, nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID string, email string) error {
	query :=
		`DELETE FROM monitored_emails
		 WHERE user_id = $1 AND email = $2
		 `

	res, err := r.db.ExecContext(ctx, query, userID, email)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.MonitoredEmail, error) {
	query :=
		`SELECT user_id, email, active, created_at FROM monitored_emails
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.MonitoredEmail
	for rows.Next() {
		entry := &models.MonitoredEmail{}
		if err := rows.Scan(&entry.UserID, &entry.Email, &entry.Active, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]string, error) {
	query :=
		`SELECT DISTINCT email FROM monitored_emails
		 WHERE active
		 ORDER BY email
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, email)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) CountWatchers(ctx context.Context, email string) (int64, error) {
	query :=
		`SELECT count(*) FROM monitored_emails
		 WHERE email = $1 AND active
		 `

	var count int64
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return count, nil
}
