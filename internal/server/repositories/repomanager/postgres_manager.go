package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sentinelx/breachwatch/internal/dbx"
	"github.com/sentinelx/breachwatch/internal/server/migrations"
	"github.com/sentinelx/breachwatch/internal/server/repositories/alerts"
	"github.com/sentinelx/breachwatch/internal/server/repositories/checks"
	"github.com/sentinelx/breachwatch/internal/server/repositories/monitored"
	"github.com/sentinelx/breachwatch/internal/server/repositories/users"
)

// seam for tests
var gooseUpContext = goose.UpContext

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager(db *sql.DB) (RepositoryManager, error) {

	m := &PostgresRepositoryManager{}

	return m, nil
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Checks(db dbx.DBTX) checks.Repository {
	return checks.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Alerts(db dbx.DBTX) alerts.Repository {
	return alerts.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Monitored(db dbx.DBTX) monitored.Repository {
	return monitored.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
