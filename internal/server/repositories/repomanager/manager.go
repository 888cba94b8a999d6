package repomanager

import (
	"context"
	"database/sql"

	"github.com/sentinelx/breachwatch/internal/dbx"
	"github.com/sentinelx/breachwatch/internal/server/repositories/alerts"
	"github.com/sentinelx/breachwatch/internal/server/repositories/checks"
	"github.com/sentinelx/breachwatch/internal/server/repositories/monitored"
	"github.com/sentinelx/breachwatch/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Checks(db dbx.DBTX) checks.Repository
	Alerts(db dbx.DBTX) alerts.Repository
	Monitored(db dbx.DBTX) monitored.Repository
}
