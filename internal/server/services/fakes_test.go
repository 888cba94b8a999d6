package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/sentinelx/breachwatch/internal/breach"
	"github.com/sentinelx/breachwatch/internal/common"
	"github.com/sentinelx/breachwatch/internal/dbx"
	"github.com/sentinelx/breachwatch/internal/logging"
	"github.com/sentinelx/breachwatch/internal/server/models"
	"github.com/sentinelx/breachwatch/internal/server/repositories/alerts"
	"github.com/sentinelx/breachwatch/internal/server/repositories/checks"
	"github.com/sentinelx/breachwatch/internal/server/repositories/monitored"
	"github.com/sentinelx/breachwatch/internal/server/repositories/users"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	created   *models.User
	createErr error
	byEmail   map[string]*models.User
}

func (f *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	user.ID = "u-1"
	f.created = user
	return user, nil
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

type fakeChecksRepo struct {
	lockErr error
	locked  []string
	latest  map[string]*models.CheckResult
	getErr  error
	saved   []*models.CheckResult
	saveErr error
}

func (f *fakeChecksRepo) Lock(ctx context.Context, email string) error {
	f.locked = append(f.locked, email)
	return f.lockErr
}

func (f *fakeChecksRepo) GetLatest(ctx context.Context, email string) (*models.CheckResult, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if r, ok := f.latest[email]; ok {
		return r, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeChecksRepo) Save(ctx context.Context, result *models.CheckResult) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, result)
	return nil
}

type fakeAlertsRepo struct {
	appended      []*models.AlertEvent
	appendErr     error
	statusUpdates map[string]string
	updateErr     error
	byEmail       map[string][]*models.AlertEvent
	listErr       error
	deleted       []string
	deleteErr     error
}

func (f *fakeAlertsRepo) Append(ctx context.Context, alert *models.AlertEvent) (*models.AlertEvent, error) {
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	alert.ID = "a-1"
	f.appended = append(f.appended, alert)
	return alert, nil
}

func (f *fakeAlertsRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.statusUpdates == nil {
		f.statusUpdates = map[string]string{}
	}
	f.statusUpdates[id] = status
	return nil
}

func (f *fakeAlertsRepo) ListByEmail(ctx context.Context, email string) ([]*models.AlertEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.byEmail[email], nil
}

func (f *fakeAlertsRepo) DeleteByEmail(ctx context.Context, email string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, email)
	return nil
}

type fakeMonitoredRepo struct {
	added     []*models.MonitoredEmail
	addErr    error
	removed   []string
	removeErr error
	byUser    []*models.MonitoredEmail
	listErr   error
	active    []string
	watchers  int64
}

func (f *fakeMonitoredRepo) Add(ctx context.Context, entry *models.MonitoredEmail) (*models.MonitoredEmail, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	entry.Active = true
	f.added = append(f.added, entry)
	return entry, nil
}

func (f *fakeMonitoredRepo) Remove(ctx context.Context, userID string, email string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, email)
	return nil
}

func (f *fakeMonitoredRepo) ListByUser(ctx context.Context, userID string) ([]*models.MonitoredEmail, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.byUser, nil
}

func (f *fakeMonitoredRepo) ListActive(ctx context.Context) ([]string, error) {
	return f.active, nil
}

func (f *fakeMonitoredRepo) CountWatchers(ctx context.Context, email string) (int64, error) {
	return f.watchers, nil
}

type fakeRepoManager struct {
	users     *fakeUsersRepo
	checks    *fakeChecksRepo
	alerts    *fakeAlertsRepo
	monitored *fakeMonitoredRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:     &fakeUsersRepo{byEmail: map[string]*models.User{}},
		checks:    &fakeChecksRepo{latest: map[string]*models.CheckResult{}},
		alerts:    &fakeAlertsRepo{byEmail: map[string][]*models.AlertEvent{}},
		monitored: &fakeMonitoredRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository { return m.users }

func (m *fakeRepoManager) Checks(db dbx.DBTX) checks.Repository { return m.checks }

func (m *fakeRepoManager) Alerts(db dbx.DBTX) alerts.Repository { return m.alerts }

func (m *fakeRepoManager) Monitored(db dbx.DBTX) monitored.Repository { return m.monitored }

type stubSource struct {
	entries []breach.RawEntry
	err     error
}

func (s *stubSource) Lookup(ctx context.Context, email string) ([]breach.RawEntry, error) {
	return s.entries, s.err
}

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) SendBreachAlert(ctx context.Context, to string, newBreaches []breach.Record) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakeChecker struct {
	checked []string
	err     error
}

func (f *fakeChecker) Check(ctx context.Context, email string) (*models.CheckOutcome, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.checked = append(f.checked, email)
	return &models.CheckOutcome{}, nil
}
