package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinelx/breachwatch/internal/common"
	"github.com/sentinelx/breachwatch/internal/server/models"
)

func TestMonitoredAdd_RunsBaselineCheck(t *testing.T) {
	db, _ := newMockDB(t)
	m := newFakeRepoManager()
	checker := &fakeChecker{}

	svc := NewMonitoredService(db, m, checker, testLogger())

	entry, err := svc.Add(context.Background(), "u-1", " Alice@Example.COM ")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", entry.Email)
	assert.True(t, entry.Active)
	assert.Equal(t, []string{"alice@example.com"}, checker.checked)
}

func TestMonitoredAdd_CheckFailureDoesNotFailAdd(t *testing.T) {
	db, _ := newMockDB(t)
	m := newFakeRepoManager()
	checker := &fakeChecker{err: errors.New("source down")}

	svc := NewMonitoredService(db, m, checker, testLogger())

	_, err := svc.Add(context.Background(), "u-1", "alice@example.com")
	require.NoError(t, err)
	require.Len(t, m.monitored.added, 1)
}

func TestMonitoredAdd_Duplicate(t *testing.T) {
	db, _ := newMockDB(t)
	m := newFakeRepoManager()
	m.monitored.addErr = common.ErrorAlreadyExists
	checker := &fakeChecker{}

	svc := NewMonitoredService(db, m, checker, testLogger())

	_, err := svc.Add(context.Background(), "u-1", "alice@example.com")
	assert.True(t, errors.Is(err, common.ErrorAlreadyExists))
	assert.Empty(t, checker.checked)
}

func TestMonitoredAdd_InvalidEmail(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewMonitoredService(db, newFakeRepoManager(), &fakeChecker{}, testLogger())

	_, err := svc.Add(context.Background(), "u-1", "not-an-email")
	assert.True(t, errors.Is(err, common.ErrorValidation))
}

func TestMonitoredRemove_LastWatcherDropsAlerts(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	m := newFakeRepoManager()
	m.monitored.watchers = 0

	svc := NewMonitoredService(db, m, &fakeChecker{}, testLogger())

	err := svc.Remove(context.Background(), "u-1", "alice@example.com")
	require.NoError(t, err)

	assert.Equal(t, []string{"alice@example.com"}, m.monitored.removed)
	assert.Equal(t, []string{"alice@example.com"}, m.alerts.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMonitoredRemove_OtherWatchersKeepAlerts(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	m := newFakeRepoManager()
	m.monitored.watchers = 1

	svc := NewMonitoredService(db, m, &fakeChecker{}, testLogger())

	err := svc.Remove(context.Background(), "u-1", "alice@example.com")
	require.NoError(t, err)

	assert.Equal(t, []string{"alice@example.com"}, m.monitored.removed)
	assert.Empty(t, m.alerts.deleted)
}

func TestMonitoredRemove_NotFoundRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	m := newFakeRepoManager()
	m.monitored.removeErr = common.ErrorNotFound

	svc := NewMonitoredService(db, m, &fakeChecker{}, testLogger())

	err := svc.Remove(context.Background(), "u-1", "ghost@example.com")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
	assert.Empty(t, m.alerts.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMonitoredListAlerts_AggregatesAcrossEmails(t *testing.T) {
	db, _ := newMockDB(t)
	m := newFakeRepoManager()
	m.monitored.byUser = []*models.MonitoredEmail{
		{UserID: "u-1", Email: "alice@example.com"},
		{UserID: "u-1", Email: "bob@example.com"},
	}
	m.alerts.byEmail["alice@example.com"] = []*models.AlertEvent{{ID: "a-1", Email: "alice@example.com"}}
	m.alerts.byEmail["bob@example.com"] = []*models.AlertEvent{{ID: "a-2", Email: "bob@example.com"}}

	svc := NewMonitoredService(db, m, &fakeChecker{}, testLogger())

	alerts, err := svc.ListAlerts(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "a-1", alerts[0].ID)
	assert.Equal(t, "a-2", alerts[1].ID)
}
