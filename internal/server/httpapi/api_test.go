package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinelx/breachwatch/internal/common"
	"github.com/sentinelx/breachwatch/internal/logging"
	"github.com/sentinelx/breachwatch/internal/server/auth"
	"github.com/sentinelx/breachwatch/internal/server/models"
)

var testSecret = []byte("test-secret")

type fakeAccounts struct {
	registerErr error
	loginToken  string
	loginErr    error
}

func (f *fakeAccounts) Register(ctx context.Context, email string, password string) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{ID: "u-1", Email: email}, nil
}

func (f *fakeAccounts) Login(ctx context.Context, email string, password string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.loginToken, nil
}

type fakeChecker struct {
	outcome *models.CheckOutcome
	err     error
}

func (f *fakeChecker) Check(ctx context.Context, email string) (*models.CheckOutcome, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.outcome, nil
}

type fakeWatchList struct {
	lastUserID string
	addErr     error
	removeErr  error
	entries    []*models.MonitoredEmail
	alerts     []*models.AlertEvent
}

func (f *fakeWatchList) Add(ctx context.Context, userID string, email string) (*models.MonitoredEmail, error) {
	f.lastUserID = userID
	if f.addErr != nil {
		return nil, f.addErr
	}
	return &models.MonitoredEmail{UserID: userID, Email: email, Active: true}, nil
}

func (f *fakeWatchList) Remove(ctx context.Context, userID string, email string) error {
	f.lastUserID = userID
	return f.removeErr
}

func (f *fakeWatchList) List(ctx context.Context, userID string) ([]*models.MonitoredEmail, error) {
	f.lastUserID = userID
	return f.entries, nil
}

func (f *fakeWatchList) ListAlerts(ctx context.Context, userID string) ([]*models.AlertEvent, error) {
	f.lastUserID = userID
	return f.alerts, nil
}

type fakeDashboards struct {
	dashboard *models.Dashboard
	err       error
}

func (f *fakeDashboards) Dashboard(ctx context.Context, email string) (*models.Dashboard, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.dashboard, nil
}

type apiFakes struct {
	accounts  *fakeAccounts
	checker   *fakeChecker
	watchlist *fakeWatchList
	dashboard *fakeDashboards
}

func newTestAPI(t *testing.T) (*httptest.Server, *apiFakes) {
	t.Helper()

	fakes := &apiFakes{
		accounts:  &fakeAccounts{},
		checker:   &fakeChecker{outcome: &models.CheckOutcome{}},
		watchlist: &fakeWatchList{},
		dashboard: &fakeDashboards{dashboard: &models.Dashboard{}},
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	api := NewAPI(fakes.accounts, fakes.checker, fakes.watchlist, fakes.dashboard, testSecret, logger)

	srv := httptest.NewServer(api.Routes())
	t.Cleanup(srv.Close)
	return srv, fakes
}

func bearerToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, testSecret, time.Minute)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, method, url, body, authHeader string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if authHeader != "" {
		req.Header.Set(common.AuthorizationHeaderName, authHeader)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestAPI(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/healthz", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestRegister_Created(t *testing.T) {
	srv, _ := newTestAPI(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/register",
		`{"email":"alice@example.com","password":"correct horse"}`, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body registerResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "u-1", body.ID)
	assert.Equal(t, "alice@example.com", body.Email)
}

func TestRegister_Conflict(t *testing.T) {
	srv, fakes := newTestAPI(t)
	fakes.accounts.registerErr = common.ErrorAlreadyExists

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/register",
		`{"email":"alice@example.com","password":"correct horse"}`, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegister_BadBody(t *testing.T) {
	srv, _ := newTestAPI(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/register", `{broken`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin_ReturnsToken(t *testing.T) {
	srv, fakes := newTestAPI(t)
	fakes.accounts.loginToken = "tok-123"

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/login",
		`{"email":"alice@example.com","password":"correct horse"}`, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body loginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "tok-123", body.AccessToken)
}

func TestLogin_Unauthorized(t *testing.T) {
	srv, fakes := newTestAPI(t)
	fakes.accounts.loginErr = common.ErrorUnauthorized

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/login",
		`{"email":"alice@example.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCheckEmail_ReturnsOutcome(t *testing.T) {
	srv, fakes := newTestAPI(t)
	fakes.checker.outcome = &models.CheckOutcome{
		CheckResult: models.CheckResult{Email: "alice@example.com", RiskScore: 35},
		Persisted:   true,
	}

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/check-email",
		`{"email":"alice@example.com"}`, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.CheckOutcome
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 35, body.RiskScore)
	assert.True(t, body.Persisted)
}

func TestCheckEmail_ValidationError(t *testing.T) {
	srv, fakes := newTestAPI(t)
	fakes.checker.err = common.ErrorValidation

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/check-email",
		`{"email":"not-an-email"}`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDashboard(t *testing.T) {
	srv, fakes := newTestAPI(t)
	fakes.dashboard.dashboard = &models.Dashboard{Email: "alice@example.com", Monitored: true}

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/dashboard?email=alice@example.com", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.Dashboard
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Monitored)
}

func TestUserRoutes_RequireAuth(t *testing.T) {
	srv, _ := newTestAPI(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/user/emails", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/user/emails", "", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUserEmails_ListWithToken(t *testing.T) {
	srv, fakes := newTestAPI(t)
	fakes.watchlist.entries = []*models.MonitoredEmail{{Email: "alice@example.com", Active: true}}

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/user/emails", "", bearerToken(t, "u-42"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "u-42", fakes.watchlist.lastUserID)

	var body []*models.MonitoredEmail
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "alice@example.com", body[0].Email)
}

func TestUserEmails_Add(t *testing.T) {
	srv, fakes := newTestAPI(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/user/emails",
		`{"email":"alice@example.com"}`, bearerToken(t, "u-42"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "u-42", fakes.watchlist.lastUserID)
}

func TestUserEmails_Remove(t *testing.T) {
	srv, _ := newTestAPI(t)

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/user/emails",
		`{"email":"alice@example.com"}`, bearerToken(t, "u-42"))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestUserEmails_RemoveNotFound(t *testing.T) {
	srv, fakes := newTestAPI(t)
	fakes.watchlist.removeErr = common.ErrorNotFound

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/user/emails",
		`{"email":"ghost@example.com"}`, bearerToken(t, "u-42"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUserAlerts_EmptyIsJSONArray(t *testing.T) {
	srv, _ := newTestAPI(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/user/alerts", "", bearerToken(t, "u-42"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(raw)))
}
