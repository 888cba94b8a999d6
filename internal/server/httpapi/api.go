// Package httpapi exposes the REST surface: account registration and login,
// ad-hoc breach checks, the dashboard view, and the authenticated watch-list
// and alert endpoints.
package httpapi

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sentinelx/breachwatch/internal/logging"
	"github.com/sentinelx/breachwatch/internal/server/models"
	"github.com/sentinelx/breachwatch/internal/server/services"
)

// Accounts is the account-facing slice of the user service.
type Accounts interface {
	Register(ctx context.Context, email string, password string) (*models.User, error)
	Login(ctx context.Context, email string, password string) (string, error)
}

// WatchList is the monitored-email slice used by the user-scoped routes.
type WatchList interface {
	Add(ctx context.Context, userID string, email string) (*models.MonitoredEmail, error)
	Remove(ctx context.Context, userID string, email string) error
	List(ctx context.Context, userID string) ([]*models.MonitoredEmail, error)
	ListAlerts(ctx context.Context, userID string) ([]*models.AlertEvent, error)
}

// Dashboards aggregates stored state for one address.
type Dashboards interface {
	Dashboard(ctx context.Context, email string) (*models.Dashboard, error)
}

type API struct {
	accounts  Accounts
	checker   services.Checker
	watchlist WatchList
	dashboard Dashboards
	secretKey []byte
	logger    logging.Logger
}

func NewAPI(accounts Accounts, checker services.Checker, watchlist WatchList, dashboard Dashboards, secretKey []byte, logger logging.Logger) *API {
	return &API{
		accounts:  accounts,
		checker:   checker,
		watchlist: watchlist,
		dashboard: dashboard,
		secretKey: secretKey,
		logger:    logger.With("module", "httpapi"),
	}
}

// Routes mounts all endpoints on a fresh router.
func (a *API) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", a.handleHealthz)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", a.handleRegister)
		r.Post("/login", a.handleLogin)
		r.Post("/check-email", a.handleCheckEmail)
		r.Get("/dashboard", a.handleDashboard)

		r.Route("/user", func(r chi.Router) {
			r.Use(a.requireAuth)
			r.Get("/emails", a.handleListEmails)
			r.Post("/emails", a.handleAddEmail)
			r.Delete("/emails", a.handleRemoveEmail)
			r.Get("/alerts", a.handleListAlerts)
		})
	})

	return r
}
