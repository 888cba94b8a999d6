package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sentinelx/breachwatch/internal/common"
	"github.com/sentinelx/breachwatch/internal/server/models"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type registerResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body", common.ErrorValidation)
	}
	return nil
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := a.accounts.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{ID: user.ID, Email: user.Email})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	token, err := a.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token})
}

func (a *API) handleCheckEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	outcome, err := a.checker.Check(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func (a *API) handleDashboard(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	dashboard, err := a.dashboard.Dashboard(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

func (a *API) handleListEmails(w http.ResponseWriter, r *http.Request) {
	entries, err := a.watchlist.List(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []*models.MonitoredEmail{}
	}

	writeJSON(w, http.StatusOK, entries)
}

func (a *API) handleAddEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	entry, err := a.watchlist.Add(r.Context(), userIDFromContext(r.Context()), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (a *API) handleRemoveEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := a.watchlist.Remove(r.Context(), userIDFromContext(r.Context()), req.Email); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := a.watchlist.ListAlerts(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	if alerts == nil {
		alerts = []*models.AlertEvent{}
	}

	writeJSON(w, http.StatusOK, alerts)
}
