// Package models holds the persistence-facing models shared by repositories
// and services.
package models

import (
	"time"

	"github.com/sentinelx/breachwatch/internal/breach"
)

// CheckResult is the scored outcome of one breach check for an email. It is
// stored as the latest result per email (overwriting the prior one) and is
// the unit the delta detector compares against.
type CheckResult struct {
	Email           string              `json:"email"`
	BreachCount     int                 `json:"breach_count"`
	Breaches        []breach.Record     `json:"breaches"`
	RiskScore       int                 `json:"risk_score"`
	RiskCategory    breach.RiskCategory `json:"risk_category"`
	Recommendations []string            `json:"recommendations"`
	CheckedAt       time.Time           `json:"checked_at"`
}

// CheckOutcome is what a check invocation returns to callers: the result
// plus the delta and side-effect flags attached by the orchestrator.
type CheckOutcome struct {
	CheckResult
	NewBreachDetected bool            `json:"new_breach_detected"`
	NewBreaches       []breach.Record `json:"new_breaches,omitempty"`
	AlertCreated      bool            `json:"alert_created"`
	Persisted         bool            `json:"persisted"`
}
