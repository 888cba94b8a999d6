package models

import (
	"time"

	"github.com/sentinelx/breachwatch/internal/breach"
)

// Alert dispatch statuses. An alert row is written either way; the status
// records whether the outbound email actually went out.
const (
	AlertStatusSent   = "sent"
	AlertStatusLogged = "logged"
)

// AlertEvent is a durable record that a monitored email's breach set grew.
// Immutable once created.
type AlertEvent struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	CreatedAt      time.Time       `json:"created_at"`
	NewBreachCount int             `json:"new_breach_count"`
	Breaches       []breach.Record `json:"breaches"`
	Status         string          `json:"status"`
}
