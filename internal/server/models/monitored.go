package models

import "time"

// MonitoredEmail is an address a user asked the scheduler to keep watching.
type MonitoredEmail struct {
	UserID    string    `json:"-"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
