package models

// Dashboard aggregates everything known about one address: the latest stored
// check (nil when never checked), its alert history, and whether anyone is
// actively monitoring it.
type Dashboard struct {
	Email     string        `json:"email"`
	Latest    *CheckResult  `json:"latest,omitempty"`
	Alerts    []*AlertEvent `json:"alerts"`
	Monitored bool          `json:"monitored"`
}
