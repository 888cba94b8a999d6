// Package mailer delivers breach alert emails over SMTP. Delivery is
// best-effort: callers record whether the send succeeded but never fail the
// surrounding operation because of it.
package mailer

import (
	"context"

	"github.com/sentinelx/breachwatch/internal/breach"
)

type Mailer interface {
	// SendBreachAlert notifies the address that new breaches were detected
	// for it. The records are the newly added breaches only.
	SendBreachAlert(ctx context.Context, to string, newBreaches []breach.Record) error
}
