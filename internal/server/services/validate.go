// Package services implements the application services: account management,
// the breach check orchestrator, monitored-email management, and the
// dashboard aggregation. Services own transactions; repositories stay
// handle-agnostic via dbx.DBTX.
package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sentinelx/breachwatch/internal/common"
)

var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// NormalizeEmail trims and lowercases the address and rejects anything that
// does not look like an email.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegexp.MatchString(email) {
		return "", fmt.Errorf("%w: invalid email address", common.ErrorValidation)
	}
	return email, nil
}
