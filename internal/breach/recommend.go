package breach

import "strings"

// Remediation texts, keyed by triggering category. The iteration order in
// Recommendations is fixed, so output is order-stable across runs.
const (
	recPassword  = "Reset password immediately and enable 2FA."
	recFinancial = "Monitor bank statements and card activity."
	recEmailOnly = "Beware of phishing attempts and suspicious emails."
	recReuse     = "Change passwords across platforms and avoid reuse."
	recGeneric   = "Review account security settings and enable 2FA where possible."
)

// Recommendations builds an ordered, deduplicated list of remediation texts
// from the union of exposed categories across all records. Priority order:
// password, financial, email-only, username+password combination. A result
// with breaches but no matched category gets the generic advice; no breaches
// means no recommendations.
func Recommendations(records []Record) []string {
	if len(records) == 0 {
		return nil
	}

	union := make(map[string]struct{})
	for _, r := range records {
		for _, c := range r.DataExposed {
			union[strings.ToLower(c)] = struct{}{}
		}
	}

	containsAny := func(subs ...string) bool {
		for c := range union {
			for _, s := range subs {
				if strings.Contains(c, s) {
					return true
				}
			}
		}
		return false
	}

	emailOnly := len(union) == 1 && containsAny("email")

	var out []string
	if containsAny("password") {
		out = append(out, recPassword)
	}
	if containsAny("financial", "credit", "bank") {
		out = append(out, recFinancial)
	}
	if emailOnly {
		out = append(out, recEmailOnly)
	}
	if containsAny("username") && containsAny("password") {
		out = append(out, recReuse)
	}
	if len(out) == 0 {
		out = append(out, recGeneric)
	}
	return out
}
