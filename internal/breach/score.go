package breach

import (
	"strings"
	"time"
)

// RiskCategory buckets a risk score.
type RiskCategory string

const (
	RiskLow    RiskCategory = "Low"
	RiskMedium RiskCategory = "Medium"
	RiskHigh   RiskCategory = "High"
)

// Severity weights, ordered by the most sensitive category present in a
// breach: financial data outranks passwords, which outrank bare username
// exposure; an email-address-only breach carries the smallest weight.
const (
	weightFinancial = 35
	weightPassword  = 25
	weightUsername  = 15
	weightOther     = 10
	weightEmailOnly = 5

	// flat per-breach contribution, independent of categories
	baseWeight = 10
)

const (
	lowMax    = 30
	mediumMax = 70
)

// Score computes a deterministic risk score in [0,100] for an ordered set of
// records. now is the reference time for recency bonuses, passed explicitly
// so the function stays pure.
//
// Each breach contributes (base + severity + recency) scaled by a factor
// that shrinks with its position, so many low-grade breaches approach
// saturation slowly instead of trivially maxing out the score.
func Score(records []Record, now time.Time) int {
	total := 0
	for i, r := range records {
		contribution := baseWeight + severityWeight(r.DataExposed) + recencyBonus(r.BreachDate, now)
		total += contribution * 100 / (100 + 20*i)
	}
	if total > 100 {
		total = 100
	}
	return total
}

// Category maps a score to its risk bucket: [0,30] Low, (30,70] Medium,
// (70,100] High.
func Category(score int) RiskCategory {
	switch {
	case score <= lowMax:
		return RiskLow
	case score <= mediumMax:
		return RiskMedium
	default:
		return RiskHigh
	}
}

func severityWeight(categories []string) int {
	lowered := make([]string, len(categories))
	for i, c := range categories {
		lowered[i] = strings.ToLower(c)
	}

	containsAny := func(subs ...string) bool {
		for _, c := range lowered {
			for _, s := range subs {
				if strings.Contains(c, s) {
					return true
				}
			}
		}
		return false
	}

	switch {
	case containsAny("financial", "credit", "bank", "social security"):
		return weightFinancial
	case containsAny("password"):
		return weightPassword
	case containsAny("username"):
		return weightUsername
	case len(lowered) == 1 && strings.Contains(lowered[0], "email"):
		return weightEmailOnly
	default:
		return weightOther
	}
}

// recencyBonus rewards fresh breaches. The unknown-date sentinel and
// unparseable dates contribute nothing, neither bonus nor penalty.
func recencyBonus(breachDate string, now time.Time) int {
	if breachDate == UnknownDate {
		return 0
	}
	parsed, err := time.Parse("2006-01-02", breachDate)
	if err != nil {
		return 0
	}
	age := now.Year() - parsed.Year()
	if age < 0 {
		age = 0
	}
	switch {
	case age <= 1:
		return 20
	case age <= 3:
		return 10
	case age <= 5:
		return 5
	default:
		return 0
	}
}
