// Package breach implements the core breach-intelligence engine: raw feed
// normalization, deterministic risk scoring, remediation recommendations,
// and the delta check deciding whether a result contains newly observed
// breaches.
package breach

import (
	"encoding/json"
	"strings"
)

// UnknownDate is the sentinel used when a source does not report a usable
// breach date. Scoring treats it as neutral.
const UnknownDate = "unknown"

// Record is the canonical shape of one breach incident for an email address.
// DataExposed is never empty and contains no duplicates.
type Record struct {
	Name        string   `json:"name"`
	BreachDate  string   `json:"breach_date"`
	DataExposed []string `json:"data_exposed"`
}

// RawEntry is one entry as delivered by a breach source. Feeds are
// heterogeneous: an entry may be a bare string (name only), a legacy partial
// object, or a full record with either HIBP-style or catalog-style keys.
// The union stops here; Normalize converts it to Record and nothing outside
// this package ever sees a RawEntry again.
type RawEntry struct {
	Name        string
	BreachDate  string
	DataExposed []string
}

func (e *RawEntry) UnmarshalJSON(b []byte) error {
	// bare string form: the whole entry is the breach name
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*e = RawEntry{Name: s}
		return nil
	}

	var obj struct {
		Name        string   `json:"Name"`
		LowerName   string   `json:"name"`
		Title       string   `json:"Title"`
		BreachDate  string   `json:"BreachDate"`
		LowerDate   string   `json:"breach_date"`
		DataClasses []string `json:"DataClasses"`
		DataExposed []string `json:"data_exposed"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}

	e.Name = firstNonEmpty(obj.Name, obj.LowerName, obj.Title)
	e.BreachDate = firstNonEmpty(obj.BreachDate, obj.LowerDate)
	e.DataExposed = obj.DataClasses
	if len(e.DataExposed) == 0 {
		e.DataExposed = obj.DataExposed
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// defaultExposed is substituted when a source omits category detail.
var defaultExposed = []string{"Email addresses", "Passwords"}

// sourceOverrides fixes up sources whose raw feed omits category detail but
// whose exposed categories are known out-of-band. Keyed by lowercased breach
// name; the override wins over whatever the feed supplied.
var sourceOverrides = map[string][]string{
	"railyatri": {"Email addresses", "Genders", "Names", "Phone numbers", "Purchases"},
}

// Normalize converts raw source entries into canonical Records. No entry is
// ever dropped: missing or malformed fields degrade to defaults. Output
// order preserves input order.
func Normalize(entries []RawEntry) []Record {
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, normalizeOne(e))
	}
	return records
}

func normalizeOne(e RawEntry) Record {
	name := e.Name
	if name == "" {
		name = "Unknown"
	}

	date := e.BreachDate
	if date == "" || strings.EqualFold(date, "N/A") {
		date = UnknownDate
	}

	exposed := dedupe(e.DataExposed)
	if len(exposed) == 0 || (len(exposed) == 1 && strings.EqualFold(exposed[0], "N/A")) {
		exposed = append([]string(nil), defaultExposed...)
	}
	if override, ok := sourceOverrides[strings.ToLower(name)]; ok {
		exposed = append([]string(nil), override...)
	}

	return Record{Name: name, BreachDate: date, DataExposed: exposed}
}

// dedupe removes duplicate category strings, keeping first-occurrence order.
// Unknown categories pass through verbatim.
func dedupe(categories []string) []string {
	seen := make(map[string]struct{}, len(categories))
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
