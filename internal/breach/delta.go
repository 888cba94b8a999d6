package breach

// DetectNew compares the breach-name set of the current result against the
// previously stored one and reports whether at least one breach appears now
// that was absent before, together with the added records.
//
// hasPrevious=false means "first check ever" for this email: any breach at
// all counts as new. A breach disappearing from the feed is not an event,
// and the comparison is a set difference over names rather than a count
// comparison, so a simultaneous removal and addition still fires.
func DetectNew(current []Record, previous []Record, hasPrevious bool) (bool, []Record) {
	if !hasPrevious {
		if len(current) == 0 {
			return false, nil
		}
		return true, append([]Record(nil), current...)
	}

	prevNames := make(map[string]struct{}, len(previous))
	for _, r := range previous {
		prevNames[r.Name] = struct{}{}
	}

	var added []Record
	for _, r := range current {
		if _, ok := prevNames[r.Name]; !ok {
			added = append(added, r)
		}
	}
	return len(added) > 0, added
}
