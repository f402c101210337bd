package seen

import "strings"

// DiffStats captures stats for A-B unseen filtering.
type DiffStats struct {
	TotalNew    int
	TotalSeen   int
	InvalidNew  int
	InvalidSeen int
	Unseen      int
}

// InvalidSkipped returns the total invalid records skipped during comparison.
func (s DiffStats) InvalidSkipped() int {
	return s.InvalidNew + s.InvalidSeen
}

// MergeStats captures stats for seen history updates.
type MergeStats struct {
	TotalSeen    int
	TotalInput   int
	InvalidSeen  int
	InvalidInput int
	Added        int
	TotalOut     int
}

// InvalidSkipped returns the total invalid records skipped during merge.
func (s MergeStats) InvalidSkipped() int {
	return s.InvalidSeen + s.InvalidInput
}

// Key normalizes a URN for comparison. URNs are case-sensitive, so only
// surrounding whitespace is dropped.
func Key(urn string) (string, bool) {
	key := strings.TrimSpace(urn)
	return key, key != ""
}

// Diff returns URNs from newURNs that are not in seenURNs, in input order.
func Diff(newURNs []string, seenURNs []string) ([]string, DiffStats) {
	stats := DiffStats{
		TotalNew:  len(newURNs),
		TotalSeen: len(seenURNs),
	}

	seenKeys := make(map[string]struct{}, len(seenURNs))
	for _, urn := range seenURNs {
		key, ok := Key(urn)
		if !ok {
			stats.InvalidSeen++
			continue
		}
		seenKeys[key] = struct{}{}
	}

	newKeys := make(map[string]struct{}, len(newURNs))
	unseen := make([]string, 0, len(newURNs))
	for _, urn := range newURNs {
		key, ok := Key(urn)
		if !ok {
			stats.InvalidNew++
			continue
		}
		if _, exists := newKeys[key]; exists {
			continue
		}
		newKeys[key] = struct{}{}
		if _, exists := seenKeys[key]; exists {
			continue
		}
		unseen = append(unseen, key)
	}

	stats.Unseen = len(unseen)
	return unseen, stats
}

// Merge appends unique new URNs to the seen history.
// Existing entries keep their position.
func Merge(existingSeen []string, input []string) ([]string, MergeStats) {
	stats := MergeStats{
		TotalSeen:  len(existingSeen),
		TotalInput: len(input),
	}

	keys := make(map[string]struct{}, len(existingSeen)+len(input))
	out := make([]string, 0, len(existingSeen)+len(input))

	for _, urn := range existingSeen {
		key, ok := Key(urn)
		if !ok {
			stats.InvalidSeen++
			continue
		}
		if _, exists := keys[key]; exists {
			continue
		}
		keys[key] = struct{}{}
		out = append(out, key)
	}

	for _, urn := range input {
		key, ok := Key(urn)
		if !ok {
			stats.InvalidInput++
			continue
		}
		if _, exists := keys[key]; exists {
			continue
		}
		keys[key] = struct{}{}
		out = append(out, key)
		stats.Added++
	}

	stats.TotalOut = len(out)
	return out, stats
}
