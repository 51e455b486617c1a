package extract

import (
	"sort"
	"strings"
)

// dedupe collapses candidates whose lowercased names overlap: a new candidate
// is dropped when an already-accepted name equals it, contains it, or is
// contained by it. The earliest-generated candidate wins, so generation order
// defines the representative.
func dedupe(candidates []Candidate) []Candidate {
	unique := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		lower := strings.ToLower(c.Name)
		duplicate := false
		for _, kept := range unique {
			keptLower := strings.ToLower(kept.Name)
			if strings.Contains(lower, keptLower) || strings.Contains(keptLower, lower) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, c)
		}
	}
	return unique
}

// rank orders candidates by descending score, stable so equal scores keep
// their generation order, and truncates to the top three.
func rank(candidates []Candidate) []Candidate {
	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > maxBusinessNames {
		ranked = ranked[:maxBusinessNames]
	}
	return ranked
}
