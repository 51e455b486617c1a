package extract

import (
	"regexp"
	"strings"
)

// Generator window limits.
const (
	contextWindowLines = 4
	contextMaxLength   = 50 // exclusive
	positionalLines    = 5
	singleLineMin      = 4
	singleLineMax      = 15
	twoLineMax         = 30
	threeLineMax       = 40
	patternWindowLines = 3
	patternMaxLength   = 35
)

// categoryGroups drive the context-indicator generator. A window is a
// candidate when its lowercased text contains every word of a group. Groups
// are checked in order and the first hit claims the window.
var categoryGroups = [][]string{
	{"coffee"},
	{"food", "park"},
	{"coffee", "shop"},
	{"restaurant"},
	{"market"},
	{"center"},
	{"plaza"},
	{"cafe"},
	{"grill"},
	{"bar"},
}

// shapePatterns drive the pattern generator: Proper-Case and ALL-CAPS word
// pairs and triples, checked in order with first match winning per window.
var shapePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+$`),
	regexp.MustCompile(`^[A-Z]+ [A-Z]+$`),
	regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+ [A-Z][a-z]+$`),
	regexp.MustCompile(`^[A-Z]+ [A-Z]+ [A-Z]+$`),
}

// contextCandidates scans sliding windows of one to four consecutive lines
// for co-occurrence of business-category keywords.
func contextCandidates(lines []string) []Candidate {
	var candidates []Candidate
	for i := range lines {
		for j := i + 1; j <= i+contextWindowLines && j <= len(lines); j++ {
			window := strings.Join(lines[i:j], " ")
			if len(window) >= contextMaxLength {
				continue
			}
			lower := strings.ToLower(window)
			for _, group := range categoryGroups {
				if containsAll(lower, group) {
					candidates = append(candidates, Candidate{Name: window, Strategy: StrategyContext})
					break
				}
			}
		}
	}
	return candidates
}

// positionalCandidates emits single-, two- and three-line concatenations from
// the top of the sign, where business names usually sit.
func positionalCandidates(lines []string) []Candidate {
	var candidates []Candidate
	limit := min(positionalLines, len(lines))
	for i := 0; i < limit; i++ {
		if n := len(lines[i]); n >= singleLineMin && n <= singleLineMax {
			candidates = append(candidates, Candidate{Name: lines[i], Strategy: StrategyPositional})
		}
		if i+1 < len(lines) {
			combined := lines[i] + " " + lines[i+1]
			if len(combined) <= twoLineMax {
				candidates = append(candidates, Candidate{Name: combined, Strategy: StrategyPositional})
			}
		}
		if i+2 < len(lines) {
			combined := lines[i] + " " + lines[i+1] + " " + lines[i+2]
			if len(combined) <= threeLineMax {
				candidates = append(candidates, Candidate{Name: combined, Strategy: StrategyPositional})
			}
		}
	}
	return candidates
}

// patternCandidates tests windows of one to three lines against the
// capitalization shapes a sign-painted business name tends to have.
func patternCandidates(lines []string) []Candidate {
	var candidates []Candidate
	for i := 0; i+1 < len(lines); i++ {
		for j := i + 1; j <= i+patternWindowLines && j <= len(lines); j++ {
			window := strings.Join(lines[i:j], " ")
			if len(window) > patternMaxLength {
				continue
			}
			for _, re := range shapePatterns {
				if re.MatchString(window) {
					candidates = append(candidates, Candidate{Name: window, Strategy: StrategyPattern})
					break
				}
			}
		}
	}
	return candidates
}

func containsAll(s string, words []string) bool {
	for _, word := range words {
		if !strings.Contains(s, word) {
			return false
		}
	}
	return true
}
