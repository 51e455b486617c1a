package extract

import (
	"regexp"
	"strings"
)

// keywordPoints pairs a business-category keyword with its score bonus.
type keywordPoints struct {
	keyword string
	points  float64
}

// scoringKeywords is checked in order and only the first contained keyword
// counts. The table is hand-tuned; its order is part of the ranking behavior.
var scoringKeywords = []keywordPoints{
	{"coffee", 7},
	{"food park", 8},
	{"coffee shop", 7},
	{"restaurant", 6},
	{"market", 5},
	{"center", 4},
	{"plaza", 4},
	{"cafe", 5},
	{"grill", 5},
	{"bar", 4},
}

// allCapsRegexp matches names written entirely in capitals and sign
// punctuation, a strong signal for painted storefront names.
var allCapsRegexp = regexp.MustCompile(`^[A-Z\s&\-'.]+$`)

// scoreName assigns a candidate its score from position, word count,
// capitalization shape, category keywords and length. Pure and deterministic;
// never negative.
func scoreName(name string, position int) float64 {
	var score float64

	// Earlier lines are more likely to carry the name.
	if p := 10 - position; p > 0 {
		score += float64(p)
	}

	words := strings.Fields(name)
	switch {
	case len(words) == 2:
		score += 5
	case len(words) == 3:
		score += 4
	case len(words) == 1 && len(name) > 4:
		score += 3
	}

	if name != "" && name[0] >= 'A' && name[0] <= 'Z' {
		score += 2
	}
	if allCapsRegexp.MatchString(name) {
		score += 3
	}

	lower := strings.ToLower(name)
	for _, kw := range scoringKeywords {
		if strings.Contains(lower, kw.keyword) {
			score += kw.points
			break
		}
	}

	if n := len(name); n >= 8 && n <= 25 {
		score += 3
	}
	if len(name) < 4 {
		score -= 3
	}
	if len(name) > 40 {
		score -= 5
	}

	if score < 0 {
		return 0
	}
	return score
}

// candidatePosition locates the first filtered line containing the
// candidate's first word. Candidates whose first word appears nowhere are
// treated as position 0.
func candidatePosition(name string, lines []string) int {
	words := strings.Fields(name)
	if len(words) == 0 {
		return 0
	}
	for i, line := range lines {
		if strings.Contains(line, words[0]) {
			return i
		}
	}
	return 0
}
