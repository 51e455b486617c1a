package extract

import "strings"

// noiseWords are signage boilerplate; a line equal to one of them carries no
// naming information and is dropped.
var noiseWords = []string{
	"our", "menu", "hours", "open", "closed",
	"welcome", "visit", "call", "phone", "email",
}

// FilterLines trims every raw line and drops the ones that cannot contribute
// to a business name: empty or single-character lines, boilerplate words,
// URLs, emails, digit-only strings and lines without a Latin letter.
// Order is preserved.
func FilterLines(lines []string) []string {
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if keepLine(line) {
			filtered = append(filtered, line)
		}
	}
	return filtered
}

func keepLine(line string) bool {
	if len(line) <= 1 {
		return false
	}

	lower := strings.ToLower(line)
	for _, word := range noiseWords {
		if lower == word {
			return false
		}
	}

	if strings.HasPrefix(lower, "www") || strings.HasPrefix(lower, "http") {
		return false
	}
	if strings.Contains(line, "@") {
		return false
	}
	if digitsOnly(line) {
		return false
	}
	if line == "&" || line == "-" {
		return false
	}
	return hasLatinLetter(line)
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func hasLatinLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
