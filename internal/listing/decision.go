package listing

import (
	"strings"

	"shopscan/internal/extract"
)

// Decision gates the workflow after extraction.
type Decision string

const (
	// DecisionAutoProceed means the top name is trustworthy enough to search
	// for without asking the user.
	DecisionAutoProceed Decision = "auto_proceed"

	// DecisionConfirm means the user must confirm or correct the name first.
	DecisionConfirm Decision = "confirm"
)

// genericTerms are common nouns too vague to identify a business on their own.
var genericTerms = []string{"business", "company", "store", "shop"}

// genericNameMaxLength: a short name made of a generic term carries no real
// identity; longer names that merely contain one usually do.
const genericNameMaxLength = 10

// IsGenericName reports whether name is too vague to trust without
// confirmation.
func IsGenericName(name string) bool {
	if len(name) >= genericNameMaxLength {
		return false
	}
	lower := strings.ToLower(name)
	for _, term := range genericTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// Decide maps the extraction signals to a workflow decision: confirm on low
// confidence, an empty name list, or a generic top name; auto-proceed
// otherwise.
func Decide(names []string, confidence extract.Confidence) Decision {
	if len(names) == 0 {
		return DecisionConfirm
	}
	if confidence.BusinessName == extract.LevelLow {
		return DecisionConfirm
	}
	if IsGenericName(names[0]) {
		return DecisionConfirm
	}
	return DecisionAutoProceed
}
