package extract

// Level is a coarse reliability label derived from the confidence score.
type Level string

const (
	LevelHigh   Level = "High"
	LevelMedium Level = "Medium"
	LevelLow    Level = "Low"
)

// Confidence carries per-field reliability labels for one extraction.
type Confidence struct {
	BusinessName Level `json:"business_name"`
	Address      Level `json:"address"`
	Phone        Level `json:"phone"`
}

// ConfidenceScore derives the composite confidence from the OCR detection
// count, the business-name yield and the full-text token count. The result is
// always within [0.5, 0.95].
func ConfidenceScore(detectionCount, nameCount, tokenCount int) float64 {
	score := 0.5
	if detectionCount > 5 {
		score += 0.1
	}
	if detectionCount > 10 {
		score += 0.1
	}
	if nameCount > 0 {
		score += 0.2
	}
	if nameCount > 1 {
		score += 0.1
	}
	if tokenCount >= 5 {
		score += 0.1
	}
	if score > 0.95 {
		score = 0.95
	}
	return score
}

// Levels maps the composite score to the three per-field labels. Addresses
// and phones come from looser regex matches, so their labels are derived from
// a discounted score.
func Levels(score float64) Confidence {
	return Confidence{
		BusinessName: levelFor(score),
		Address:      levelFor(score * 0.8),
		Phone:        levelFor(score * 0.7),
	}
}

func levelFor(score float64) Level {
	switch {
	case score > 0.7:
		return LevelHigh
	case score > 0.5:
		return LevelMedium
	default:
		return LevelLow
	}
}
