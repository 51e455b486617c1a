// Package extract infers business listing details from raw storefront OCR text.
//
// The pipeline is a pure function of text in, ranked data out: raw OCR lines
// are cleaned, three independent strategies propose business-name candidates,
// each candidate is scored, overlapping candidates are collapsed, and the top
// three names are returned together with regex-extracted contact fields and a
// composite confidence estimate.
//
// Nothing in this package performs I/O or holds state across calls; the fixed
// keyword and pattern tables are read-only, so concurrent use is safe.
//
// The keyword tables are hand-tuned and order-sensitive: generators and the
// scorer take the first matching entry, so reordering a table changes the
// ranking behavior.
package extract

import "strings"

// maxBusinessNames bounds the ranked name list handed to the caller.
const maxBusinessNames = 3

// Strategy identifies which generator proposed a candidate.
type Strategy string

const (
	// StrategyContext marks candidates found via business-category keywords.
	StrategyContext Strategy = "context"

	// StrategyPositional marks candidates taken from the top of the sign.
	StrategyPositional Strategy = "positional"

	// StrategyPattern marks candidates matching capitalization shapes.
	StrategyPattern Strategy = "pattern"
)

// Candidate is one proposed business name. Generators emit candidates with a
// zero score; the scorer assigns Score exactly once.
type Candidate struct {
	Name     string   `json:"name"`
	Strategy Strategy `json:"strategy"`
	Score    float64  `json:"score"`
}

// ExtractedText is the structured result of one extraction call.
type ExtractedText struct {
	// BusinessNames holds at most three names, highest score first. No entry
	// is a case-insensitive substring of another.
	BusinessNames []string `json:"business_names"`

	Addresses    []string `json:"addresses"`
	PhoneNumbers []string `json:"phone_numbers"`
	Websites     []string `json:"websites"`
	Emails       []string `json:"emails"`

	// OtherText holds raw lines that carried no phone, website or email match.
	OtherText []string `json:"other_text"`

	Confidence Confidence `json:"confidence"`
}

// FromText runs the full extraction pipeline over one OCR full-text blob.
// detectionCount is the number of raw OCR detections behind the blob and
// feeds the confidence estimate. The result is never nil.
func FromText(fullText string, detectionCount int) *ExtractedText {
	lines := FilterLines(strings.Split(fullText, "\n"))

	candidates := generateCandidates(lines)
	for i := range candidates {
		candidates[i].Score = scoreName(candidates[i].Name, candidatePosition(candidates[i].Name, lines))
	}

	ranked := rank(dedupe(candidates))
	names := make([]string, 0, len(ranked))
	for _, c := range ranked {
		names = append(names, c.Name)
	}

	tokens := len(strings.Fields(fullText))
	score := ConfidenceScore(detectionCount, len(names), tokens)

	return &ExtractedText{
		BusinessNames: names,
		Addresses:     ExtractAddresses(fullText),
		PhoneNumbers:  ExtractPhoneNumbers(fullText),
		Websites:      ExtractWebsites(fullText),
		Emails:        ExtractEmails(fullText),
		OtherText:     otherText(fullText),
		Confidence:    Levels(score),
	}
}

// generateCandidates merges the three strategies in fixed order. Generation
// order matters: the deduplicator keeps the earliest of two overlapping
// candidates.
func generateCandidates(lines []string) []Candidate {
	var all []Candidate
	all = append(all, contextCandidates(lines)...)
	all = append(all, positionalCandidates(lines)...)
	all = append(all, patternCandidates(lines)...)
	return all
}

// otherText keeps the trimmed non-empty raw lines that no phone, website or
// email pattern matched, in original order.
func otherText(fullText string) []string {
	other := make([]string, 0)
	for _, line := range strings.Split(fullText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if phoneRegexp.MatchString(line) || websiteRegexp.MatchString(line) || emailRegexp.MatchString(line) {
			continue
		}
		other = append(other, line)
	}
	return other
}
