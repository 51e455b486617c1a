package extract

import "regexp"

// Field extraction patterns. These run over the raw OCR text blob, before
// line filtering, so matches split across odd line breaks are still found.
var (
	// addressRegexp matches "<number> <words> <street suffix>".
	addressRegexp = regexp.MustCompile(`(?i)\b\d+\s+(?:[A-Za-z]+\s+)+(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Way|Court|Ct)\b`)

	// phoneRegexp matches North-American numbers with optional +1 prefix,
	// parenthesized area code, and space/dot/hyphen separators.
	phoneRegexp = regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

	// websiteRegexp matches hostnames with an optional scheme or www prefix.
	websiteRegexp = regexp.MustCompile(`(?i)\b(?:https?://)?(?:www\.)?[a-z0-9][a-z0-9-]+\.[a-z]{2,}\b`)

	emailRegexp = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

// ExtractAddresses returns every street-address-shaped match in text, in
// order of appearance. The result is empty, never nil, when nothing matches.
func ExtractAddresses(text string) []string {
	return matchAll(addressRegexp, text)
}

// ExtractPhoneNumbers returns every North-American phone match in text.
func ExtractPhoneNumbers(text string) []string {
	return matchAll(phoneRegexp, text)
}

// ExtractWebsites returns every hostname-shaped match in text.
func ExtractWebsites(text string) []string {
	return matchAll(websiteRegexp, text)
}

// ExtractEmails returns every email-shaped match in text.
func ExtractEmails(text string) []string {
	return matchAll(emailRegexp, text)
}

func matchAll(re *regexp.Regexp, text string) []string {
	matches := re.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}
