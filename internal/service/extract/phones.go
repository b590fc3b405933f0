package extract

import "regexp"

// phonePatterns are tried independently, in order. Matches are unioned and
// deduplicated by literal string identity only: the same number written in
// two formats yields two entries.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`), // international
	regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`),                 // (123) 456-7890
	regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`),                 // 123-456-7890
	regexp.MustCompile(`\d{5}\s\d{6}`),                                  // UK
}

// Phones extracts phone-number-like strings from page text.
func Phones(text string) []string {
	seen := make(map[string]struct{})
	phones := make([]string, 0)

	for _, pattern := range phonePatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			if _, dup := seen[match]; dup {
				continue
			}
			seen[match] = struct{}{}
			phones = append(phones, match)
		}
	}
	return phones
}
