package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

var (
	emailCandidatePattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	emailStrictPattern    = regexp.MustCompile(`(?i)^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
)

// Emails extracts valid email addresses from page text. Common obfuscation
// (" [at] ", " [dot] ") is normalized before matching, trailing punctuation
// is stripped, and only candidates that pass full syntax validation are
// kept. The result is deduplicated, in first-seen order.
func Emails(text string) []string {
	text = strings.ReplaceAll(text, " [at] ", "@")
	text = strings.ReplaceAll(text, " [dot] ", ".")

	seen := make(map[string]struct{})
	emails := make([]string, 0)

	for _, match := range emailCandidatePattern.FindAllString(text, -1) {
		email := strings.Trim(match, ".,")
		if !ValidEmail(email) {
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		emails = append(emails, email)
	}
	return emails
}

// ValidEmail reports whether a candidate passes full address-syntax
// validation, including a punycode check on the domain.
func ValidEmail(email string) bool {
	if !emailStrictPattern.MatchString(email) {
		return false
	}
	parts := strings.SplitN(email, "@", 2)
	domain := strings.ToLower(parts[1])
	if !isDomainValid(domain) {
		return false
	}
	ascii, err := idna.Lookup.ToASCII(domain)
	return err == nil && ascii != ""
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}
