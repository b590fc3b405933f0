package extract

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nameSuffixPattern = regexp.MustCompile(`\s*[|-]\s*.+$`)

// BusinessName extracts a display name for the business. It tries the
// og:site_name meta tag, then og:title, then the <title> element, stripping
// any trailing "| ..." or "- ..." suffix from the first non-empty candidate.
// When none yields a name it derives one from the URL host, so the result
// is never empty.
func BusinessName(p *Page, rawURL string) string {
	candidates := []string{
		p.doc.Find(`meta[property="og:site_name"]`).First().AttrOr("content", ""),
		p.doc.Find(`meta[property="og:title"]`).First().AttrOr("content", ""),
		p.doc.Find("title").First().Text(),
	}

	for _, candidate := range candidates {
		name := strings.TrimSpace(candidate)
		if name == "" {
			continue
		}
		return nameSuffixPattern.ReplaceAllString(name, "")
	}
	return DomainName(rawURL)
}

// DomainName derives a display name from a URL's host: strip a leading
// "www.", take the first label, replace hyphens with spaces, title-case.
// Used both as the BusinessName fallback and for error records, and
// guaranteed non-empty.
func DomainName(rawURL string) string {
	host := ""
	if u, err := url.Parse(strings.TrimSpace(rawURL)); err == nil {
		host = u.Hostname()
	}
	if host == "" {
		// Bare host or unparseable input: take everything before the
		// first path separator.
		host = strings.SplitN(strings.TrimSpace(rawURL), "/", 2)[0]
	}

	host = strings.TrimPrefix(host, "www.")
	label := strings.SplitN(host, ".", 2)[0]
	// Casers carry internal state, so build one per call.
	name := cases.Title(language.English).String(strings.ReplaceAll(label, "-", " "))
	if strings.TrimSpace(name) == "" {
		return "unknown"
	}
	return name
}
