package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// addressPatterns match US-format and UK-format street addresses.
var addressPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+[a-zA-Z]?[\s,]+(?:[a-zA-Z]+[\s,]*)+(?:street|st|avenue|ave|road|rd|boulevard|blvd|lane|ln|drive|dr|way|court|ct|place|pl)[\s,]+(?:[a-zA-Z]+[\s,]*)+(?:AL|AK|AZ|AR|CA|CO|CT|DE|FL|GA|HI|ID|IL|IN|IA|KS|KY|LA|ME|MD|MA|MI|MN|MS|MO|MT|NE|NV|NH|NJ|NM|NY|NC|ND|OH|OK|OR|PA|RI|SC|SD|TN|TX|UT|VT|VA|WA|WV|WI|WY)[\s,]+\d{5}(?:-\d{4})?`),
	regexp.MustCompile(`(?i)\d+[a-zA-Z]?[\s,]+(?:[a-zA-Z]+[\s,]*)+(?:street|st|avenue|ave|road|rd|boulevard|blvd|lane|ln|drive|dr|way|court|ct|place|pl)[\s,]+(?:[a-zA-Z]+[\s,]*)+(?:[A-Z]{1,2}\d{1,2}\s\d[A-Z]{2})`),
}

var addressClassPattern = regexp.MustCompile(`(?i)address|location|contact`)

// jsonLDAddress mirrors the schema.org PostalAddress shape. The address can
// also be a plain string, which is handled separately.
type jsonLDAddress struct {
	StreetAddress   string `json:"streetAddress"`
	AddressLocality string `json:"addressLocality"`
	AddressRegion   string `json:"addressRegion"`
	PostalCode      string `json:"postalCode"`
}

// Address recovers a best-guess postal address. Precedence: embedded
// JSON-LD structured data, then the address regexes over the full page
// text, then the same regexes inside elements whose class hints at
// address/location/contact. Returns "" when nothing matches.
func Address(p *Page) string {
	if addr := addressFromJSONLD(p); addr != "" {
		return addr
	}

	for _, pattern := range addressPatterns {
		if match := pattern.FindString(p.Text); match != "" {
			return match
		}
	}

	found := ""
	p.doc.Find("div, p, address").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		class, ok := sel.Attr("class")
		if !ok || !addressClassPattern.MatchString(class) {
			return true
		}
		text := strings.TrimSpace(sel.Text())
		for _, pattern := range addressPatterns {
			if match := pattern.FindString(text); match != "" {
				found = match
				return false
			}
		}
		return true
	})
	return found
}

func addressFromJSONLD(p *Page) string {
	raw := p.doc.Find(`script[type="application/ld+json"]`).First().Text()
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	var payload struct {
		Address json.RawMessage `json:"address"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil || len(payload.Address) == 0 {
		return ""
	}

	var literal string
	if err := json.Unmarshal(payload.Address, &literal); err == nil {
		return literal
	}

	var structured jsonLDAddress
	if err := json.Unmarshal(payload.Address, &structured); err != nil {
		return ""
	}
	parts := make([]string, 0, 4)
	for _, part := range []string{structured.StreetAddress, structured.AddressLocality, structured.AddressRegion, structured.PostalCode} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}
