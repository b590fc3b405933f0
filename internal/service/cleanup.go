package service

import (
	"net/url"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/octobees/backlink-outreach/internal/service/extract"
)

const (
	trackingPrefix     = "utm_"
	defaultPhoneRegion = "US"
)

// platformDomains maps the supported social platforms to the hosts a link
// must live on to count as canonical.
var platformDomains = map[string][]string{
	"facebook":  {"facebook.com"},
	"twitter":   {"twitter.com", "x.com"},
	"linkedin":  {"linkedin.com"},
	"instagram": {"instagram.com"},
}

// RawContacts is scraped contact data before hygiene is applied, as
// submitted to the cleanup endpoint.
type RawContacts struct {
	Emails      []string            `json:"emails"`
	Phones      []string            `json:"phones"`
	SocialLinks map[string][]string `json:"social_links"`
	Addresses   []string            `json:"addresses"`
}

// CleanedContacts is the normalized counterpart: validated emails, phones
// in E.164 form, canonical social URLs and a single best address.
type CleanedContacts struct {
	Emails      []string          `json:"emails"`
	Phones      []string          `json:"phones"`
	SocialLinks map[string]string `json:"social_links"`
	Address     string            `json:"address,omitempty"`
}

// ContactCleaner normalizes raw scraped contacts. Unlike the extraction
// pipeline, which preserves literal matches, the cleaner is free to rewrite
// values into canonical forms.
type ContactCleaner struct {
	// DefaultRegion is the phonenumbers region used for numbers written
	// without a country prefix.
	DefaultRegion string
}

// NewContactCleaner builds a cleaner for the given phone region,
// defaulting to US.
func NewContactCleaner(region string) *ContactCleaner {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = defaultPhoneRegion
	}
	return &ContactCleaner{DefaultRegion: region}
}

// Clean applies every hygiene rule and returns the normalized contacts.
func (c *ContactCleaner) Clean(input RawContacts) CleanedContacts {
	return CleanedContacts{
		Emails:      c.cleanEmails(input.Emails),
		Phones:      c.cleanPhones(input.Phones),
		SocialLinks: c.cleanSocials(input.SocialLinks),
		Address:     selectBestAddress(input.Addresses),
	}
}

func (c *ContactCleaner) cleanEmails(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	valid := make([]string, 0, len(emails))
	for _, raw := range emails {
		email := strings.ToLower(strings.TrimSpace(raw))
		if email == "" || !extract.ValidEmail(email) {
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		valid = append(valid, email)
	}
	return valid
}

func (c *ContactCleaner) cleanPhones(phones []string) []string {
	seen := make(map[string]struct{}, len(phones))
	valid := make([]string, 0, len(phones))
	for _, raw := range phones {
		normalized := normalizePhone(raw, c.DefaultRegion)
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		valid = append(valid, normalized)
	}
	return valid
}

func (c *ContactCleaner) cleanSocials(socials map[string][]string) map[string]string {
	result := make(map[string]string)
	for key, candidates := range socials {
		platform := strings.ToLower(strings.TrimSpace(key))
		domains, supported := platformDomains[platform]
		if !supported {
			continue
		}
		if _, exists := result[platform]; exists {
			continue
		}
		for _, raw := range candidates {
			if cleaned, ok := cleanSocialLink(domains, raw); ok {
				result[platform] = cleaned
				break
			}
		}
	}
	return result
}

func cleanSocialLink(domains []string, raw string) (string, bool) {
	u, err := sanitizeURL(raw)
	if err != nil {
		return "", false
	}
	if !hostMatches(u.Hostname(), domains) {
		return "", false
	}
	stripTracking(u)
	return u.String(), true
}

func hostMatches(host string, domains []string) bool {
	host = strings.ToLower(strings.Trim(strings.TrimSpace(host), "."))
	if host == "" {
		return false
	}
	for _, domain := range domains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func sanitizeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidURL
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, ErrInvalidURL
	}
	u.Scheme = "https"
	return u, nil
}

func stripTracking(u *url.URL) {
	query := u.Query()
	changed := false
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), trackingPrefix) {
			query.Del(key)
			changed = true
		}
	}
	if changed {
		u.RawQuery = query.Encode()
	}
}

func normalizePhone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

// selectBestAddress prefers the candidate with the most comma-separated
// segments, breaking ties by length.
func selectBestAddress(addresses []string) string {
	var best string
	var bestScore int
	for _, raw := range addresses {
		addr := strings.TrimSpace(raw)
		if addr == "" {
			continue
		}
		segments := strings.FieldsFunc(addr, func(r rune) bool { return r == ',' || r == ';' })
		score := len(segments)*1000 + len([]rune(addr))
		if score > bestScore {
			bestScore = score
			best = addr
		}
	}
	return best
}
