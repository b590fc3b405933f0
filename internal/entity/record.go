package entity

// Result is either a BusinessRecord or an ExtractionError, so a batch
// response can carry both shapes in a single JSON array.
type Result interface {
	ResultURL() string
}

// BusinessRecord holds the contact details extracted from one page.
type BusinessRecord struct {
	URL           string            `json:"url"`
	BusinessName  string            `json:"business_name"`
	Emails        []string          `json:"emails"`
	Phones        []string          `json:"phones"`
	SocialLinks   map[string]string `json:"social_links"`
	Address       string            `json:"address,omitempty"`
	OutreachEmail string            `json:"outreach_email,omitempty"`
}

// ResultURL returns the input URL the record was produced for.
func (r BusinessRecord) ResultURL() string { return r.URL }

// ExtractionError is the per-URL failure shape. BusinessName is derived
// from the URL host so error entries stay uniform with successful ones.
type ExtractionError struct {
	URL          string `json:"url"`
	Error        string `json:"error"`
	BusinessName string `json:"business_name"`
}

// ResultURL returns the input URL the error was produced for.
func (e ExtractionError) ResultURL() string { return e.URL }

// CampaignContext describes the outreach ask shared by every record in a
// batch. It is immutable and safe to copy across workers.
type CampaignContext struct {
	CompanyName        string
	BacklinkURL        string
	SenderName         string
	SenderOrganization string
}
