package dto

// ScrapeRequest is the payload for the batch scraping endpoint. The
// OpenAI key and sender fields are required only when the service runs
// without a process-wide credential.
type ScrapeRequest struct {
	URLs               []string `json:"urls"`
	CompanyName        string   `json:"companyName"`
	BacklinkURL        string   `json:"backlinkUrl"`
	OpenAIAPIKey       string   `json:"openaiApiKey,omitempty"`
	SenderName         string   `json:"senderName,omitempty"`
	SenderOrganization string   `json:"senderOrganization,omitempty"`
}

// CleanContactsRequest carries raw scraped contacts for normalization.
type CleanContactsRequest struct {
	Emails      []string            `json:"emails"`
	Phones      []string            `json:"phones"`
	SocialLinks map[string][]string `json:"social_links"`
	Addresses   []string            `json:"addresses"`
}
