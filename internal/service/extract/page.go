// Package extract recovers contact facts from fetched HTML pages. Every
// extractor is a pure function of the parsed page: a missing fact is an
// empty result, never an error.
package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is a fetched document prepared for extraction.
type Page struct {
	doc *goquery.Document
	// Text is the concatenated text content of the document.
	Text string
	// base is the final post-redirect URL, used to resolve relative links.
	base *url.URL
}

// ParsePage parses raw HTML. finalURL is the URL the fetch ended up at
// after redirects; relative links are resolved against it.
func ParsePage(html, finalURL string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(finalURL)
	if err != nil {
		base = nil
	}

	return &Page{
		doc:  doc,
		Text: doc.Text(),
		base: base,
	}, nil
}

// resolve turns a possibly relative href into an absolute URL. The href is
// returned unchanged when the page has no usable base.
func (p *Page) resolve(href string) string {
	if p.base == nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return p.base.ResolveReference(ref).String()
}
