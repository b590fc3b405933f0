package extract

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

type socialPlatform struct {
	name    string
	pattern *regexp.Regexp
}

var socialPlatforms = []socialPlatform{
	{"facebook", regexp.MustCompile(`(?i)facebook\.com`)},
	{"twitter", regexp.MustCompile(`(?i)twitter\.com|x\.com`)},
	{"linkedin", regexp.MustCompile(`(?i)linkedin\.com`)},
	{"instagram", regexp.MustCompile(`(?i)instagram\.com`)},
}

// SocialLinks finds one link per supported platform: the first anchor
// whose href or visible text matches the platform domain. Matching the
// text as well catches profile links written with a relative href. The
// href is resolved against the page's final URL. The map is never nil and
// never has more than one entry per platform.
func SocialLinks(p *Page) map[string]string {
	links := make(map[string]string)

	for _, platform := range socialPlatforms {
		p.doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			href, ok := sel.Attr("href")
			if !ok {
				return true
			}
			if !platform.pattern.MatchString(href) && !platform.pattern.MatchString(sel.Text()) {
				return true
			}
			links[platform.name] = p.resolve(href)
			return false
		})
	}
	return links
}
