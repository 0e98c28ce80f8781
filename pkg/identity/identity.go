// Package identity derives content identifiers from rendered feed items.
package identity

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// statusPath matches /<owner>/status/<digits> with optional trailing segments like /photo/1.
// The owner may span segments, as in /i/web/status/<digits>; the first status segment wins.
var statusPath = regexp.MustCompile(`^/(?:[^/]+/)+?status/(\d+)(?:/.*)?$`)

// Extractor finds the content identifier of a feed item from its permalinks
type Extractor struct{}

// New makes an Extractor
func New() *Extractor {
	return &Extractor{}
}

// FromHTML parses item markup and returns the id of the first direct status link.
// Links appear in document order, so the item's own permalink wins over quoted ones.
func (e *Extractor) FromHTML(markup string) (string, bool) {
	if strings.TrimSpace(markup) == "" {
		return "", false
	}

	node, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", false
	}

	var hrefs []string
	goquery.NewDocumentFromNode(node).Find(`a[href*="/status/"]`).Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			hrefs = append(hrefs, href)
		}
	})
	return e.FromHrefs(hrefs)
}

// FromHrefs returns the id from the first href that is a direct status link
func (e *Extractor) FromHrefs(hrefs []string) (string, bool) {
	for _, href := range hrefs {
		if id, ok := statusID(href); ok {
			return id, true
		}
	}
	return "", false
}

// statusID extracts digits from a status link, rejecting links with a query string
func statusID(href string) (string, bool) {
	if href == "" || strings.Contains(href, "?") {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	m := statusPath.FindStringSubmatch(u.Path)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Permalink renders the canonical url for an id, i.e. https://x.com/i/status/123
func Permalink(base, id string) string {
	return fmt.Sprintf("%s/i/status/%s", strings.TrimRight(base, "/"), id)
}

// IsID reports whether s looks like a content identifier
func IsID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
