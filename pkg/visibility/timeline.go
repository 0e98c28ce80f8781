package visibility

import (
	"net/url"
	"strings"
)

// TimelineMatcher decides whether a location shows a scrolling feed
type TimelineMatcher struct {
	Paths    []string // exact path matches, e.g. "/home"
	Suffixes []string // path suffix matches, e.g. "/for-you"
}

// DefaultTimeline matches home, for-you and explore feeds
func DefaultTimeline() TimelineMatcher {
	return TimelineMatcher{
		Paths:    []string{"/", "/home", "/explore"},
		Suffixes: []string{"/for-you"},
	}
}

// Match reports whether the location (full url or bare path) is a timeline view
func (m TimelineMatcher) Match(location string) bool {
	path := location
	if u, err := url.Parse(location); err == nil {
		path = u.Path
	}
	if path == "" {
		path = "/"
	}
	for _, p := range m.Paths {
		if path == p {
			return true
		}
	}
	for _, s := range m.Suffixes {
		if strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}
