package hn

import (
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/publicsuffix"
)

var (
	stripPolicy  = bluemonday.StrictPolicy()
	paragraphTag = regexp.MustCompile(`(?i)<p\s*/?>`)
	spaceRun     = regexp.MustCompile(`[ \t]+`)
)

// PlainText turns HN comment html into plain text.
// Paragraph tags become blank lines, all other markup is dropped.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	s = paragraphTag.ReplaceAllString(s, "\n\n")
	s = stripPolicy.Sanitize(s)
	s = html.UnescapeString(s)

	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(l, " "))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Site returns the registrable domain of a story url, e.g. "github.com" for
// "https://gist.github.com/x". Empty for text posts and unparsable urls.
func Site(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	site, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return site
}
