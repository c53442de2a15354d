// Package article samples, analyzes and aggregates per-article findings.
package article

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newsvis-go-audit/internal/models"
	"newsvis-go-audit/internal/urlx"
)

// DefaultExcludePatterns are path substrings skipped when sampling from
// homepage anchors. They match WordPress archive conventions; the caller
// can swap in its own list.
var DefaultExcludePatterns = []string{"/tag/", "/category/", "/author/", "/wp-"}

// SampleURLs builds up to sampleSize distinct same-domain article URLs:
// feed entry links first, homepage anchors as fallback. Given identical
// inputs the returned sequence is identical; pass one runs entirely
// before pass two.
func SampleURLs(site string, entries []models.FeedEntry, homepageHTML string, sampleSize int, excludePatterns []string) []string {
	urls := []string{}
	seen := map[string]struct{}{}

	for _, entry := range entries {
		link := strings.TrimSpace(entry.Link)
		if link == "" {
			continue
		}
		abs := urlx.Resolve(site, link)
		if abs == "" || !urlx.SameDomain(abs, site) {
			continue
		}
		if _, dup := seen[abs]; dup {
			continue
		}
		seen[abs] = struct{}{}
		urls = append(urls, abs)
		if len(urls) >= sampleSize {
			return urls
		}
	}

	if homepageHTML == "" {
		return urls
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(homepageHTML))
	if err != nil {
		return urls
	}
	doc.Find("a").EachWithBreak(func(i int, s *goquery.Selection) bool {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return true
		}
		abs := urlx.Resolve(site, href)
		if abs == "" || !urlx.SameDomain(abs, site) {
			return true
		}
		if !looksLikeArticlePath(abs, excludePatterns) {
			return true
		}
		if _, dup := seen[abs]; dup {
			return true
		}
		seen[abs] = struct{}{}
		urls = append(urls, abs)
		return len(urls) < sampleSize
	})
	return urls
}

// looksLikeArticlePath rejects the site root and any path containing one
// of the exclusion substrings.
func looksLikeArticlePath(rawURL string, excludePatterns []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.Path)
	if path == "" || path == "/" {
		return false
	}
	for _, pattern := range excludePatterns {
		if strings.Contains(path, pattern) {
			return false
		}
	}
	return true
}
