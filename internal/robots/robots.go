// Package robots fetches and analyzes a site's robots.txt for rules that
// could block news discovery paths.
package robots

import (
	"context"
	"sort"
	"strings"

	"github.com/temoto/robotstxt"

	"newsvis-go-audit/internal/fetch"
	"newsvis-go-audit/internal/models"
)

// Path prefixes whose disallowal suppresses feed/sitemap discovery.
var importantPrefixes = []string{"/feed", "/sitemap", "/wp-sitemap", "/news-sitemap", "/sitemaps"}

// Discovery paths tested against the parsed robots group.
var probePaths = []string{"/feed/", "/sitemap.xml", "/wp-sitemap.xml", "/news-sitemap.xml"}

// Analyze fetches robots.txt relative to the site origin and parses it.
// Fetch failure degrades to an error-populated result with empty rule sets.
func Analyze(ctx context.Context, client *fetch.Client, site string) models.RobotsFindings {
	robotsURL := site + "robots.txt"
	res := client.Get(ctx, robotsURL)

	findings := models.RobotsFindings{
		URL:                      robotsURL,
		Status:                   res.Status,
		Error:                    res.Err,
		DisallowRules:            []string{},
		SitemapLines:             []string{},
		PotentiallyBlockingRules: []string{},
	}
	if !res.OK() {
		return findings
	}

	findings.DisallowRules, findings.SitemapLines = ParseDirectives(res.Body)
	findings.PotentiallyBlockingRules = ClassifyBlocking(findings.DisallowRules)
	findings.BlockedProbePaths = blockedProbePaths(res.Body)
	return findings
}

// ParseDirectives does a line-oriented parse of robots.txt text. Comments
// are stripped (inline too), directive names are lowercased, and only
// disallow and sitemap directives are kept, in document order.
func ParseDirectives(text string) (disallow, sitemaps []string) {
	disallow = []string{}
	sitemaps = []string{}
	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		switch key {
		case "disallow":
			disallow = append(disallow, value)
		case "sitemap":
			sitemaps = append(sitemaps, value)
		}
	}
	return disallow, sitemaps
}

// ClassifyBlocking returns the deduplicated, sorted subset of disallow
// rules judged likely to block discovery: the whole site, query rules
// naming feed/sitemap, or the important path prefixes.
func ClassifyBlocking(rules []string) []string {
	seen := map[string]struct{}{}
	for _, rule := range rules {
		clean := strings.TrimSpace(rule)
		if clean == "" {
			continue
		}
		if clean == "/" {
			seen[clean] = struct{}{}
			continue
		}
		if strings.HasPrefix(clean, "/?") {
			if strings.Contains(clean, "/?feed") || strings.Contains(clean, "/?sitemap") {
				seen[clean] = struct{}{}
			}
			continue
		}
		for _, prefix := range importantPrefixes {
			if clean == prefix || strings.HasPrefix(clean, prefix+"/") {
				seen[clean] = struct{}{}
				break
			}
		}
	}
	out := make([]string, 0, len(seen))
	for rule := range seen {
		out = append(out, rule)
	}
	sort.Strings(out)
	return out
}

// blockedProbePaths cross-checks the discovery paths against the robots
// group for a generic crawler. A nil result means nothing is denied.
func blockedProbePaths(text string) []string {
	data, err := robotstxt.FromString(text)
	if err != nil {
		return nil
	}
	group := data.FindGroup("*")
	var blocked []string
	for _, path := range probePaths {
		if !group.Test(path) {
			blocked = append(blocked, path)
		}
	}
	return blocked
}
