// Package sitemap probes the conventional sitemap endpoints of a site.
package sitemap

import (
	"context"
	"regexp"
	"strings"

	"newsvis-go-audit/internal/fetch"
	"newsvis-go-audit/internal/models"
)

// CandidatePaths are probed in declaration order; output order matches.
var CandidatePaths = []string{
	"/sitemap.xml",
	"/sitemap_index.xml",
	"/wp-sitemap.xml",
	"/news-sitemap.xml",
}

const maxLastmodHints = 3

// Permissive on purpose: real-world sitemaps are often XML a strict
// parser rejects, and a pattern match still recovers the hints.
var lastmodRe = regexp.MustCompile(`(?i)<lastmod>([^<]+)</lastmod>`)

// Probe checks every candidate path with bounded concurrency and returns
// one probe per path, in CandidatePaths order.
func Probe(ctx context.Context, client *fetch.Client, site string, workers int) []models.SitemapProbe {
	if workers < 1 {
		workers = 1
	}
	probes := make([]models.SitemapProbe, len(CandidatePaths))

	sem := make(chan struct{}, workers)
	done := make(chan int, len(CandidatePaths))
	for i, path := range CandidatePaths {
		i, path := i, path
		sem <- struct{}{} // acquire
		go func() {
			defer func() { <-sem; done <- i }()
			probes[i] = probeOne(ctx, client, site, path)
		}()
	}
	for range CandidatePaths {
		<-done
	}
	return probes
}

func probeOne(ctx context.Context, client *fetch.Client, site, path string) models.SitemapProbe {
	url := site + strings.TrimPrefix(path, "/")
	res := client.Get(ctx, url)

	probe := models.SitemapProbe{
		Path:         path,
		URL:          url,
		Status:       res.Status,
		Error:        res.Err,
		Exists:       res.Fetched() && res.Status < 400,
		LastmodHints: []string{},
	}
	if res.Fetched() {
		probe.ContentType = res.Header.Get("Content-Type")
	}
	if res.OK() {
		probe.LastmodHints = ExtractLastmods(res.Body, maxLastmodHints)
	}
	return probe
}

// ExtractLastmods pulls up to limit <lastmod> values out of raw XML text.
func ExtractLastmods(xmlText string, limit int) []string {
	values := []string{}
	for _, match := range lastmodRe.FindAllStringSubmatch(xmlText, -1) {
		values = append(values, match[1])
		if len(values) >= limit {
			break
		}
	}
	return values
}
