package feed

import (
	"context"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newsvis-go-audit/internal/fetch"
	"newsvis-go-audit/internal/urlx"
)

// Located is the outcome of feed discovery. The homepage document is kept
// for reuse by the article sampler; a homepage fetch failure only means
// discovery falls back to the seed candidate.
type Located struct {
	Candidates    []string
	HomepageHTML  string
	HomepageError string
}

// Locate builds the candidate feed URL set: the conventional feed/ path
// plus any alternate rss/atom links advertised on the homepage.
// Candidates come back deduplicated in a stable sorted order.
func Locate(ctx context.Context, client *fetch.Client, site string) Located {
	candidates := map[string]struct{}{
		urlx.Resolve(site, "feed/"): {},
	}

	loc := Located{}
	home := client.Get(ctx, site)
	loc.HomepageError = home.Err
	if home.OK() {
		loc.HomepageHTML = home.Body
		for _, href := range alternateFeedLinks(home.Body) {
			if resolved := urlx.Resolve(site, href); resolved != "" {
				candidates[resolved] = struct{}{}
			}
		}
	}

	for c := range candidates {
		loc.Candidates = append(loc.Candidates, c)
	}
	sort.Strings(loc.Candidates)
	return loc
}

// alternateFeedLinks scans <link> elements for rel=alternate hints with an
// rss+xml or atom+xml MIME type.
func alternateFeedLinks(homepageHTML string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(homepageHTML))
	if err != nil {
		return nil
	}
	var hrefs []string
	doc.Find("link").Each(func(i int, s *goquery.Selection) {
		rel := strings.ToLower(s.AttrOr("rel", ""))
		mime := strings.ToLower(s.AttrOr("type", ""))
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}
		if strings.Contains(rel, "alternate") &&
			(strings.Contains(mime, "rss+xml") || strings.Contains(mime, "atom+xml")) {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs
}
