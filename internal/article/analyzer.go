package article

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newsvis-go-audit/internal/fetch"
	"newsvis-go-audit/internal/htmltext"
	"newsvis-go-audit/internal/models"
	"newsvis-go-audit/internal/urlx"
)

// Script-weight thresholds, preserved verbatim from the original audit.
const (
	hugeInlineScriptChars = 50000
	visibleDateScanChars  = 10000
)

var auditedOGProperties = map[string]struct{}{
	"og:title":        {},
	"og:type":         {},
	"og:url":          {},
	"og:image":        {},
	"og:image:width":  {},
	"og:image:height": {},
}

var (
	isoDateRe   = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	monthDateRe = regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{1,2},\s+\d{4}\b`)
)

// Analyzer extracts discovery-relevant signals from article pages.
type Analyzer struct {
	client *fetch.Client
}

func NewAnalyzer(client *fetch.Client) *Analyzer {
	return &Analyzer{client: client}
}

// Analyze fetches one article URL and extracts its finding. A transport
// failure records the URL and error only; it never aborts the run.
func (a *Analyzer) Analyze(ctx context.Context, articleURL string) models.ArticleFinding {
	res := a.client.Get(ctx, articleURL)
	if !res.Fetched() {
		return models.ArticleFinding{URL: articleURL, Error: res.Err}
	}
	return analyzeDocument(articleURL, res)
}

func analyzeDocument(articleURL string, res fetch.Result) models.ArticleFinding {
	finding := models.ArticleFinding{
		URL:               articleURL,
		Status:            res.Status,
		ResponseSizeBytes: res.Size,
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.Body))
	if err != nil {
		finding.Error = err.Error()
		return finding
	}

	finding.Canonical = extractCanonical(doc, articleURL)
	finding.MetaRobots = extractMetaRobots(doc)
	finding.OpenGraph = extractOpenGraph(doc)
	finding.PublicationDateVisible = publicationDateVisible(doc)
	finding.JSONLD = extractJSONLD(doc)
	finding.Performance = extractPerformance(doc)
	return finding
}

// extractCanonical resolves the first rel=canonical link against the
// article URL and checks equivalence with it.
func extractCanonical(doc *goquery.Document, articleURL string) models.CanonicalFinding {
	var canonical models.CanonicalFinding
	doc.Find("link").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if !relContains(s.AttrOr("rel", ""), "canonical") {
			return true
		}
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return true
		}
		resolved := urlx.Resolve(articleURL, href)
		if resolved == "" {
			return true
		}
		canonical = models.CanonicalFinding{
			Exists:            true,
			URL:               resolved,
			ConsistentWithURL: urlx.Equivalent(resolved, articleURL),
		}
		return false
	})
	return canonical
}

// relContains checks a space-separated rel value for one token.
func relContains(rel, token string) bool {
	for _, r := range strings.Fields(strings.ToLower(rel)) {
		if r == token {
			return true
		}
	}
	return false
}

func extractMetaRobots(doc *goquery.Document) models.MetaRobotsFinding {
	var robots models.MetaRobotsFinding
	doc.Find("meta").EachWithBreak(func(i int, s *goquery.Selection) bool {
		name := strings.ToLower(s.AttrOr("name", ""))
		if !strings.Contains(name, "robots") {
			return true
		}
		robots.Content = s.AttrOr("content", "")
		robots.Noindex = strings.Contains(strings.ToLower(robots.Content), "noindex")
		return false
	})
	return robots
}

func extractOpenGraph(doc *goquery.Document) models.OpenGraphFinding {
	values := map[string]string{}
	doc.Find("meta").Each(func(i int, s *goquery.Selection) {
		prop := strings.ToLower(strings.TrimSpace(s.AttrOr("property", "")))
		if _, audited := auditedOGProperties[prop]; !audited {
			return
		}
		if values[prop] == "" {
			values[prop] = strings.TrimSpace(s.AttrOr("content", ""))
		}
	})
	return models.OpenGraphFinding{
		Title:       values["og:title"] != "",
		Type:        values["og:type"] != "",
		URL:         values["og:url"] != "",
		Image:       values["og:image"] != "",
		ImageWidth:  parseIntOrNil(values["og:image:width"]),
		ImageHeight: parseIntOrNil(values["og:image:height"]),
		ImageValue:  values["og:image"],
	}
}

func parseIntOrNil(value string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return nil
	}
	return &n
}

// publicationDateVisible looks for a <time datetime> element, then for a
// date-like pattern in the first 10,000 characters of visible text.
func publicationDateVisible(doc *goquery.Document) bool {
	if doc.Find("time[datetime]").Length() > 0 {
		return true
	}
	text := htmltext.VisibleText(doc.Selection)
	runes := []rune(text)
	if len(runes) > visibleDateScanChars {
		text = string(runes[:visibleDateScanChars])
	}
	return isoDateRe.MatchString(text) || monthDateRe.MatchString(text)
}

func extractJSONLD(doc *goquery.Document) models.JSONLDFinding {
	var entities []map[string]any
	doc.Find("script").Each(func(i int, s *goquery.Selection) {
		if !strings.Contains(strings.ToLower(s.AttrOr("type", "")), "ld+json") {
			return
		}
		entities = append(entities, parseJSONLDBlock(s.Text())...)
	})

	var articles []map[string]any
	for _, entity := range entities {
		if isArticleTyped(entity) {
			articles = append(articles, entity)
		}
	}

	finding := models.JSONLDFinding{
		EntityCount:        len(entities),
		ArticleEntityCount: len(articles),
		MissingFields:      []string{},
	}
	if len(articles) > 0 {
		missing := missingArticleFields(articles)
		seen := map[string]struct{}{}
		for _, field := range missing {
			seen[field] = struct{}{}
		}
		finding.MissingFields = make([]string, 0, len(seen))
		for field := range seen {
			finding.MissingFields = append(finding.MissingFields, field)
		}
		sort.Strings(finding.MissingFields)
	}
	return finding
}

// extractPerformance counts render-blocking scripts in the document head:
// not JSON-LD, not async, not defer, not type=module. Among those, inline
// bodies over the size threshold count as huge.
func extractPerformance(doc *goquery.Document) models.PerformanceFinding {
	head := doc.Find("head").First()
	scope := head
	if head.Length() == 0 {
		scope = doc.Selection
	}

	var perf models.PerformanceFinding
	scope.Find("script").Each(func(i int, s *goquery.Selection) {
		scriptType := strings.ToLower(strings.TrimSpace(s.AttrOr("type", "")))
		if strings.Contains(scriptType, "ld+json") {
			return
		}
		if _, async := s.Attr("async"); async {
			return
		}
		if _, defer_ := s.Attr("defer"); defer_ {
			return
		}
		if scriptType == "module" {
			return
		}
		perf.RenderBlockingScripts++
		if len(strings.TrimSpace(s.Text())) > hugeInlineScriptChars {
			perf.HugeInlineScripts++
		}
	})
	return perf
}
