// Package report turns an audit record and its derived issues into
// terminal, markdown and JSON outputs.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"newsvis-go-audit/internal/issues"
	"newsvis-go-audit/internal/models"
)

// Summarize renders the compact terminal view of one audit run.
func Summarize(res *models.AuditResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Site: %s\n", res.Site)
	fmt.Fprintf(&b, "Generated: %s\n", res.GeneratedAt)

	robots := res.Discovery.Robots
	b.WriteString("\n[Discovery]\n")
	if robots.Status > 0 {
		fmt.Fprintf(&b, "robots.txt status: %d\n", robots.Status)
	} else {
		b.WriteString("robots.txt status: ERROR\n")
	}
	fmt.Fprintf(&b, "robots.txt potential blockers: %d\n", len(robots.PotentiallyBlockingRules))
	fmt.Fprintf(&b, "sitemap endpoints found: %d/%d\n", sitemapsFound(res.Discovery.Sitemaps), len(res.Discovery.Sitemaps))

	feed := res.Feed
	b.WriteString("\n[Feed]\n")
	selected := feed.SelectedFeedURL
	if selected == "" {
		selected = "none"
	}
	fmt.Fprintf(&b, "selected feed: %s\n", selected)
	fmt.Fprintf(&b, "items: %d\n", feed.ItemCount)
	fmt.Fprintf(&b, "fields coverage (title/link/date/image): %d/%d/%d/%d\n",
		feed.ItemsWithTitle, feed.ItemsWithLink, feed.ItemsWithDate, feed.ItemsWithImage)
	fmt.Fprintf(&b, "avg content length: %v\n", feed.AvgContentLength)
	fmt.Fprintf(&b, "NewsBreak risk: %s\n", yesNo(feed.NewsBreakRisk))

	summary := res.Articles.Summary
	b.WriteString("\n[Articles]\n")
	fmt.Fprintf(&b, "sampled/fetched: %d/%d\n", summary.Sampled, summary.Fetched)
	fmt.Fprintf(&b, "missing canonical: %d | canonical mismatch: %d\n", summary.MissingCanonical, summary.CanonicalMismatch)
	fmt.Fprintf(&b, "noindex pages: %d\n", summary.NoindexPages)
	fmt.Fprintf(&b, "missing OG fields (title/type/url/image): %d/%d/%d/%d\n",
		summary.MissingOGFields.Title, summary.MissingOGFields.Type, summary.MissingOGFields.URL, summary.MissingOGFields.Image)
	fmt.Fprintf(&b, "missing HTML date: %d\n", summary.MissingPublicationDate)
	fmt.Fprintf(&b, "missing JSON-LD Article: %d\n", summary.MissingJSONLDArticle)

	b.WriteString("\n[Performance]\n")
	fmt.Fprintf(&b, "avg response size bytes: %d\n", summary.AvgResponseSizeBytes)
	fmt.Fprintf(&b, "high render-blocking script pages: %d\n", summary.HighBlockingScriptPages)
	fmt.Fprintf(&b, "huge inline script pages: %d", summary.HugeInlineScriptPages)
	return b.String()
}

// PriorityCounts tallies issues per tier.
type PriorityCounts struct {
	P0 int `json:"P0"`
	P1 int `json:"P1"`
	P2 int `json:"P2"`
}

// Payload is the JSON report document: the derived issues with their tier
// counts, wrapping the full audit record.
type Payload struct {
	Site           string              `json:"site"`
	GeneratedAt    string              `json:"generated_at"`
	PriorityCounts PriorityCounts      `json:"priority_counts"`
	Issues         []models.Issue      `json:"issues"`
	Audit          *models.AuditResult `json:"audit"`
}

// BuildPayload derives issues from the audit and assembles the report
// document.
func BuildPayload(res *models.AuditResult) Payload {
	derived := issues.Derive(res)
	var counts PriorityCounts
	for _, issue := range derived {
		switch issue.Priority {
		case models.PriorityP0:
			counts.P0++
		case models.PriorityP1:
			counts.P1++
		case models.PriorityP2:
			counts.P2++
		}
	}
	return Payload{
		Site:           res.Site,
		GeneratedAt:    res.GeneratedAt,
		PriorityCounts: counts,
		Issues:         derived,
		Audit:          res,
	}
}

// RenderMarkdown produces the full remediation report.
func RenderMarkdown(res *models.AuditResult, derived []models.Issue) string {
	var b strings.Builder
	b.WriteString("# WordPress News Visibility Ops Report\n")
	fmt.Fprintf(&b, "- Site: `%s`\n", res.Site)
	fmt.Fprintf(&b, "- Generated (UTC): `%s`\n", res.GeneratedAt)
	b.WriteString("\n## What's Broken / Missing\n")

	if len(derived) == 0 {
		b.WriteString("- No major issues detected in this run.\n")
	} else {
		for _, issue := range derived {
			fmt.Fprintf(&b, "- [%s] %s - %s\n", issue.Priority, issue.Title, issue.Evidence)
		}
	}

	b.WriteString("\n")
	b.WriteString(findingsTable(res))
	b.WriteString("## Remediation Plan\n")
	b.WriteString(issueSection(derived, models.PriorityP0))
	b.WriteString(issueSection(derived, models.PriorityP1))
	b.WriteString(issueSection(derived, models.PriorityP2))
	b.WriteString(pluginFixMatrix)
	b.WriteString("\n")
	b.WriteString(themeSnippets)
	b.WriteString("\n")
	b.WriteString(submissionChecklist(res.Site))
	b.WriteString("\n")
	b.WriteString(references)
	return strings.TrimSpace(b.String()) + "\n"
}

func findingsTable(res *models.AuditResult) string {
	feed := res.Feed
	summary := res.Articles.Summary
	var b strings.Builder
	b.WriteString("## Findings Snapshot\n")
	b.WriteString("| Check | Result |\n")
	b.WriteString("|---|---|\n")
	fmt.Fprintf(&b, "| Sitemap endpoints reachable | %d/%d |\n", sitemapsFound(res.Discovery.Sitemaps), len(res.Discovery.Sitemaps))
	fmt.Fprintf(&b, "| Feed items parsed | %d |\n", feed.ItemCount)
	fmt.Fprintf(&b, "| Feed title/link/date coverage | %d/%d/%d |\n", feed.ItemsWithTitle, feed.ItemsWithLink, feed.ItemsWithDate)
	fmt.Fprintf(&b, "| Feed image coverage | %d/%d |\n", feed.ItemsWithImage, feed.ItemCount)
	fmt.Fprintf(&b, "| NewsBreak risk | %s |\n", yesNo(feed.NewsBreakRisk))
	fmt.Fprintf(&b, "| Articles sampled/fetched | %d/%d |\n", summary.Sampled, summary.Fetched)
	fmt.Fprintf(&b, "| Missing canonical | %d |\n", summary.MissingCanonical)
	fmt.Fprintf(&b, "| Noindex pages | %d |\n", summary.NoindexPages)
	fmt.Fprintf(&b, "| Missing JSON-LD Article | %d |\n", summary.MissingJSONLDArticle)
	fmt.Fprintf(&b, "| Avg response size (bytes) | %d |\n", summary.AvgResponseSizeBytes)
	return b.String()
}

func issueSection(derived []models.Issue, priority string) string {
	var matches []models.Issue
	for _, issue := range derived {
		if issue.Priority == priority {
			matches = append(matches, issue)
		}
	}
	if len(matches) == 0 {
		return fmt.Sprintf("### %s\n- None detected.\n", priority)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n", priority)
	for _, issue := range matches {
		fmt.Fprintf(&b, "- **%s**\n", issue.Title)
		fmt.Fprintf(&b, "  Evidence: %s\n", issue.Evidence)
		fmt.Fprintf(&b, "  Fix: %s\n", issue.Fix)
	}
	return b.String()
}

func sitemapsFound(probes []models.SitemapProbe) int {
	n := 0
	for _, probe := range probes {
		if probe.Exists {
			n++
		}
	}
	return n
}

func yesNo(v bool) string {
	if v {
		return "YES"
	}
	return "NO"
}

const pluginFixMatrix = `## Exact WordPress Fixes
### Rank Math
- ` + "`Rank Math -> Titles & Meta -> Posts`" + `: set Robots Meta to ` + "`index`" + `, enable canonical defaults.
- ` + "`Rank Math -> Sitemap Settings`" + `: enable XML sitemap and include Posts; enable News Sitemap if available in your plan.
- ` + "`Rank Math -> General Settings -> Social Meta`" + `: enable Open Graph and set fallback image.
- ` + "`Rank Math -> Schema (per post type)`" + `: map Posts to ` + "`Article`" + ` or ` + "`NewsArticle`" + ` and ensure author/publisher are set.

### Yoast SEO
- ` + "`SEO -> Search Appearance -> Content Types -> Posts`" + `: set Show in search results = ` + "`Yes`" + `.
- ` + "`SEO -> Settings -> Site features`" + `: ensure XML sitemaps are ` + "`On`" + `.
- ` + "`SEO -> Social`" + `: enable Open Graph meta data and set default image.
- ` + "`SEO -> Search Appearance`" + `: verify schema output remains enabled for posts.

### All in One SEO (AIOSEO)
- ` + "`AIOSEO -> Search Appearance -> Content Types -> Posts`" + `: set Robots = ` + "`Index`" + ` and enable canonical URL output.
- ` + "`AIOSEO -> Sitemaps`" + `: enable XML sitemap; enable News sitemap module if available.
- ` + "`AIOSEO -> Social Networks`" + `: enable Open Graph and default post image source = featured image.
- ` + "`AIOSEO -> Schema`" + `: set default post schema to ` + "`Article`" + ` or ` + "`NewsArticle`" + `.

### Plugin-Agnostic WP Admin Areas
- ` + "`Settings -> Reading`" + `: set ` + "`For each post in a feed, include`" + ` to ` + "`Full text`" + `.
- ` + "`Settings -> Permalinks`" + `: keep stable post permalinks and avoid frequent structure changes.
- Theme check: confirm ` + "`wp_head()`" + ` exists in ` + "`header.php`" + ` and ` + "`wp_footer()`" + ` in footer template.
`

const themeSnippets = `## Theme Snippets (Minimal PHP)
` + "```php" + `
<?php
// 1) Canonical fallback in header.php (if SEO plugin is missing canonical output).
if (is_single()) {
    echo '<link rel="canonical" href="' . esc_url(get_permalink()) . '" />' . PHP_EOL;
}
` + "```" + `

` + "```php" + `
<?php
// 2) Publish/modified dates in single.php.
if (is_single()) :
    $published = get_the_date('c');
    $modified = get_the_modified_date('c');
    ?>
    <p class="post-dates">
        Published <time datetime="<?php echo esc_attr($published); ?>"><?php echo esc_html(get_the_date()); ?></time>
        | Updated <time datetime="<?php echo esc_attr($modified); ?>"><?php echo esc_html(get_the_modified_date()); ?></time>
    </p>
<?php endif; ?>
` + "```" + `

` + "```php" + `
<?php
// 3) Ensure featured image is available for OG image generation.
if (is_single() && !has_post_thumbnail()) {
    // Optional: set or prompt for a default featured image workflow.
}
` + "```" + `
`

func submissionChecklist(site string) string {
	return fmt.Sprintf(`## Submission Checklist
- Google Search Console
  - Verify property for %s.
  - Submit primary XML sitemap (core or plugin sitemap URL).
  - Use URL Inspection on fresh articles and request indexing when needed.
  - In Publisher Center, maintain publication details and section URLs.
- Bing Webmaster Tools
  - Verify site and submit sitemap URL(s).
  - Check crawl controls, URL inspection, and indexing reports.
  - Confirm RSS/feed URLs are crawlable and return full content.
- NewsBreak Feed Submission
  - Submit the native WordPress feed URL (/feed/ or category feed if required).
  - Ensure feed items include full content, dates, canonical links, and images.
  - Re-test feed validity after every major plugin/theme update.
`, "`"+site+"`")
}

const references = `## References
- https://developers.google.com/search/docs/appearance/structured-data/article
- https://support.google.com/news/publisher-center/answer/9607025
- https://www.bing.com/webmasters/help/help-center-661b2d18
- https://validator.schema.org/
`

// WriteJSON marshals v with indentation and writes it, creating parent
// directories as needed.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return WriteText(path, string(data))
}

// WriteText writes content to path, creating parent directories as needed.
func WriteText(path, content string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
