// Package issues derives a prioritized remediation list from a finished
// audit. Every rule is a pure function of the audit record, so deriving
// twice from the same record yields the same issues.
package issues

import (
	"fmt"
	"sort"
	"strings"

	"newsvis-go-audit/internal/models"
)

// Ratio thresholds for the sampled-article rules.
const (
	coverageGapRatio  = 0.2
	dimensionGapRatio = 0.5
	heavyPageBytes    = 1500000
)

// Derive runs the rule catalog over an audit record and returns the
// matching issues sorted by priority tier, most severe first. Rule order
// within a tier is the catalog order.
func Derive(res *models.AuditResult) []models.Issue {
	var out []models.Issue

	robots := res.Discovery.Robots
	feed := res.Feed
	summary := res.Articles.Summary

	if robots.Error != "" || robots.Status >= 400 {
		evidence := robots.Error
		if evidence == "" {
			evidence = fmt.Sprintf("robots.txt returned HTTP %d.", robots.Status)
		}
		out = append(out, models.Issue{
			Priority: models.PriorityP0,
			Title:    "robots.txt could not be retrieved",
			Evidence: evidence,
			Fix:      "Ensure robots.txt is served with HTTP 200 so crawlers can read crawl and sitemap directives.",
		})
	}

	if len(robots.PotentiallyBlockingRules) > 0 {
		out = append(out, models.Issue{
			Priority: models.PriorityP0,
			Title:    "robots.txt may block news discovery paths",
			Evidence: strings.Join(robots.PotentiallyBlockingRules, ", "),
			Fix:      "In WordPress, check SEO plugin robots settings and remove Disallow rules blocking /feed/ or sitemap endpoints.",
		})
	}

	sitemapExists := false
	for _, probe := range res.Discovery.Sitemaps {
		if probe.Exists {
			sitemapExists = true
			break
		}
	}
	if !sitemapExists {
		out = append(out, models.Issue{
			Priority: models.PriorityP0,
			Title:    "No sitemap endpoint was reachable",
			Evidence: "None of /sitemap.xml, /sitemap_index.xml, /wp-sitemap.xml, /news-sitemap.xml returned 2xx/3xx.",
			Fix:      "Enable XML sitemaps in your SEO plugin or core WordPress and verify robots.txt exposes a Sitemap line.",
		})
	}

	if feed.ItemCount == 0 {
		out = append(out, models.Issue{
			Priority: models.PriorityP0,
			Title:    "No valid RSS feed items found",
			Evidence: "Feed discovery returned no usable entries.",
			Fix:      "Ensure /feed/ returns valid RSS and is not cached/rewritten to HTML.",
		})
	}

	fetched := summary.Fetched
	if fetched > 0 && summary.NoindexPages > 0 {
		out = append(out, models.Issue{
			Priority: models.PriorityP0,
			Title:    "Some sampled articles are marked noindex",
			Evidence: fmt.Sprintf("%d of %d sampled pages contain meta robots noindex.", summary.NoindexPages, fetched),
			Fix:      "In SEO plugin settings, set posts to Index and remove per-post noindex overrides.",
		})
	}

	if fetched > 0 && ratio(summary.MissingCanonical, fetched) > coverageGapRatio {
		out = append(out, models.Issue{
			Priority: models.PriorityP1,
			Title:    "Canonical tags are missing on many sampled articles",
			Evidence: fmt.Sprintf("%d of %d pages were missing canonical.", summary.MissingCanonical, fetched),
			Fix:      "Enable canonical output in your SEO plugin and ensure single.php includes wp_head().",
		})
	}

	if fetched > 0 && ratio(summary.CanonicalMismatch, fetched) > coverageGapRatio {
		out = append(out, models.Issue{
			Priority: models.PriorityP1,
			Title:    "Canonical URL mismatches article URL on sampled pages",
			Evidence: fmt.Sprintf("%d of %d pages have inconsistent canonical URLs.", summary.CanonicalMismatch, fetched),
			Fix:      "Review permalink settings and avoid plugins that rewrite canonical URLs to archives or tracking URLs.",
		})
	}

	// An empty feed already surfaces as its own P0; the risk verdict only
	// adds signal when items actually parsed.
	if feed.NewsBreakRisk && feed.ItemCount > 0 {
		evidence := strings.Join(feed.NewsBreakRiskReasons, "; ")
		if evidence == "" {
			evidence = "Feed appears excerpt-only or image-light."
		}
		out = append(out, models.Issue{
			Priority: models.PriorityP1,
			Title:    "Feed has elevated NewsBreak ingestion risk",
			Evidence: evidence,
			Fix:      "Switch RSS to full text and include featured images in feed items.",
		})
	}

	if fetched > 0 {
		if ratio(summary.MissingOGFields.Image, fetched) > coverageGapRatio {
			out = append(out, models.Issue{
				Priority: models.PriorityP1,
				Title:    "Open Graph images are missing on many sampled articles",
				Evidence: fmt.Sprintf("%d of %d pages are missing og:image.", summary.MissingOGFields.Image, fetched),
				Fix:      "Set a featured image on all posts and enable Open Graph in SEO plugin social settings.",
			})
		}

		if ratio(summary.MissingJSONLDArticle, fetched) > coverageGapRatio {
			out = append(out, models.Issue{
				Priority: models.PriorityP1,
				Title:    "JSON-LD Article/NewsArticle schema is missing on sampled pages",
				Evidence: fmt.Sprintf("%d of %d pages lacked Article schema.", summary.MissingJSONLDArticle, fetched),
				Fix:      "Enable schema output for Posts in your SEO plugin and map it to Article or NewsArticle.",
			})
		}

		if ratio(summary.MissingPublicationDate, fetched) > coverageGapRatio {
			out = append(out, models.Issue{
				Priority: models.PriorityP1,
				Title:    "Publication date is not clearly visible in article HTML",
				Evidence: fmt.Sprintf("%d of %d pages did not expose an obvious date signal.", summary.MissingPublicationDate, fetched),
				Fix:      "Update single post template to render <time datetime> with published and updated timestamps.",
			})
		}
	}

	if fetched > 0 && summary.AvgResponseSizeBytes > heavyPageBytes {
		out = append(out, models.Issue{
			Priority: models.PriorityP2,
			Title:    "Average sampled article response size is heavy",
			Evidence: fmt.Sprintf("Average response size is %d bytes.", summary.AvgResponseSizeBytes),
			Fix:      "Compress images, reduce third-party scripts, and defer non-critical JS.",
		})
	}

	if fetched > 0 && summary.HighBlockingScriptPages > 0 {
		out = append(out, models.Issue{
			Priority: models.PriorityP2,
			Title:    "Potential render-blocking scripts detected",
			Evidence: fmt.Sprintf("%d sampled pages have many non-deferred scripts in <head>.", summary.HighBlockingScriptPages),
			Fix:      "Move non-critical scripts to footer or add defer/async where safe.",
		})
	}

	if fetched > 0 && ratio(summary.MissingOGImageDimensions, fetched) > dimensionGapRatio {
		out = append(out, models.Issue{
			Priority: models.PriorityP2,
			Title:    "og:image dimensions are often missing",
			Evidence: fmt.Sprintf("%d of %d pages are missing og:image:width/height.", summary.MissingOGImageDimensions, fetched),
			Fix:      "Configure SEO plugin to emit og:image width/height metadata for featured images.",
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

func ratio(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total)
}
