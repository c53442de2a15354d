package article

import "newsvis-go-audit/internal/models"

// High render-blocking script threshold, preserved verbatim.
const highBlockingScriptCount = 8

// Summarize reduces the sampled findings into an aggregate. Only findings
// with a present status count as fetched, whatever the HTTP status was;
// an empty fetched set is an all-zero aggregate, not an error.
func Summarize(pages []models.ArticleFinding) models.AuditAggregate {
	agg := models.AuditAggregate{Sampled: len(pages)}

	var fetched []models.ArticleFinding
	for _, page := range pages {
		if page.Status > 0 {
			fetched = append(fetched, page)
		}
	}
	agg.Fetched = len(fetched)
	if agg.Fetched == 0 {
		return agg
	}

	totalSize := 0
	for _, page := range fetched {
		totalSize += page.ResponseSizeBytes

		if !page.Canonical.Exists {
			agg.MissingCanonical++
		} else if !page.Canonical.ConsistentWithURL {
			agg.CanonicalMismatch++
		}
		if page.MetaRobots.Noindex {
			agg.NoindexPages++
		}

		if !page.OpenGraph.Title {
			agg.MissingOGFields.Title++
		}
		if !page.OpenGraph.Type {
			agg.MissingOGFields.Type++
		}
		if !page.OpenGraph.URL {
			agg.MissingOGFields.URL++
		}
		if !page.OpenGraph.Image {
			agg.MissingOGFields.Image++
		}
		if page.OpenGraph.ImageWidth == nil || page.OpenGraph.ImageHeight == nil {
			agg.MissingOGImageDimensions++
		}

		if !page.PublicationDateVisible {
			agg.MissingPublicationDate++
		}
		if page.JSONLD.ArticleEntityCount == 0 {
			agg.MissingJSONLDArticle++
		}
		for _, field := range page.JSONLD.MissingFields {
			switch field {
			case "headline":
				agg.JSONLDMissingFieldCounts.Headline++
			case "datePublished":
				agg.JSONLDMissingFieldCounts.DatePublished++
			case "dateModified":
				agg.JSONLDMissingFieldCounts.DateModified++
			case "author.name":
				agg.JSONLDMissingFieldCounts.AuthorName++
			case "publisher.name":
				agg.JSONLDMissingFieldCounts.PublisherName++
			case "image":
				agg.JSONLDMissingFieldCounts.Image++
			}
		}

		if page.Performance.RenderBlockingScripts >= highBlockingScriptCount {
			agg.HighBlockingScriptPages++
		}
		if page.Performance.HugeInlineScripts > 0 {
			agg.HugeInlineScriptPages++
		}
	}

	agg.AvgResponseSizeBytes = totalSize / agg.Fetched
	return agg
}
