package feed

import (
	"context"
	"math"

	"newsvis-go-audit/internal/fetch"
	"newsvis-go-audit/internal/models"
)

// Risk thresholds, preserved verbatim from the original heuristics.
const (
	minImageRatio    = 0.7
	maxExcerptRatio  = 0.5
	minAvgContentLen = 500
)

const (
	reasonNoItems     = "No valid feed items were found."
	reasonFewImages   = "Feed items often do not include images."
	reasonExcerptOnly = "Feed content appears excerpt-only."
)

// SelectAndScore fetches every located candidate with bounded concurrency,
// then reduces the ordered candidate list to the first one that fetched
// successfully, parsed without error and produced at least one entry.
// Ties resolve by locator order, never by network completion order, and a
// zero-entry parse never qualifies as a selection.
func SelectAndScore(ctx context.Context, client *fetch.Client, loc Located, workers int) models.FeedReport {
	if workers < 1 {
		workers = 1
	}
	results := make([]fetch.Result, len(loc.Candidates))

	sem := make(chan struct{}, workers)
	done := make(chan int, len(loc.Candidates))
	for i, candidate := range loc.Candidates {
		i, candidate := i, candidate
		sem <- struct{}{} // acquire
		go func() {
			defer func() { <-sem; done <- i }()
			results[i] = client.Get(ctx, candidate)
		}()
	}
	for range loc.Candidates {
		<-done
	}

	report := models.FeedReport{
		DiscoveredFeedURLs:     loc.Candidates,
		HomepageDiscoveryError: loc.HomepageError,
		CheckedFeeds:           make([]models.FeedCandidate, 0, len(loc.Candidates)),
		NewsBreakRiskReasons:   []string{},
		Items:                  []models.FeedEntry{},
	}

	// pure reduction over locator order: first qualifying candidate wins
	for i, candidate := range loc.Candidates {
		res := results[i]
		checked := models.FeedCandidate{
			URL:    candidate,
			Status: res.Status,
			Error:  res.Err,
			Items:  []models.FeedEntry{},
		}
		if res.OK() {
			items, err := Parse(res.Body)
			if err != nil {
				checked.ParseError = err.Error()
			} else {
				checked.Items = items
				if report.SelectedFeedURL == "" && len(items) > 0 {
					report.SelectedFeedURL = candidate
					report.SelectedFeedStatus = res.Status
					report.Items = items
				}
			}
		}
		report.CheckedFeeds = append(report.CheckedFeeds, checked)
	}

	scoreRisk(&report)
	return report
}

// scoreRisk computes the ingestion-risk verdict over the selected entries.
// Reasons accumulate; the image and excerpt conditions fire independently.
func scoreRisk(report *models.FeedReport) {
	items := report.Items
	report.ItemCount = len(items)
	if report.ItemCount == 0 {
		report.NewsBreakRisk = true
		report.NewsBreakRiskReasons = append(report.NewsBreakRiskReasons, reasonNoItems)
		return
	}

	totalLength := 0
	for _, item := range items {
		if item.Title != "" {
			report.ItemsWithTitle++
		}
		if item.Link != "" {
			report.ItemsWithLink++
		}
		if item.PubDate != "" {
			report.ItemsWithDate++
		}
		if item.HasImage {
			report.ItemsWithImage++
		}
		if item.LooksExcerpt {
			report.ExcerptLikeItems++
		}
		totalLength += item.ContentLength
	}

	total := float64(report.ItemCount)
	avg := float64(totalLength) / total
	report.AvgContentLength = math.Round(avg*10) / 10

	if float64(report.ItemsWithImage)/total < minImageRatio {
		report.NewsBreakRisk = true
		report.NewsBreakRiskReasons = append(report.NewsBreakRiskReasons, reasonFewImages)
	}
	if float64(report.ExcerptLikeItems)/total > maxExcerptRatio || avg < minAvgContentLen {
		report.NewsBreakRisk = true
		report.NewsBreakRiskReasons = append(report.NewsBreakRiskReasons, reasonExcerptOnly)
	}
}
