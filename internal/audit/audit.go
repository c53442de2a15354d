// Package audit runs the full news-visibility pipeline against one site:
// robots and sitemap discovery, feed selection and scoring, article
// sampling and structured-metadata analysis.
package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"newsvis-go-audit/internal/article"
	"newsvis-go-audit/internal/config"
	"newsvis-go-audit/internal/feed"
	"newsvis-go-audit/internal/fetch"
	"newsvis-go-audit/internal/models"
	"newsvis-go-audit/internal/robots"
	"newsvis-go-audit/internal/sitemap"
	"newsvis-go-audit/internal/urlx"
	"newsvis-go-audit/pkg/logger"
)

// Auditor owns the HTTP client and configuration for audit runs. One
// Auditor is safe for concurrent runs.
type Auditor struct {
	client *fetch.Client
	cfg    *config.Config
}

func New(cfg *config.Config) *Auditor {
	return &Auditor{
		client: fetch.NewClient(cfg.Timeout(), cfg.DialTimeout(), int64(cfg.SizeCapBytes), cfg.UserAgent),
		cfg:    cfg,
	}
}

// Run audits one site and returns the complete record. The only error is
// an unusable site URL; every network failure inside the pipeline degrades
// into the corresponding finding instead.
func (a *Auditor) Run(ctx context.Context, rawSite string) (*models.AuditResult, error) {
	site, err := urlx.NormalizeSite(rawSite)
	if err != nil {
		return nil, err
	}
	log := logger.Log.With(zap.String("site", site))
	log.Info("Starting audit")

	res := &models.AuditResult{Site: site}

	res.Discovery.Robots = robots.Analyze(ctx, a.client, site)
	log.Debug("Robots analyzed",
		zap.Int("status", res.Discovery.Robots.Status),
		zap.Int("blocking_rules", len(res.Discovery.Robots.PotentiallyBlockingRules)))

	res.Discovery.Sitemaps = sitemap.Probe(ctx, a.client, site, a.cfg.MaxConcurrentFetch)

	located := feed.Locate(ctx, a.client, site)
	res.Feed = feed.SelectAndScore(ctx, a.client, located, a.cfg.MaxConcurrentFetch)
	log.Info("Feed checked",
		zap.String("selected", res.Feed.SelectedFeedURL),
		zap.Int("items", res.Feed.ItemCount),
		zap.Bool("risk", res.Feed.NewsBreakRisk))

	res.Articles = a.auditArticles(ctx, site, res.Feed.Items, located.HomepageHTML)
	log.Info("Audit finished",
		zap.Int("sampled", res.Articles.Summary.Sampled),
		zap.Int("fetched", res.Articles.Summary.Fetched))

	res.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	return res, nil
}

// auditArticles samples article URLs and analyzes them with bounded
// concurrency. Findings come back in sample order regardless of which
// fetch finished first.
func (a *Auditor) auditArticles(ctx context.Context, site string, entries []models.FeedEntry, homepageHTML string) models.ArticleReport {
	exclude := a.cfg.ExcludePathPatterns
	if len(exclude) == 0 {
		exclude = article.DefaultExcludePatterns
	}
	urls := article.SampleURLs(site, entries, homepageHTML, a.cfg.SampleSize, exclude)

	report := models.ArticleReport{
		SampleURLs: urls,
		Pages:      make([]models.ArticleFinding, len(urls)),
	}

	analyzer := article.NewAnalyzer(a.client)
	workers := a.cfg.MaxConcurrentFetch
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	done := make(chan int, len(urls))
	for i, u := range urls {
		i, u := i, u
		sem <- struct{}{} // acquire
		go func() {
			defer func() { <-sem; done <- i }()
			report.Pages[i] = analyzer.Analyze(ctx, u)
		}()
	}
	for range urls {
		<-done
	}

	report.Summary = article.Summarize(report.Pages)
	return report
}
