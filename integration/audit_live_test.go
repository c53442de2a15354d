//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"newsvis-go-audit/internal/audit"
	"newsvis-go-audit/internal/config"
)

func TestLiveWordPressAudit(t *testing.T) {
	// wordpress.org's own news blog; a stable, feed-serving WP install
	site := "https://wordpress.org/news/"

	cfg := config.Default()
	cfg.SampleSize = 3

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	res, err := audit.New(cfg).Run(ctx, site)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Discovery.Robots.Error != "" {
		t.Skipf("skipping: network unavailable: %s", res.Discovery.Robots.Error)
		return
	}

	if res.Feed.SelectedFeedURL == "" {
		t.Errorf("expected a selectable feed, checked %d candidates", len(res.Feed.CheckedFeeds))
	}
	if res.Feed.ItemCount == 0 {
		t.Errorf("expected feed items")
	}
	if res.Articles.Summary.Fetched == 0 {
		t.Errorf("expected at least one fetched article")
	}
}
