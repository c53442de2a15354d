package sitemap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"newsvis-go-audit/internal/fetch"
)

func newClient() *fetch.Client {
	return fetch.NewClient(5*time.Second, 2*time.Second, 1<<20, "newsvis-audit-test/1.0")
}

// Deliberately malformed XML: the extractor is a pattern match, not a parser.
const brokenSitemap = `<?xml version="1.0"?>
<urlset><url><loc>https://example.com/a</loc><lastmod>2024-01-02</lastmod>
<url><loc>https://example.com/b</loc><LastMod>2024-01-03</LastMod>
<lastmod>2024-01-04</lastmod><lastmod>2024-01-05</lastmod>`

func TestExtractLastmodsCapAndCase(t *testing.T) {
	got := ExtractLastmods(brokenSitemap, 3)
	want := []string{"2024-01-02", "2024-01-03", "2024-01-04"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestProbe(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sitemap.xml":
			w.Header().Set("Content-Type", "application/xml")
			_, _ = w.Write([]byte(brokenSitemap))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	probes := Probe(context.Background(), newClient(), ts.URL+"/", 4)
	if len(probes) != len(CandidatePaths) {
		t.Fatalf("want %d probes, got %d", len(CandidatePaths), len(probes))
	}
	for i, p := range probes {
		if p.Path != CandidatePaths[i] {
			t.Fatalf("probe %d out of order: %s", i, p.Path)
		}
	}
	first := probes[0]
	if !first.Exists || first.ContentType != "application/xml" {
		t.Fatalf("sitemap.xml probe: %+v", first)
	}
	if len(first.LastmodHints) != 3 {
		t.Fatalf("lastmod hints: %#v", first.LastmodHints)
	}
	if probes[1].Exists || probes[1].Status != 404 {
		t.Fatalf("missing endpoint must not exist: %+v", probes[1])
	}
}

func TestProbeTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	probes := Probe(context.Background(), newClient(), ts.URL+"/", 2)
	for _, p := range probes {
		if p.Exists || p.Error == "" || p.Status != 0 {
			t.Fatalf("want degraded probe, got %+v", p)
		}
	}
}
