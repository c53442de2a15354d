package robots

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

func TestParseDirectives(t *testing.T) {
	text := "# header comment\n" +
		"User-agent: *\n" +
		"Disallow: /private # inline comment\n" +
		"\n" +
		"disallow: /feed/\n" +
		"Sitemap: https://example.com/sitemap.xml\n" +
		"no-colon-line\n"

	disallow, sitemaps := ParseDirectives(text)
	if want := []string{"/private", "/feed/"}; !reflect.DeepEqual(disallow, want) {
		t.Fatalf("disallow = %#v, want %#v", disallow, want)
	}
	if want := []string{"https://example.com/sitemap.xml"}; !reflect.DeepEqual(sitemaps, want) {
		t.Fatalf("sitemaps = %#v, want %#v", sitemaps, want)
	}
}

func TestClassifyBlocking(t *testing.T) {
	rules := []string{
		"/wp-sitemap/foo", // prefix of important path
		"/private",        // harmless
		"/",               // whole site
		"/?feed=rss2",     // query rule naming feed
		"/?s=",            // harmless query rule
		"/feedback",       // not a /feed prefix match
		"/wp-sitemap/foo", // duplicate
	}
	got := ClassifyBlocking(rules)
	want := []string{"/", "/?feed=rss2", "/wp-sitemap/foo"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestClassifyBlockingOrderIndependent(t *testing.T) {
	a := ClassifyBlocking([]string{"/", "/feed/x", "/?sitemap=1"})
	b := ClassifyBlocking([]string{"/?sitemap=1", "/", "/feed/x"})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("set semantics violated: %#v vs %#v", a, b)
	}
}

func TestAnalyze(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /feed/\nSitemap: /sitemap.xml\n"))
	}))
	defer ts.Close()

	findings := Analyze(context.Background(), newClient(), ts.URL+"/")
	if findings.Status != 200 || findings.Error != "" {
		t.Fatalf("unexpected fetch outcome: %+v", findings)
	}
	if len(findings.DisallowRules) != 1 || findings.DisallowRules[0] != "/feed/" {
		t.Fatalf("disallow rules: %#v", findings.DisallowRules)
	}
	if len(findings.PotentiallyBlockingRules) != 1 {
		t.Fatalf("blocking rules: %#v", findings.PotentiallyBlockingRules)
	}
	// the parsed group must also deny the feed probe path
	found := false
	for _, p := range findings.BlockedProbePaths {
		if p == "/feed/" {
			found = true
		}
	}
	if !found {
		t.Fatalf("blocked probe paths: %#v", findings.BlockedProbePaths)
	}
}

func TestAnalyzeFetchFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	findings := Analyze(context.Background(), newClient(), ts.URL+"/")
	if findings.Error == "" || findings.Status != 0 {
		t.Fatalf("want error-populated result, got %+v", findings)
	}
	if len(findings.DisallowRules) != 0 || len(findings.PotentiallyBlockingRules) != 0 {
		t.Fatal("rule sets must stay empty on fetch failure")
	}
}
