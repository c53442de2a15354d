package article

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"newsvis-go-audit/internal/fetch"
)

func newClient() *fetch.Client {
	return fetch.NewClient(5*time.Second, 2*time.Second, 1<<20, "newsvis-audit-test/1.0")
}

func serve(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
}

const fullArticle = `<!doctype html><html><head>
<link rel="canonical" href="/post/hello/">
<meta name="ROBOTS" content="index, follow">
<meta property="og:title" content="Hello">
<meta property="og:type" content="article">
<meta property="og:image" content="https://example.com/hero.jpg">
<meta property="og:image:width" content="1200">
<meta property="og:image:height" content="630">
<script type="application/ld+json">
{"@context":"https://schema.org","@graph":[
  {"@type":"NewsArticle","headline":"Hello","datePublished":"2024-05-01",
   "dateModified":"2024-05-02","author":{"name":"Jane"},
   "publisher":{"name":"Example News"},"image":"https://example.com/hero.jpg"}
]}
</script>
<script src="/blocking-1.js"></script>
<script src="/blocking-2.js"></script>
<script src="/deferred.js" defer></script>
<script src="/later.js" async></script>
<script type="module" src="/mod.js"></script>
</head><body>
<article><time datetime="2024-05-01T09:00:00Z">May 1, 2024</time>
<p>Body text.</p></article>
<script src="/body-script.js"></script>
</body></html>`

func TestAnalyzeFullArticle(t *testing.T) {
	ts := serve(t, fullArticle)
	defer ts.Close()

	url := ts.URL + "/post/hello"
	finding := NewAnalyzer(newClient()).Analyze(context.Background(), url)

	if finding.Status != 200 || finding.Error != "" {
		t.Fatalf("fetch outcome: %+v", finding)
	}
	if !finding.Canonical.Exists || !finding.Canonical.ConsistentWithURL {
		t.Fatalf("canonical: %+v", finding.Canonical)
	}
	if finding.MetaRobots.Noindex {
		t.Fatal("index,follow is not noindex")
	}
	og := finding.OpenGraph
	if !og.Title || !og.Type || og.URL || !og.Image {
		t.Fatalf("open graph flags: %+v", og)
	}
	if og.ImageWidth == nil || *og.ImageWidth != 1200 || og.ImageHeight == nil || *og.ImageHeight != 630 {
		t.Fatalf("image dimensions: %+v", og)
	}
	if !finding.PublicationDateVisible {
		t.Fatal("time[datetime] must count as a visible date")
	}
	if finding.JSONLD.ArticleEntityCount != 1 || finding.JSONLD.EntityCount != 2 {
		t.Fatalf("jsonld: %+v", finding.JSONLD)
	}
	if len(finding.JSONLD.MissingFields) != 0 {
		t.Fatalf("missing fields: %#v", finding.JSONLD.MissingFields)
	}
	// head scripts: two plain blockers; ld+json, defer, async, module and
	// the body script are all excluded
	if finding.Performance.RenderBlockingScripts != 2 {
		t.Fatalf("render-blocking scripts: %d", finding.Performance.RenderBlockingScripts)
	}
	if finding.Performance.HugeInlineScripts != 0 {
		t.Fatalf("huge inline scripts: %d", finding.Performance.HugeInlineScripts)
	}
	if finding.ResponseSizeBytes != len(fullArticle) {
		t.Fatalf("response size: %d", finding.ResponseSizeBytes)
	}
}

func TestAnalyzeNoindexAndMismatchedCanonical(t *testing.T) {
	page := `<html><head>
	<link rel="stylesheet alternate" href="/nope.css">
	<link rel="Canonical" href="https://example.com/other-post">
	<meta name="custom-robots-directive" content="NOINDEX, nofollow">
	</head><body><p>Published on 2024-06-07 by staff.</p></body></html>`
	ts := serve(t, page)
	defer ts.Close()

	finding := NewAnalyzer(newClient()).Analyze(context.Background(), ts.URL+"/post")
	if !finding.Canonical.Exists || finding.Canonical.ConsistentWithURL {
		t.Fatalf("canonical: %+v", finding.Canonical)
	}
	if !finding.MetaRobots.Noindex {
		t.Fatal("name containing robots with noindex content must flag")
	}
	if !finding.PublicationDateVisible {
		t.Fatal("ISO date in visible text must flag")
	}
	if finding.JSONLD.EntityCount != 0 || len(finding.JSONLD.MissingFields) != 0 {
		t.Fatalf("jsonld without blocks: %+v", finding.JSONLD)
	}
}

func TestAnalyzeMissingJSONLDFields(t *testing.T) {
	page := `<html><head><script type="application/ld+json">
	{"@type":"BlogPosting","headline":"x","author":"just a string"}
	</script></head><body></body></html>`
	ts := serve(t, page)
	defer ts.Close()

	finding := NewAnalyzer(newClient()).Analyze(context.Background(), ts.URL+"/p")
	want := []string{"author.name", "dateModified", "datePublished", "image", "publisher.name"}
	if !reflect.DeepEqual(finding.JSONLD.MissingFields, want) {
		t.Fatalf("missing fields: %#v", finding.JSONLD.MissingFields)
	}
}

func TestAnalyzeHugeInlineScript(t *testing.T) {
	page := "<html><head><script>" + strings.Repeat("x", hugeInlineScriptChars+1) + "</script></head><body></body></html>"
	ts := serve(t, page)
	defer ts.Close()

	finding := NewAnalyzer(newClient()).Analyze(context.Background(), ts.URL+"/p")
	if finding.Performance.RenderBlockingScripts != 1 || finding.Performance.HugeInlineScripts != 1 {
		t.Fatalf("performance: %+v", finding.Performance)
	}
}

func TestAnalyzeDateOnlyInScriptIsNotVisible(t *testing.T) {
	page := `<html><head><script>var published = "2024-01-01";</script></head>
	<body><p>No dates here.</p></body></html>`
	ts := serve(t, page)
	defer ts.Close()

	finding := NewAnalyzer(newClient()).Analyze(context.Background(), ts.URL+"/p")
	if finding.PublicationDateVisible {
		t.Fatal("script contents are not visible text")
	}
}

func TestAnalyzeFetchFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	finding := NewAnalyzer(newClient()).Analyze(context.Background(), ts.URL+"/p")
	if finding.Error == "" || finding.Status != 0 {
		t.Fatalf("want degraded finding, got %+v", finding)
	}
	if finding.Canonical.Exists || finding.JSONLD.EntityCount != 0 {
		t.Fatal("derived fields must stay empty on fetch failure")
	}
}
