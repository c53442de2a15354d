package article

import (
	"reflect"
	"testing"
)

func TestParseJSONLDBlockGraphFlattening(t *testing.T) {
	raw := `{
		"@context": "https://schema.org",
		"@graph": [
			{"@type": "WebSite", "name": "Example"},
			{"@type": "NewsArticle", "headline": "Breaking"}
		]
	}`
	entities := parseJSONLDBlock(raw)
	// the wrapper object plus both graph members
	if len(entities) != 3 {
		t.Fatalf("want 3 entities, got %d", len(entities))
	}
}

func TestParseJSONLDBlockList(t *testing.T) {
	entities := parseJSONLDBlock(`[{"@type": "Article"}, {"@type": "Person"}]`)
	if len(entities) != 2 {
		t.Fatalf("want 2 entities, got %d", len(entities))
	}
}

func TestParseJSONLDBlockMalformed(t *testing.T) {
	if entities := parseJSONLDBlock(`{"broken": `); entities != nil {
		t.Fatalf("malformed block must be skipped, got %#v", entities)
	}
}

func TestIsArticleTyped(t *testing.T) {
	cases := []struct {
		entity map[string]any
		want   bool
	}{
		{map[string]any{"@type": "NewsArticle"}, true},
		{map[string]any{"@type": "BLOGPOSTING"}, true},
		{map[string]any{"@type": []any{"Thing", "Article"}}, true},
		{map[string]any{"@type": "WebPage"}, false},
		{map[string]any{}, false},
	}
	for _, c := range cases {
		if got := isArticleTyped(c.entity); got != c.want {
			t.Fatalf("isArticleTyped(%#v) = %v", c.entity, got)
		}
	}
}

func TestMissingArticleFields(t *testing.T) {
	articles := []map[string]any{{
		"@type":         "NewsArticle",
		"headline":      "Breaking",
		"datePublished": "2024-01-01",
		"author":        map[string]any{"name": "Jane"},
		"publisher":     map[string]any{"logo": "x.png"}, // no name
		"image":         []any{"https://example.com/i.jpg"},
	}}
	got := missingArticleFields(articles)
	want := []string{"dateModified", "publisher.name"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestMissingArticleFieldsAuthorList(t *testing.T) {
	articles := []map[string]any{{
		"@type":  "Article",
		"author": []any{map[string]any{"name": "Jane"}},
	}}
	for _, field := range missingArticleFields(articles) {
		if field == "author.name" {
			t.Fatal("author list with a named object must satisfy the check")
		}
	}
}

func TestMissingFieldSatisfiedAcrossEntities(t *testing.T) {
	articles := []map[string]any{
		{"@type": "Article", "headline": "A"},
		{"@type": "Article", "dateModified": "2024-01-02"},
	}
	for _, field := range missingArticleFields(articles) {
		if field == "headline" || field == "dateModified" {
			t.Fatalf("field %q is present on one of the entities", field)
		}
	}
}
