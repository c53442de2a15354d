package feed

import "testing"

func TestAnalyzeContentEmpty(t *testing.T) {
	stats := AnalyzeContent("")
	if stats.Length != 0 || stats.HasImage || stats.LooksExcerpt {
		t.Fatalf("empty fragment must yield zero value, got %+v", stats)
	}
}

func TestAnalyzeContentMarkup(t *testing.T) {
	stats := AnalyzeContent(`<p>Intro paragraph.</p><img src="pic.webp"><p>Continue Reading</p>`)
	if !stats.HasImage {
		t.Fatal("img element must be detected")
	}
	if !stats.LooksExcerpt {
		t.Fatal("marker matching is case-insensitive on the visible text")
	}
	if stats.Length != len("Intro paragraph. Continue Reading") {
		t.Fatalf("length: %d", stats.Length)
	}
}

func TestAnalyzeContentPlainText(t *testing.T) {
	stats := AnalyzeContent("Just a plain teaser [...]")
	if stats.HasImage {
		t.Fatal("no image in plain text")
	}
	if !stats.LooksExcerpt {
		t.Fatal("[...] is an excerpt marker")
	}
	if stats.Length == 0 {
		t.Fatal("plain text still has visible length")
	}
}

func TestAnalyzeContentEllipsisRune(t *testing.T) {
	stats := AnalyzeContent("Teaser ends here…")
	if !stats.LooksExcerpt {
		t.Fatal("ellipsis rune is an excerpt marker")
	}
	// character count, not byte count
	if stats.Length != 17 {
		t.Fatalf("length: %d", stats.Length)
	}
}
