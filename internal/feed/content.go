package feed

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"newsvis-go-audit/internal/htmltext"
)

// Markers that signal an entry carries a teaser instead of the full text.
var excerptMarkers = []string{"continue reading", "read more", "[...]", "…"}

// ContentStats are the heuristics derived from an entry's embedded
// content fragment.
type ContentStats struct {
	Length       int
	HasImage     bool
	LooksExcerpt bool
}

// AnalyzeContent derives visible-text length, image presence and
// excerpt-likelihood from an embedded HTML fragment. Plain text fragments
// go through the same path; an empty fragment yields the zero value.
func AnalyzeContent(fragment string) ContentStats {
	if fragment == "" {
		return ContentStats{}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ContentStats{}
	}

	text := htmltext.VisibleText(doc.Selection)
	lowered := strings.ToLower(text)
	looksExcerpt := false
	for _, marker := range excerptMarkers {
		if strings.Contains(lowered, marker) {
			looksExcerpt = true
			break
		}
	}

	return ContentStats{
		Length:       utf8.RuneCountInString(text),
		HasImage:     doc.Find("img").Length() > 0,
		LooksExcerpt: looksExcerpt,
	}
}
