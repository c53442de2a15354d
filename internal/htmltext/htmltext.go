// Package htmltext extracts the visible text of parsed HTML: text nodes
// trimmed and joined with single spaces, script/style/noscript excluded.
package htmltext

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

var skipElements = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
}

// VisibleText returns the whitespace-collapsed visible text of a selection.
func VisibleText(sel *goquery.Selection) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, skip := skipElements[n.Data]; skip {
				return
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return whitespaceRe.ReplaceAllString(strings.Join(parts, " "), " ")
}
