package feed

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"

	"newsvis-go-audit/internal/models"
)

// Element names holding an entry's publication date. Any match is
// accepted; the first one in document order wins.
var dateNames = map[string]struct{}{
	"pubdate":   {},
	"date":      {},
	"published": {},
	"updated":   {},
}

// Element names carrying embedded content; first in document order wins.
var contentNames = map[string]struct{}{
	"encoded":     {},
	"content":     {},
	"summary":     {},
	"description": {},
}

// Element names that may reference an entry image.
var mediaNames = map[string]struct{}{
	"enclosure": {},
	"content":   {},
	"thumbnail": {},
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif", ".avif"}

// Parse parses raw RSS or Atom XML into normalized entries. All element
// matching goes through localName, so namespace prefixes and default
// namespace declarations are irrelevant: that seam is the parser contract.
func Parse(feedText string) ([]models.FeedEntry, error) {
	doc, err := xmlquery.Parse(strings.NewReader(feedText))
	if err != nil {
		return nil, err
	}

	root := firstElementChild(doc)
	if root == nil {
		return nil, fmt.Errorf("feed document has no root element")
	}

	var nodes []*xmlquery.Node
	switch localName(root) {
	case "rss":
		channel := findChild(root, "channel")
		if channel == nil {
			return nil, fmt.Errorf("RSS channel element is missing")
		}
		nodes = findChildren(channel, "item")
	case "feed":
		nodes = findChildren(root, "entry")
	default:
		return nil, fmt.Errorf("unsupported feed root element: %s", localName(root))
	}

	entries := make([]models.FeedEntry, 0, len(nodes))
	for _, node := range nodes {
		entries = append(entries, parseEntry(node))
	}
	return entries, nil
}

func parseEntry(node *xmlquery.Node) models.FeedEntry {
	entry := models.FeedEntry{
		Title: firstChildText(node, map[string]struct{}{"title": {}}),
		Link:  extractEntryLink(node),
	}

	var content string
	hasImage := false
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		name := localName(c)

		if entry.PubDate == "" {
			if _, ok := dateNames[name]; ok {
				entry.PubDate = strings.TrimSpace(c.InnerText())
			}
		}
		if content == "" {
			if _, ok := contentNames[name]; ok {
				raw := c.InnerText()
				if strings.Contains(raw, "<") {
					content = raw
				} else {
					content = strings.TrimSpace(raw)
				}
			}
		}
		if _, ok := mediaNames[name]; ok {
			mediaType := strings.ToLower(attrValue(c, "type"))
			mediaURL := strings.TrimSpace(attrValue(c, "url"))
			if mediaURL == "" {
				mediaURL = strings.TrimSpace(attrValue(c, "href"))
			}
			if strings.HasPrefix(mediaType, "image/") || looksLikeImageURL(mediaURL) {
				hasImage = true
			}
		}
	}

	stats := AnalyzeContent(content)
	entry.ContentLength = stats.Length
	entry.LooksExcerpt = stats.LooksExcerpt
	entry.HasImage = hasImage || stats.HasImage
	return entry
}

// extractEntryLink prefers an href attribute over text content; the first
// link child providing either wins.
func extractEntryLink(node *xmlquery.Node) string {
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode || localName(c) != "link" {
			continue
		}
		if href := strings.TrimSpace(attrValue(c, "href")); href != "" {
			return href
		}
		if text := strings.TrimSpace(c.InnerText()); text != "" {
			return text
		}
	}
	return ""
}

func looksLikeImageURL(value string) bool {
	lowered := strings.ToLower(value)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lowered, ext) {
			return true
		}
	}
	return false
}

// localName is the lowercase element name with any namespace stripped.
// xmlquery already separates the prefix, so Data is the local part.
func localName(n *xmlquery.Node) string {
	return strings.ToLower(n.Data)
}

func attrValue(n *xmlquery.Node, name string) string {
	for _, a := range n.Attr {
		if strings.ToLower(a.Name.Local) == name {
			return a.Value
		}
	}
	return ""
}

func firstElementChild(n *xmlquery.Node) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

func findChild(n *xmlquery.Node, name string) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && localName(c) == name {
			return c
		}
	}
	return nil
}

func findChildren(n *xmlquery.Node, name string) []*xmlquery.Node {
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && localName(c) == name {
			out = append(out, c)
		}
	}
	return out
}

func firstChildText(n *xmlquery.Node, names map[string]struct{}) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		if _, ok := names[localName(c)]; !ok {
			continue
		}
		if text := strings.TrimSpace(c.InnerText()); text != "" {
			return text
		}
	}
	return ""
}
