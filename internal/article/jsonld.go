package article

import (
	"encoding/json"
	"strings"
)

// JSON-LD types that identify a news/blog article entity.
var articleTypes = map[string]struct{}{
	"article":     {},
	"newsarticle": {},
	"blogposting": {},
}

// Required Article fields. author and publisher must resolve to an object
// carrying a non-empty name; the rest only need a truthy value.
var requiredArticleFields = []string{"headline", "datePublished", "dateModified", "author", "publisher", "image"}

// parseJSONLDBlock decodes one script block into entities, recursively
// flattening @graph arrays. Every object, including list elements, counts
// as one entity. Malformed JSON yields nil, never an error.
func parseJSONLDBlock(raw string) []map[string]any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil
	}
	var entities []map[string]any
	collectEntities(parsed, &entities)
	return entities
}

// collectEntities is the explicit walk over the decoded variant tree:
// maps are entities (and may carry an @graph), slices are walked
// element-wise, scalars are ignored.
func collectEntities(node any, out *[]map[string]any) {
	switch v := node.(type) {
	case map[string]any:
		*out = append(*out, v)
		if graph, ok := v["@graph"].([]any); ok {
			for _, child := range graph {
				collectEntities(child, out)
			}
		}
	case []any:
		for _, child := range v {
			collectEntities(child, out)
		}
	}
}

// typeList normalizes an entity's @type into lowercase strings.
func typeList(rawType any) []string {
	switch v := rawType.(type) {
	case string:
		return []string{strings.ToLower(v)}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, strings.ToLower(s))
			}
		}
		return out
	}
	return nil
}

func isArticleTyped(entity map[string]any) bool {
	for _, t := range typeList(entity["@type"]) {
		if _, ok := articleTypes[t]; ok {
			return true
		}
	}
	return false
}

// missingArticleFields audits the required fields across all
// Article-typed entities. A field is satisfied when any entity carries
// it; author/publisher misses are labeled <field>.name.
func missingArticleFields(articles []map[string]any) []string {
	var missing []string
	for _, field := range requiredArticleFields {
		switch field {
		case "author", "publisher":
			if !anyHasNamedObject(articles, field) {
				missing = append(missing, field+".name")
			}
		default:
			if !anyHasTruthy(articles, field) {
				missing = append(missing, field)
			}
		}
	}
	return missing
}

func anyHasNamedObject(entities []map[string]any, field string) bool {
	for _, entity := range entities {
		switch v := entity[field].(type) {
		case map[string]any:
			if truthy(v["name"]) {
				return true
			}
		case []any:
			for _, item := range v {
				if obj, ok := item.(map[string]any); ok && truthy(obj["name"]) {
					return true
				}
			}
		}
	}
	return false
}

func anyHasTruthy(entities []map[string]any, field string) bool {
	for _, entity := range entities {
		if truthy(entity[field]) {
			return true
		}
	}
	return false
}

// truthy mirrors the duck-typed emptiness rules of structured data:
// empty strings, zero numbers, false, empty collections and null are all
// misses.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case float64:
		return x != 0
	case map[string]any:
		return len(x) > 0
	case []any:
		return len(x) > 0
	}
	return true
}
