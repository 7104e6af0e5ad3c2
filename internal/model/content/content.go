// Package content models the bounded snapshot of the resources and services
// collections used to ground AI responses.
package content

import "strings"

// SnippetLimit caps the snippet derived from a resource's full content.
const SnippetLimit = 300

// ResourceDigest is the grounding-relevant projection of a resource document.
type ResourceDigest struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Topics      []string `json:"topics"`
	ReadingTime *float64 `json:"readingTime"`
	Snippet     string   `json:"snippet"`
}

// ServiceDigest is the grounding-relevant projection of a support service.
type ServiceDigest struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Phone   string   `json:"phone"`
	Tags    []string `json:"tags"`
}

// Snapshot is a point-in-time read of both collections, each bounded
// independently and kept in fetch order.
type Snapshot struct {
	Resources []ResourceDigest
	Services  []ServiceDigest
}

// Selection is the ranked subset of a snapshot fed into the generation prompt.
type Selection struct {
	Resources []ResourceDigest
	Services  []ServiceDigest
}

// Empty reports whether the selection carries no grounding items.
func (s Selection) Empty() bool {
	return len(s.Resources) == 0 && len(s.Services) == 0
}

// DecodeResource maps raw document data onto a ResourceDigest. Field
// derivation follows a fallback chain so legacy documents with tags or a
// single category still surface topics, and documents without a prepared
// snippet fall back to a truncated content body.
func DecodeResource(id string, data map[string]any) ResourceDigest {
	topics := stringList(data["topics"])
	if topics == nil {
		topics = stringList(data["tags"])
	}
	if topics == nil {
		if category := stringField(data, "category"); category != "" {
			topics = []string{category}
		} else {
			topics = []string{}
		}
	}

	snippet := stringField(data, "snippet")
	if snippet == "" {
		snippet = stringField(data, "summary")
	}
	if snippet == "" {
		snippet = truncate(stringField(data, "content"), SnippetLimit)
	}

	title := stringField(data, "title")
	if title == "" {
		title = "Untitled"
	}

	return ResourceDigest{
		ID:          id,
		Title:       title,
		Topics:      topics,
		ReadingTime: numberField(data, "readingTime", "readTime", "readingMinutes", "minutes"),
		Snippet:     snippet,
	}
}

// DecodeService maps raw document data onto a ServiceDigest.
func DecodeService(id string, data map[string]any) ServiceDigest {
	tags := stringList(data["tags"])
	if tags == nil {
		if category := stringField(data, "category"); category != "" {
			tags = []string{category}
		} else {
			tags = []string{}
		}
	}

	name := stringField(data, "name")
	if name == "" {
		name = "Service"
	}

	phone := stringField(data, "phone")
	if phone == "" {
		phone = stringField(data, "tel")
	}

	return ServiceDigest{
		ID:      id,
		Name:    name,
		Address: stringField(data, "address"),
		Phone:   phone,
		Tags:    tags,
	}
}

// SearchText concatenates the fields the relevance ranker matches against.
func (r ResourceDigest) SearchText() string {
	return strings.ToLower(r.Title + " " + strings.Join(r.Topics, " ") + " " + r.Snippet)
}

// SearchText concatenates the fields the relevance ranker matches against.
func (s ServiceDigest) SearchText() string {
	return strings.ToLower(s.Name + " " + strings.Join(s.Tags, " ") + " " + s.Address + " " + s.Phone)
}

func stringField(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

// stringList returns nil (not an empty slice) when the value is absent or not
// a list, so callers can distinguish "no field" from "empty field" while
// walking the fallback chain.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func numberField(data map[string]any, keys ...string) *float64 {
	for _, key := range keys {
		switch v := data[key].(type) {
		case float64:
			value := v
			return &value
		case int64:
			value := float64(v)
			return &value
		case int:
			value := float64(v)
			return &value
		}
	}
	return nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
