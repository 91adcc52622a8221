package note

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTitle is used when a note's content yields no title.
const DefaultTitle = "Untitled"

// Meta is display metadata derived from note content. It populates the
// label and tags of a history entry at touch time.
type Meta struct {
	Title string
	Tags  []string
}

type frontmatter struct {
	Title string `yaml:"title"`
	Tags  any    `yaml:"tags"`
}

// Derive extracts a title and tags from markdown note content. The
// title comes from the YAML frontmatter "title" field, falling back to
// the first ATX heading, then DefaultTitle. Tags come from the
// frontmatter "tags" field, which may be a YAML list or a comma
// separated string; order is preserved, duplicates dropped.
func Derive(content string) Meta {
	meta := Meta{Title: DefaultTitle, Tags: []string{}}

	body := content
	if fm, rest, ok := splitFrontmatter(content); ok {
		var parsed frontmatter
		if err := yaml.Unmarshal([]byte(fm), &parsed); err == nil {
			if parsed.Title != "" {
				meta.Title = parsed.Title
			}
			meta.Tags = parseTags(parsed.Tags)
		}
		body = rest
	}

	if meta.Title == DefaultTitle {
		if title, ok := firstHeading(body); ok {
			meta.Title = title
		}
	}

	return meta
}

// splitFrontmatter cuts a leading "---" delimited YAML block off the
// content. ok is false when there is no complete block.
func splitFrontmatter(content string) (fm, rest string, ok bool) {
	if !strings.HasPrefix(content, "---\n") && content != "---" {
		return "", "", false
	}

	trimmed := strings.TrimPrefix(content, "---\n")
	idx := strings.Index(trimmed, "\n---")
	if idx < 0 {
		return "", "", false
	}

	fm = trimmed[:idx]
	rest = trimmed[idx+len("\n---"):]
	rest = strings.TrimPrefix(rest, "\n")
	return fm, rest, true
}

func firstHeading(body string) (string, bool) {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "#") {
			continue
		}
		title := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		if title != "" {
			return title, true
		}
	}
	return "", false
}

func parseTags(raw any) []string {
	var candidates []string

	switch v := raw.(type) {
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				candidates = append(candidates, s)
			}
		}
	case string:
		candidates = strings.Split(v, ",")
	}

	tags := []string{}
	seen := map[string]bool{}
	for _, tag := range candidates {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
