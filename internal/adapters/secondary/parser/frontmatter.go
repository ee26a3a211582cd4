package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

// frontMatterEnvelope accepts YAML, TOML and JSON front matter. Keywords and
// tags may be a list or a comma separated string.
type frontMatterEnvelope struct {
	Title    string `yaml:"title" toml:"title" json:"title"`
	Author   string `yaml:"author" toml:"author" json:"author"`
	Subject  string `yaml:"subject" toml:"subject" json:"subject"`
	Keywords any    `yaml:"keywords" toml:"keywords" json:"keywords"`
	Tags     any    `yaml:"tags" toml:"tags" json:"tags"`
	Template string `yaml:"template" toml:"template" json:"template"`
	Theme    string `yaml:"theme" toml:"theme" json:"theme"`
}

// splitFrontMatter separates metadata from the markdown body. Malformed
// front matter is kept as body text.
func (x *GoldmarkExtractor) splitFrontMatter(content []byte) (entities.DocumentMetadata, []byte) {
	var env frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(content), &env)
	if err != nil {
		x.logger.Warn("front matter ignored",
			"kind", entities.ErrorParseRecoverable, "error", err)
		return entities.DocumentMetadata{}, content
	}

	return envelopeToMetadata(env), body
}

func envelopeToMetadata(env frontMatterEnvelope) entities.DocumentMetadata {
	meta := entities.DocumentMetadata{
		Title:    strings.TrimSpace(env.Title),
		Author:   strings.TrimSpace(env.Author),
		Subject:  strings.TrimSpace(env.Subject),
		Template: strings.TrimSpace(env.Template),
	}
	if meta.Template == "" {
		meta.Template = strings.TrimSpace(env.Theme)
	}

	seen := make(map[string]bool)
	for _, kw := range append(stringList(env.Keywords), stringList(env.Tags)...) {
		if kw != "" && !seen[kw] {
			seen[kw] = true
			meta.Keywords = append(meta.Keywords, kw)
		}
	}

	return meta
}

// stringList normalizes a scalar or list front matter value
func stringList(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		parts := strings.Split(val, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			out = append(out, strings.TrimSpace(p))
		}
		return out
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, strings.TrimSpace(fmt.Sprint(item)))
		}
		return out
	default:
		return []string{strings.TrimSpace(fmt.Sprint(val))}
	}
}
