package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-posts/internal/validation"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// ParseFrontMatter splits source into its decoded front matter and the
// Markdown body. Sources without a front matter block return empty metadata
// and the full source as body.
func ParseFrontMatter(source []byte) (*interfaces.PostMetadata, []byte, error) {
	raw := map[string]any{}

	body, err := frontmatter.Parse(bytes.NewReader(source), &raw)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return metadataFromRaw(raw), body, nil
}

func metadataFromRaw(raw map[string]any) *interfaces.PostMetadata {
	raw, _ = validation.JSONCompatible(raw).(map[string]any)
	if raw == nil {
		raw = map[string]any{}
	}
	return &interfaces.PostMetadata{
		Title:       stringField(raw, "title"),
		Description: stringField(raw, "description"),
		Date:        stringField(raw, "date"),
		ReadTime:    stringField(raw, "readTime"),
		Image:       stringField(raw, "image"),
		Slug:        stringField(raw, "slug"),
		Raw:         raw,
	}
}

// stringField renders a scalar front matter value as text. YAML decodes
// unquoted dates into time.Time, which is written back as a calendar date
// when it has no clock component.
func stringField(raw map[string]any, key string) string {
	value, ok := raw[key]
	if !ok || value == nil {
		return ""
	}
	switch typed := value.(type) {
	case string:
		return typed
	case time.Time:
		return formatTimestamp(typed)
	case *time.Time:
		if typed == nil {
			return ""
		}
		return formatTimestamp(*typed)
	case fmt.Stringer:
		return typed.String()
	case bool, int, int64, uint64, float64:
		return strings.TrimSpace(fmt.Sprint(typed))
	default:
		return ""
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}
