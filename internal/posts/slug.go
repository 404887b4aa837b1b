package posts

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

// EffectiveSlug returns the slug a document is published under: the
// front matter slug when set, otherwise the file name of docPath without
// directory and extension. An empty result means the document has no slug.
func EffectiveSlug(docPath string, meta *interfaces.PostMetadata) string {
	if meta != nil && meta.Slug != "" {
		return meta.Slug
	}
	return BaseName(docPath)
}

// BaseName strips the directory and the final extension from docPath.
// Forward and back slashes are both treated as separators.
func BaseName(docPath string) string {
	clean := strings.ReplaceAll(filepath.ToSlash(strings.TrimSpace(docPath)), `\`, "/")
	if clean == "" {
		return ""
	}
	base := path.Base(clean)
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
