package markdown

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

var ErrNoParser = errors.New("markdown: content has no parser")

// Content is the renderable handle attached to every loaded document. Body
// is the Markdown source without its front matter block.
type Content struct {
	Path     string
	Body     []byte
	Checksum []byte

	parser   interfaces.MarkdownParser
	defaults interfaces.ParseOptions
}

// NewContent returns a handle that renders body through parser.
func NewContent(path string, body []byte, parser interfaces.MarkdownParser, defaults interfaces.ParseOptions) *Content {
	return &Content{
		Path:     path,
		Body:     body,
		parser:   parser,
		defaults: defaults,
	}
}

// Render converts Body to HTML. opts are merged over the loader defaults.
func (c *Content) Render(ctx context.Context, opts interfaces.ParseOptions) ([]byte, error) {
	if c == nil {
		return nil, errors.New("markdown: content is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.parser == nil {
		return nil, ErrNoParser
	}
	html, err := c.parser.ParseWithOptions(c.Body, mergeParseOptions(c.defaults, opts))
	if err != nil {
		return nil, fmt.Errorf("markdown render %s: %w", c.Path, err)
	}
	return html, nil
}
