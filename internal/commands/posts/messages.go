package postscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

const (
	listPostsMessageType  = "posts.index.list"
	listSlugsMessageType  = "posts.index.slugs"
	showPostMessageType   = "posts.index.show"
	renderPostMessageType = "posts.index.render"
)

// ListPostsCommand prints post summaries, newest first. Limit caps the number
// of entries; zero prints all of them.
type ListPostsCommand struct {
	Limit int `json:"limit,omitempty"`
}

// Type implements command.Message.
func (ListPostsCommand) Type() string { return listPostsMessageType }

// Validate rejects negative limits.
func (cmd ListPostsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Limit, validation.Min(0)),
	)
}

// ListSlugsCommand prints the slug of every listed post.
type ListSlugsCommand struct{}

// Type implements command.Message.
func (ListSlugsCommand) Type() string { return listSlugsMessageType }

// Validate implements command.Message. There is nothing to check.
func (ListSlugsCommand) Validate() error { return nil }

// ShowPostCommand prints the metadata and Markdown body of one post.
type ShowPostCommand struct {
	Slug string `json:"slug"`
}

// Type implements command.Message.
func (ShowPostCommand) Type() string { return showPostMessageType }

// Validate ensures a slug is present.
func (cmd ShowPostCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Slug, validation.By(requiredSlug(showPostMessageType))),
	)
}

// RenderPostCommand prints the HTML rendering of one post. Options are merged
// over the parser defaults configured for the loader.
type RenderPostCommand struct {
	Slug    string                  `json:"slug"`
	Options interfaces.ParseOptions `json:"options,omitempty"`
}

// Type implements command.Message.
func (RenderPostCommand) Type() string { return renderPostMessageType }

// Validate ensures a slug is present.
func (cmd RenderPostCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Slug, validation.By(requiredSlug(renderPostMessageType))),
	)
}

func requiredSlug(messageType string) validation.RuleFunc {
	return func(value any) error {
		slug, _ := value.(string)
		if strings.TrimSpace(slug) == "" {
			return validation.NewError(messageType+".slug_required", "slug is required")
		}
		return nil
	}
}
