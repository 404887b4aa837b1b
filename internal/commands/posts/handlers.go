package postscmd

import (
	"context"
	"errors"
	"fmt"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-posts/internal/commands"
	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/internal/markdown"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

const (
	listOperation   = "posts.list"
	slugsOperation  = "posts.slugs"
	showOperation   = "posts.show"
	renderOperation = "posts.render"
)

// ErrPostNotFound is returned, tagged with the not found category, when no
// post has the requested slug.
var ErrPostNotFound = errors.New("posts command: post not found")

// Index is the post index the handlers read from.
type Index = interfaces.PostIndex[*markdown.Content]

var (
	_ command.Commander[ListPostsCommand]  = (*ListPostsHandler)(nil)
	_ command.Commander[ListSlugsCommand]  = (*ListSlugsHandler)(nil)
	_ command.Commander[ShowPostCommand]   = (*ShowPostHandler)(nil)
	_ command.Commander[RenderPostCommand] = (*RenderPostHandler)(nil)
)

// ListPostsHandler prints post summaries.
type ListPostsHandler struct {
	inner *commands.Handler[ListPostsCommand]
}

// NewListPostsHandler creates a handler bound to index and printer.
func NewListPostsHandler(index Index, printer *Printer, logger interfaces.Logger, opts ...commands.HandlerOption[ListPostsCommand]) *ListPostsHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ListPostsCommand) error {
		summaries := index.ListPosts()
		total := len(summaries)
		if msg.Limit > 0 && msg.Limit < total {
			summaries = summaries[:msg.Limit]
		}
		logging.WithFields(baseLogger, map[string]any{
			"total":   total,
			"printed": len(summaries),
		}).Debug("posts.command.list.completed")
		return printer.PrintSummaries(summaries)
	}

	handlerOpts := []commands.HandlerOption[ListPostsCommand]{
		commands.WithLogger[ListPostsCommand](baseLogger),
		commands.WithOperation[ListPostsCommand](listOperation),
		commands.WithMessageFields(func(msg ListPostsCommand) map[string]any {
			if msg.Limit == 0 {
				return nil
			}
			return map[string]any{"limit": msg.Limit}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ListPostsHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ListPostsCommand].
func (h *ListPostsHandler) Execute(ctx context.Context, msg ListPostsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ListSlugsHandler prints post slugs.
type ListSlugsHandler struct {
	inner *commands.Handler[ListSlugsCommand]
}

// NewListSlugsHandler creates a handler bound to index and printer.
func NewListSlugsHandler(index Index, printer *Printer, logger interfaces.Logger, opts ...commands.HandlerOption[ListSlugsCommand]) *ListSlugsHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, _ ListSlugsCommand) error {
		return printer.PrintSlugs(index.ListPostSlugs())
	}

	handlerOpts := []commands.HandlerOption[ListSlugsCommand]{
		commands.WithLogger[ListSlugsCommand](baseLogger),
		commands.WithOperation[ListSlugsCommand](slugsOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ListSlugsHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ListSlugsCommand].
func (h *ListSlugsHandler) Execute(ctx context.Context, msg ListSlugsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ShowPostHandler prints the metadata and body of one post.
type ShowPostHandler struct {
	inner *commands.Handler[ShowPostCommand]
}

// NewShowPostHandler creates a handler bound to index and printer.
func NewShowPostHandler(index Index, printer *Printer, logger interfaces.Logger, opts ...commands.HandlerOption[ShowPostCommand]) *ShowPostHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ShowPostCommand) error {
		detail, err := lookup(index, msg.Slug)
		if err != nil {
			return err
		}
		return printer.PrintDetail(detail)
	}

	handlerOpts := []commands.HandlerOption[ShowPostCommand]{
		commands.WithLogger[ShowPostCommand](baseLogger),
		commands.WithOperation[ShowPostCommand](showOperation),
		commands.WithMessageFields(func(msg ShowPostCommand) map[string]any {
			return map[string]any{"slug": msg.Slug}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ShowPostHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ShowPostCommand].
func (h *ShowPostHandler) Execute(ctx context.Context, msg ShowPostCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RenderPostHandler prints the HTML rendering of one post.
type RenderPostHandler struct {
	inner *commands.Handler[RenderPostCommand]
}

// NewRenderPostHandler creates a handler bound to index and printer.
func NewRenderPostHandler(index Index, printer *Printer, logger interfaces.Logger, opts ...commands.HandlerOption[RenderPostCommand]) *RenderPostHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg RenderPostCommand) error {
		detail, err := lookup(index, msg.Slug)
		if err != nil {
			return err
		}
		if detail.Content == nil {
			return fmt.Errorf("posts command: post %q has no content", msg.Slug)
		}
		html, err := detail.Content.Render(ctx, msg.Options)
		if err != nil {
			return err
		}
		logging.WithDocumentContext(baseLogger, detail.Content.Path, detail.Slug).
			Debug("posts.command.render.completed", "bytes", len(html))
		return printer.PrintHTML(detail.Slug, html)
	}

	handlerOpts := []commands.HandlerOption[RenderPostCommand]{
		commands.WithLogger[RenderPostCommand](baseLogger),
		commands.WithOperation[RenderPostCommand](renderOperation),
		commands.WithMessageFields(func(msg RenderPostCommand) map[string]any {
			fields := map[string]any{"slug": msg.Slug}
			if msg.Options.Sanitize {
				fields["sanitize"] = true
			}
			if msg.Options.SafeMode {
				fields["safe_mode"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RenderPostHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[RenderPostCommand].
func (h *RenderPostHandler) Execute(ctx context.Context, msg RenderPostCommand) error {
	return h.inner.Execute(ctx, msg)
}

func lookup(index Index, slug string) (*interfaces.PostDetail[*markdown.Content], error) {
	detail, ok := index.GetPostBySlug(slug)
	if !ok || detail == nil {
		return nil, commands.WrapNotFoundError(fmt.Errorf("%w: %q", ErrPostNotFound, slug), "post not found")
	}
	return detail, nil
}
