package postscmd

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-command/dispatcher"

	"github.com/goliatone/go-posts/internal/commands"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterPostsCommands.
type HandlerSet struct {
	List   *ListPostsHandler
	Slugs  *ListSlugsHandler
	Show   *ShowPostHandler
	Render *RenderPostHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	listOpts   []commands.HandlerOption[ListPostsCommand]
	slugsOpts  []commands.HandlerOption[ListSlugsCommand]
	showOpts   []commands.HandlerOption[ShowPostCommand]
	renderOpts []commands.HandlerOption[RenderPostCommand]
}

// WithListHandlerOptions forwards options to the ListPostsHandler constructor.
func WithListHandlerOptions(opts ...commands.HandlerOption[ListPostsCommand]) Option {
	return func(cfg *options) { cfg.listOpts = append(cfg.listOpts, opts...) }
}

// WithSlugsHandlerOptions forwards options to the ListSlugsHandler constructor.
func WithSlugsHandlerOptions(opts ...commands.HandlerOption[ListSlugsCommand]) Option {
	return func(cfg *options) { cfg.slugsOpts = append(cfg.slugsOpts, opts...) }
}

// WithShowHandlerOptions forwards options to the ShowPostHandler constructor.
func WithShowHandlerOptions(opts ...commands.HandlerOption[ShowPostCommand]) Option {
	return func(cfg *options) { cfg.showOpts = append(cfg.showOpts, opts...) }
}

// WithRenderHandlerOptions forwards options to the RenderPostHandler constructor.
func WithRenderHandlerOptions(opts ...commands.HandlerOption[RenderPostCommand]) Option {
	return func(cfg *options) { cfg.renderOpts = append(cfg.renderOpts, opts...) }
}

// RegisterPostsCommands builds the post handlers and registers them with reg
// when it is not nil.
func RegisterPostsCommands(reg CommandRegistry, index Index, printer *Printer, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if index == nil {
		return nil, errors.New("posts command registration: index is nil")
	}
	if printer == nil {
		return nil, errors.New("posts command registration: printer is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "posts")
	set := &HandlerSet{
		List:   NewListPostsHandler(index, printer, logger, cfg.listOpts...),
		Slugs:  NewListSlugsHandler(index, printer, logger, cfg.slugsOpts...),
		Show:   NewShowPostHandler(index, printer, logger, cfg.showOpts...),
		Render: NewRenderPostHandler(index, printer, logger, cfg.renderOpts...),
	}

	if reg != nil {
		for _, handler := range []any{set.List, set.Slugs, set.Show, set.Render} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

type subscription interface {
	Unsubscribe()
}

// DispatcherRegistry subscribes handlers to the global go-command dispatcher
// so messages can be sent with dispatcher.Dispatch.
type DispatcherRegistry struct {
	subs []subscription
}

// RegisterCommand implements CommandRegistry.
func (r *DispatcherRegistry) RegisterCommand(handler any) error {
	switch h := handler.(type) {
	case *ListPostsHandler:
		r.subs = append(r.subs, dispatcher.SubscribeCommand(h))
	case *ListSlugsHandler:
		r.subs = append(r.subs, dispatcher.SubscribeCommand(h))
	case *ShowPostHandler:
		r.subs = append(r.subs, dispatcher.SubscribeCommand(h))
	case *RenderPostHandler:
		r.subs = append(r.subs, dispatcher.SubscribeCommand(h))
	default:
		return fmt.Errorf("posts command registration: unsupported handler %T", handler)
	}
	return nil
}

// Close removes every subscription made through the registry.
func (r *DispatcherRegistry) Close() {
	for _, sub := range r.subs {
		sub.Unsubscribe()
	}
	r.subs = nil
}
