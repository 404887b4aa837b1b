package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/internal/logging/gologger"
	"github.com/goliatone/go-posts/internal/markdown"
	"github.com/goliatone/go-posts/internal/posts"
	"github.com/goliatone/go-posts/internal/runtimeconfig"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// Options captures the CLI overrides applied on top of the config file.
// Empty strings and nil pointers leave the file value untouched.
type Options struct {
	ConfigPath     string
	ContentDir     string
	Pattern        string
	Recursive      *bool
	LogLevel       string
	LogFormat      string
	LoggerProvider interfaces.LoggerProvider
}

// Module bundles the loaded post index with the logging it was built with.
type Module struct {
	Config   runtimeconfig.Config
	Index    *posts.Index[*markdown.Content]
	Provider interfaces.LoggerProvider
	Logger   interfaces.Logger
}

// ResolveConfig loads the config file and applies opts.
func ResolveConfig(opts Options) (runtimeconfig.Config, error) {
	cfg, err := runtimeconfig.Load(opts.ConfigPath)
	if err != nil {
		return cfg, err
	}
	if v := strings.TrimSpace(opts.ContentDir); v != "" {
		cfg.Content.Dir = v
	}
	if v := strings.TrimSpace(opts.Pattern); v != "" {
		cfg.Content.Pattern = v
	}
	if opts.Recursive != nil {
		cfg.Content.Recursive = *opts.Recursive
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(opts.LogFormat); v != "" {
		cfg.Logging.Format = v
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// NewLoggerProvider builds the provider selected by cfg. The "none" provider
// yields nil, which every logging helper treats as a no-op.
func NewLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "none":
		return nil, nil
	case "", "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, fmt.Errorf("initialise logger: %w", err)
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("%w: %q", runtimeconfig.ErrLoggingProviderBad, cfg.Provider)
	}
}

// BuildModule resolves configuration, loads the post collection once and
// builds the index over it.
func BuildModule(ctx context.Context, opts Options) (*Module, error) {
	cfg, err := ResolveConfig(opts)
	if err != nil {
		return nil, err
	}

	provider := opts.LoggerProvider
	if provider == nil {
		provider, err = NewLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
	}

	service, err := markdown.NewService(markdown.Config{
		BasePath:  cfg.Content.Dir,
		Pattern:   cfg.Content.Pattern,
		Recursive: cfg.Content.Recursive,
		Parser:    cfg.Parser,
	}, markdown.WithLogger(logging.MarkdownLogger(provider)))
	if err != nil {
		return nil, fmt.Errorf("open content directory: %w", err)
	}

	collection, err := service.LoadCollection(ctx)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}

	index := posts.NewIndex(collection,
		posts.WithLogger(logging.IndexLogger(provider)),
		posts.WithRoutePrefix(cfg.Posts.RoutePrefix),
		posts.WithDefaultReadTime(cfg.Posts.DefaultReadTime),
		posts.WithDefaultImage(cfg.Posts.DefaultImage),
	)

	return &Module{
		Config:   cfg,
		Index:    index,
		Provider: provider,
		Logger:   logging.ModuleLogger(provider, ""),
	}, nil
}
