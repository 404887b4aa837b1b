package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-posts/cmd/posts/internal/bootstrap"
	postscmd "github.com/goliatone/go-posts/internal/commands/posts"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

type rootFlags struct {
	configPath string
	contentDir string
	pattern    string
	recursive  bool
	logLevel   string
	logFormat  string
	output     string
	noColor    bool
}

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the posts CLI.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:          "posts",
		Short:        "List and inspect the posts of a static blog",
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Path to a YAML config file")
	pf.StringVar(&flags.contentDir, "content-dir", "", "Directory holding the post files (overrides config)")
	pf.StringVar(&flags.pattern, "pattern", "", "Glob pattern used to discover post files (overrides config)")
	pf.BoolVar(&flags.recursive, "recursive", false, "Walk sub-directories of the content directory")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: json, console, pretty")
	pf.StringVarP(&flags.output, "output", "o", "text", "Output format: text or json")
	pf.BoolVar(&flags.noColor, "no-color", false, "Disable styled text output")

	cmd.AddCommand(newListCmd(flags))
	cmd.AddCommand(newSlugsCmd(flags))
	cmd.AddCommand(newShowCmd(flags))
	cmd.AddCommand(newRenderCmd(flags))

	return cmd
}

func newListCmd(flags *rootFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := buildHandlers(cmd, flags)
			if err != nil {
				return err
			}
			return set.List.Execute(cmd.Context(), postscmd.ListPostsCommand{Limit: limit})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of posts to print (0 prints all)")
	return cmd
}

func newSlugsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "slugs",
		Short: "Print the slug of every post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := buildHandlers(cmd, flags)
			if err != nil {
				return err
			}
			return set.Slugs.Execute(cmd.Context(), postscmd.ListSlugsCommand{})
		},
	}
}

func newShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <slug>",
		Short: "Print the metadata and Markdown body of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := buildHandlers(cmd, flags)
			if err != nil {
				return err
			}
			return set.Show.Execute(cmd.Context(), postscmd.ShowPostCommand{Slug: args[0]})
		},
	}
}

func newRenderCmd(flags *rootFlags) *cobra.Command {
	var opts interfaces.ParseOptions
	cmd := &cobra.Command{
		Use:   "render <slug>",
		Short: "Render a post to HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := buildHandlers(cmd, flags)
			if err != nil {
				return err
			}
			return set.Render.Execute(cmd.Context(), postscmd.RenderPostCommand{
				Slug:    args[0],
				Options: opts,
			})
		},
	}
	cmd.Flags().BoolVar(&opts.Sanitize, "sanitize", false, "Sanitize the rendered HTML")
	cmd.Flags().BoolVar(&opts.SafeMode, "safe-mode", false, "Omit raw HTML found in the Markdown source")
	cmd.Flags().BoolVar(&opts.HardWraps, "hard-wraps", false, "Render soft line breaks as <br>")
	cmd.Flags().StringSliceVar(&opts.Extensions, "extensions", nil, "Goldmark extensions to enable (table, strikethrough, footnote, ...)")
	return cmd
}

func buildHandlers(cmd *cobra.Command, flags *rootFlags) (*postscmd.HandlerSet, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	opts := bootstrap.Options{
		ConfigPath: flags.configPath,
		ContentDir: flags.contentDir,
		Pattern:    flags.pattern,
		LogLevel:   flags.logLevel,
		LogFormat:  flags.logFormat,
	}
	if cmd.Flags().Changed("recursive") {
		recursive := flags.recursive
		opts.Recursive = &recursive
	}

	module, err := moduleBuilder(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	printer, err := postscmd.NewPrinter(cmd.OutOrStdout(), flags.output, postscmd.WithNoColor(flags.noColor))
	if err != nil {
		return nil, err
	}

	module.Logger.Debug("posts.cli.ready",
		"documents", module.Index.Len(),
		"content_dir", module.Config.Content.Dir,
	)
	return postscmd.RegisterPostsCommands(nil, module.Index, printer, module.Provider)
}
