package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/internal/posts"
	"github.com/goliatone/go-posts/internal/validation"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

const defaultPattern = "*.md"

// LoaderConfig configures how post files are discovered.
type LoaderConfig struct {
	// Pattern is matched against the file name, or against the path relative
	// to the walked directory when it contains a slash. Defaults to "*.md".
	Pattern string
	// Recursive walks sub-directories when set.
	Recursive bool
	// Parser holds the render defaults attached to every Content handle.
	Parser interfaces.ParseOptions
}

// LoaderOption customises a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger receiving per-document diagnostics.
func WithLogger(logger interfaces.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithParser replaces the goldmark parser used by Content handles.
func WithParser(parser interfaces.MarkdownParser) LoaderOption {
	return func(l *Loader) {
		if parser != nil {
			l.parser = parser
		}
	}
}

// WithValidator replaces the front matter schema validator. Passing nil
// disables schema checks.
func WithValidator(validator *validation.Validator) LoaderOption {
	return func(l *Loader) {
		l.validator = validator
		l.validatorSet = true
	}
}

// Loader reads post files from an fs.FS into a posts.Collection.
type Loader struct {
	fs           fs.FS
	pattern      string
	recursive    bool
	defaults     interfaces.ParseOptions
	parser       interfaces.MarkdownParser
	validator    *validation.Validator
	validatorSet bool
	logger       interfaces.Logger
}

// NewLoader builds a Loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig, opts ...LoaderOption) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = defaultPattern
	}

	l := &Loader{
		fs:        filesystem,
		pattern:   filepath.ToSlash(pattern),
		recursive: cfg.Recursive,
		defaults:  cfg.Parser,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	if l.parser == nil {
		l.parser = NewGoldmarkParser(cfg.Parser)
	}
	if !l.validatorSet {
		if validator, err := validation.DefaultValidator(); err == nil {
			l.validator = validator
		} else {
			l.logger.Warn("markdown.loader.validator_unavailable", "error", err)
		}
	}
	return l
}

// LoadFile reads and decodes a single post file.
func (l *Loader) LoadFile(ctx context.Context, name string) (*posts.Document[*Content], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel := cleanPath(name)
	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("markdown loader %s: %w", rel, err)
	}

	if l.validator != nil {
		if issues := l.validator.Check(meta.Raw); len(issues) > 0 {
			logger := logging.WithDocumentContext(l.logger, rel, meta.Slug)
			for _, issue := range issues {
				logger.Warn("markdown.loader.frontmatter_invalid", "issue", issue.String())
			}
		}
	}

	content := NewContent(rel, body, l.parser, l.defaults)
	sum := sha256.Sum256(data)
	content.Checksum = sum[:]

	return &posts.Document[*Content]{
		Metadata: meta,
		Content:  content,
	}, nil
}

// LoadCollection walks dir and loads every matching file. Files that cannot
// be read or decoded are logged and stored as nil entries so the index can
// report them. Walk failures and context cancellation abort the load.
func (l *Loader) LoadCollection(ctx context.Context, dir string) (posts.Collection[*Content], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := cleanPath(dir)
	collection := posts.Collection[*Content]{}

	walkErr := fs.WalkDir(l.fs, root, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if current != root && !l.recursive {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !l.matches(root, current) {
			return nil
		}

		doc, err := l.LoadFile(ctx, current)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			logging.WithDocumentContext(l.logger, current, "").Warn("markdown.loader.document_failed", "error", err)
			collection[current] = nil
			return nil
		}
		collection[current] = doc
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("markdown loader walk %s: %w", root, walkErr)
	}

	l.logger.Debug("markdown.loader.collection_loaded", "dir", root, "documents", len(collection))
	return collection, nil
}

func (l *Loader) matches(root, current string) bool {
	target := path.Base(current)
	if strings.Contains(l.pattern, "/") {
		target = current
		if root != "." {
			target = strings.TrimPrefix(current, root+"/")
		}
	}
	match, err := path.Match(l.pattern, target)
	if err != nil {
		return false
	}
	return match
}

func cleanPath(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "."
	}
	clean := path.Clean(filepath.ToSlash(name))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" {
		return "."
	}
	return clean
}
