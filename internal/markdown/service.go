package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/goliatone/go-posts/internal/posts"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// Config describes where posts live and how they are rendered.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Parser    interfaces.ParseOptions
}

// Service loads the post collection from a directory on disk.
type Service struct {
	cfg    Config
	loader *Loader
}

// NewService opens cfg.BasePath as an os.DirFS. The directory must exist.
func NewService(cfg Config, opts ...LoaderOption) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	return NewServiceFS(filesystem, cfg, opts...), nil
}

// NewServiceFS builds a service over an existing filesystem.
func NewServiceFS(filesystem fs.FS, cfg Config, opts ...LoaderOption) *Service {
	loader := NewLoader(filesystem, LoaderConfig{
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
		Parser:    cfg.Parser,
	}, opts...)
	return &Service{cfg: cfg, loader: loader}
}

// LoadCollection loads every post under the base path.
func (s *Service) LoadCollection(ctx context.Context) (posts.Collection[*Content], error) {
	collection, err := s.loader.LoadCollection(ctx, ".")
	if err != nil {
		return nil, fmt.Errorf("markdown service: load %s: %w", s.basePath(), err)
	}
	return collection, nil
}

// Load reads a single post relative to the base path.
func (s *Service) Load(ctx context.Context, name string) (*posts.Document[*Content], error) {
	doc, err := s.loader.LoadFile(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("markdown service: load %s: %w", path.Join(s.basePath(), name), err)
	}
	return doc, nil
}

func (s *Service) basePath() string {
	if strings.TrimSpace(s.cfg.BasePath) == "" {
		return "."
	}
	return s.cfg.BasePath
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("markdown service: stat base path %s: %w", basePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("markdown service: base path %s is not a directory", basePath)
	}
	return os.DirFS(basePath), nil
}
