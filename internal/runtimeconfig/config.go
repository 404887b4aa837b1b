package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

var (
	ErrContentDirRequired   = errors.New("posts config: content directory is required")
	ErrContentPatternBad    = errors.New("posts config: content pattern is invalid")
	ErrRoutePrefixInvalid   = errors.New("posts config: route prefix must start with /")
	ErrLoggingProviderBad   = errors.New("posts config: logging provider is invalid")
	ErrLoggingLevelInvalid  = errors.New("posts config: logging level is invalid")
	ErrLoggingFormatInvalid = errors.New("posts config: logging format is invalid")
)

// Config is the runtime configuration of the posts CLI.
type Config struct {
	Content ContentConfig           `yaml:"content"`
	Posts   PostsConfig             `yaml:"posts"`
	Parser  interfaces.ParseOptions `yaml:"parser"`
	Logging LoggingConfig           `yaml:"logging"`
}

// ContentConfig controls post discovery.
type ContentConfig struct {
	Dir       string `yaml:"dir"`
	Pattern   string `yaml:"pattern"`
	Recursive bool   `yaml:"recursive"`
}

// PostsConfig controls summary defaults and link generation.
type PostsConfig struct {
	RoutePrefix     string `yaml:"route_prefix"`
	DefaultReadTime string `yaml:"default_read_time"`
	DefaultImage    string `yaml:"default_image"`
}

// LoggingConfig selects the logging provider and its options.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Dir:     "content/posts",
			Pattern: "*.md",
		},
		Posts: PostsConfig{
			RoutePrefix:     "/posts",
			DefaultReadTime: "5 min read",
			DefaultImage:    "/assets/images/posts/post1.jpg",
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "warn",
			Format:   "console",
		},
	}
}

// Load reads a YAML file and overlays it on DefaultConfig. Keys missing from
// the file keep their default value.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("posts config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("posts config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// Validate performs consistency checks and returns the first sentinel error
// that applies.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if err := validation.Validate(cfg.Content.Pattern, validation.By(validGlob)); err != nil {
		return fmt.Errorf("%w: %v", ErrContentPatternBad, err)
	}
	if err := validation.Validate(cfg.Posts.RoutePrefix, validation.By(validPrefix)); err != nil {
		return fmt.Errorf("%w: %q", ErrRoutePrefixInvalid, cfg.Posts.RoutePrefix)
	}

	provider := normalize(cfg.Logging.Provider)
	if provider == "" {
		provider = "gologger"
	}
	if err := validation.Validate(provider, validation.In("gologger", "none")); err != nil {
		return fmt.Errorf("%w: %q", ErrLoggingProviderBad, cfg.Logging.Provider)
	}
	if provider == "gologger" {
		if err := validation.Validate(normalize(cfg.Logging.Level),
			validation.In("trace", "debug", "info", "warn", "warning", "error", "fatal")); err != nil {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, cfg.Logging.Level)
		}
		if err := validation.Validate(normalize(cfg.Logging.Format),
			validation.In("json", "console", "pretty")); err != nil {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, cfg.Logging.Format)
		}
	}
	return nil
}

func validGlob(value any) error {
	pattern, _ := value.(string)
	if strings.TrimSpace(pattern) == "" {
		return nil
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return validation.NewError("posts.config.pattern_invalid", err.Error())
	}
	return nil
}

func validPrefix(value any) error {
	prefix, _ := value.(string)
	if prefix == "" {
		return nil
	}
	if !strings.HasPrefix(prefix, "/") {
		return validation.NewError("posts.config.route_prefix_invalid", "must start with /")
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
