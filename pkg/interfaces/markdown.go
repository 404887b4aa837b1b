package interfaces

// MarkdownParser converts raw Markdown bytes into HTML.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser defaults.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown rendering. Field names stay readable so
// they can be bound from configuration files and CLI flags.
type ParseOptions struct {
	Extensions []string `yaml:"extensions" json:"extensions,omitempty"`
	Sanitize   bool     `yaml:"sanitize" json:"sanitize,omitempty"`
	HardWraps  bool     `yaml:"hard_wraps" json:"hard_wraps,omitempty"`
	SafeMode   bool     `yaml:"safe_mode" json:"safe_mode,omitempty"`
}

// PostMetadata is the front matter block of a post. Every known field is
// optional; an empty string means the key was absent. Raw keeps every
// decoded key, including ones this package does not model.
type PostMetadata struct {
	Title       string         `yaml:"title" json:"title,omitempty"`
	Description string         `yaml:"description" json:"description,omitempty"`
	Date        string         `yaml:"date" json:"date,omitempty"`
	ReadTime    string         `yaml:"readTime" json:"readTime,omitempty"`
	Image       string         `yaml:"image" json:"image,omitempty"`
	Slug        string         `yaml:"slug" json:"slug,omitempty"`
	Raw         map[string]any `yaml:"-" json:"raw,omitempty"`
}
