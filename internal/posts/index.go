package posts

import (
	"maps"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

const (
	DefaultReadTime    = "5 min read"
	DefaultImage       = "/assets/images/posts/post1.jpg"
	DefaultRoutePrefix = "/posts"
)

// Document is one loaded Markdown file. Metadata is nil when the file had
// no front matter the loader could decode. Content is handed back verbatim
// by GetPostBySlug.
type Document[C any] struct {
	Metadata *interfaces.PostMetadata
	Content  C
}

// Collection maps path identifiers to loaded documents. A nil entry marks
// a file the loader could not read.
type Collection[C any] map[string]*Document[C]

// Option configures an Index.
type Option func(*options)

type options struct {
	logger      interfaces.Logger
	readTime    string
	image       string
	routePrefix string
}

// WithLogger sets the logger that receives skip diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDefaultReadTime overrides the read time used when front matter has
// none. Blank values keep DefaultReadTime.
func WithDefaultReadTime(value string) Option {
	return func(o *options) {
		if strings.TrimSpace(value) != "" {
			o.readTime = value
		}
	}
}

// WithDefaultImage overrides the image used when front matter has none.
// Blank values keep DefaultImage.
func WithDefaultImage(value string) Option {
	return func(o *options) {
		if strings.TrimSpace(value) != "" {
			o.image = value
		}
	}
}

// WithRoutePrefix sets the path prepended to slugs when building Href.
func WithRoutePrefix(prefix string) Option {
	return func(o *options) {
		o.routePrefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	}
}

// Index answers listing and lookup queries over an immutable Collection.
// It holds no mutable state and is safe for concurrent use.
type Index[C any] struct {
	docs   Collection[C]
	paths  []string
	opts   options
	logger interfaces.Logger
}

var _ interfaces.PostIndex[struct{}] = (*Index[struct{}])(nil)

// NewIndex wraps docs. The collection must not be modified afterwards.
func NewIndex[C any](docs Collection[C], opts ...Option) *Index[C] {
	cfg := options{
		logger:      logging.NoOp(),
		readTime:    DefaultReadTime,
		image:       DefaultImage,
		routePrefix: DefaultRoutePrefix,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	paths := make([]string, 0, len(docs))
	for p := range docs {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	return &Index[C]{
		docs:   docs,
		paths:  paths,
		opts:   cfg,
		logger: cfg.logger,
	}
}

// Len reports how many path entries the collection holds, including
// unloadable ones.
func (i *Index[C]) Len() int {
	return len(i.paths)
}

// ListPosts returns a summary for every document with a resolvable slug,
// newest first. Unparseable dates sort after all parseable ones; ties keep
// path order.
func (i *Index[C]) ListPosts() []interfaces.PostSummary {
	type entry struct {
		summary interfaces.PostSummary
		date    time.Time
		dated   bool
	}

	entries := make([]entry, 0, len(i.paths))
	for _, p := range i.paths {
		doc := i.docs[p]
		if doc == nil {
			logging.WithDocumentContext(i.logger, p, "").Warn("posts.index.document_unavailable")
			continue
		}

		slugValue := EffectiveSlug(p, doc.Metadata)
		if slugValue == "" {
			logging.WithDocumentContext(i.logger, p, "").Warn("posts.index.slug_missing")
			continue
		}
		if !slug.IsValid(slugValue) {
			logging.WithDocumentContext(i.logger, p, slugValue).Debug("posts.index.slug_not_normalized")
		}

		summary := i.summarize(slugValue, doc.Metadata)
		date, ok := ParseDate(summary.Date)
		entries = append(entries, entry{summary: summary, date: date, dated: ok})
	}

	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].dated != entries[b].dated {
			return entries[a].dated
		}
		return entries[a].date.After(entries[b].date)
	})

	out := make([]interfaces.PostSummary, len(entries))
	for idx, e := range entries {
		out[idx] = e.summary
	}
	return out
}

// GetPostBySlug scans the collection in path order and returns the first
// document whose effective slug equals slugValue.
func (i *Index[C]) GetPostBySlug(slugValue string) (*interfaces.PostDetail[C], bool) {
	if slugValue == "" {
		return nil, false
	}
	for _, p := range i.paths {
		doc := i.docs[p]
		if doc == nil {
			logging.WithDocumentContext(i.logger, p, "").Debug("posts.index.document_unavailable")
			continue
		}
		if EffectiveSlug(p, doc.Metadata) != slugValue {
			continue
		}

		detail := &interfaces.PostDetail[C]{
			Content: doc.Content,
			Slug:    slugValue,
		}
		if doc.Metadata != nil {
			detail.Metadata = *doc.Metadata
			detail.Metadata.Raw = maps.Clone(doc.Metadata.Raw)
		}
		return detail, true
	}
	return nil, false
}

// ListPostSlugs returns the Slug of every ListPosts entry in the same order.
func (i *Index[C]) ListPostSlugs() []string {
	summaries := i.ListPosts()
	slugs := make([]string, len(summaries))
	for idx, summary := range summaries {
		slugs[idx] = summary.Slug
	}
	return slugs
}

func (i *Index[C]) summarize(slugValue string, meta *interfaces.PostMetadata) interfaces.PostSummary {
	var m interfaces.PostMetadata
	if meta != nil {
		m = *meta
	}
	return interfaces.PostSummary{
		Title:       m.Title,
		Description: m.Description,
		Date:        m.Date,
		ReadTime:    withDefault(m.ReadTime, i.opts.readTime),
		Image:       withDefault(m.Image, i.opts.image),
		Slug:        slugValue,
		Href:        i.opts.routePrefix + "/" + slugValue,
	}
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
