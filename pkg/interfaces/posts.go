package interfaces

// PostSummary is the normalised listing entry for a single post. All fields
// are filled: absent metadata is replaced by defaults and Href is derived
// from Slug.
type PostSummary struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	ReadTime    string `json:"readTime"`
	Image       string `json:"image"`
	Slug        string `json:"slug"`
	Href        string `json:"href"`
}

// PostDetail pairs the raw metadata of a post with its content handle. C is
// opaque to the index and passed through untouched.
type PostDetail[C any] struct {
	Metadata PostMetadata `json:"metadata"`
	Content  C            `json:"-"`
	Slug     string       `json:"slug"`
}

// PostIndex exposes the read-only views over a loaded post collection.
type PostIndex[C any] interface {
	// ListPosts returns every post with a resolvable slug, newest first.
	ListPosts() []PostSummary
	// GetPostBySlug returns the first post whose effective slug matches.
	// The boolean is false when no post matches.
	GetPostBySlug(slug string) (*PostDetail[C], bool)
	// ListPostSlugs returns the slugs of ListPosts in the same order.
	ListPostSlugs() []string
}
