// Package posts builds the post listing and slug lookup over a collection of
// loaded Markdown documents. The index never reads files and never inspects
// the content handle it is given; it only normalises front matter into
// summaries and resolves slugs.
package posts
