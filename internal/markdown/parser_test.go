package markdown

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-posts/pkg/interfaces"
	"github.com/goliatone/go-posts/pkg/testsupport"
)

func TestParseFrontMatter(t *testing.T) {
	data := testsupport.LoadFixture(t, "testdata/basic.md")

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if meta.Title != "Docker Basics" {
		t.Fatalf("Title mismatch, got %q", meta.Title)
	}
	if meta.Slug != "docker-basics" {
		t.Fatalf("Slug mismatch, got %q", meta.Slug)
	}
	if meta.Date != "2024-03-10" {
		t.Fatalf("Date mismatch, got %q", meta.Date)
	}
	if meta.ReadTime != "8 min read" || meta.Image != "/assets/images/posts/docker.jpg" {
		t.Fatalf("unexpected readTime/image: %#v", meta)
	}
	if meta.Description != "Containers without the jargon" {
		t.Fatalf("Description mismatch, got %q", meta.Description)
	}
	if _, ok := meta.Raw["tags"]; !ok {
		t.Fatalf("expected raw tags to be kept: %#v", meta.Raw)
	}
	if !strings.Contains(string(body), "# Docker Basics") || strings.Contains(string(body), "readTime") {
		t.Fatalf("body not split from front matter: %q", string(body))
	}
}

func TestParseFrontMatterWithoutBlock(t *testing.T) {
	meta, body, err := ParseFrontMatter([]byte("# Plain\n\nNo metadata here."))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if meta == nil {
		t.Fatal("expected empty metadata, got nil")
	}
	if meta.Title != "" || meta.Slug != "" {
		t.Fatalf("expected empty metadata, got %#v", meta)
	}
	if !strings.Contains(string(body), "# Plain") {
		t.Fatalf("expected full source as body, got %q", string(body))
	}
}

func TestParseFrontMatterRejectsMalformedYAML(t *testing.T) {
	_, _, err := ParseFrontMatter([]byte("---\ntitle: [unclosed\n---\nbody\n"))
	if err == nil {
		t.Fatal("expected malformed front matter to fail")
	}
}

func TestStringFieldFormatsScalars(t *testing.T) {
	raw := map[string]any{
		"date":     time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		"stamp":    time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
		"readTime": 5,
		"flag":     true,
		"list":     []any{"a"},
	}

	cases := map[string]string{
		"date":     "2024-01-02",
		"stamp":    "2024-01-02T15:04:05Z",
		"readTime": "5",
		"flag":     "true",
		"list":     "",
		"missing":  "",
	}
	for key, want := range cases {
		if got := stringField(raw, key); got != want {
			t.Fatalf("stringField(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestGoldmarkParser_Parse(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("# Heading\n\nHello **world**"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "Heading</h1>") {
		t.Fatalf("expected <h1>Heading</h1>, got %q", got)
	}
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Fatalf("expected <strong>, got %q", got)
	}
}

func TestGoldmarkParser_HardWraps(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.ParseWithOptions([]byte("line one\nline two"), interfaces.ParseOptions{
		HardWraps: true,
	})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if !strings.Contains(string(html), "line one<br>") {
		t.Fatalf("expected hard wraps, got %q", string(html))
	}
}

func TestGoldmarkParser_RawHTML(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})
	source := []byte("<div class=\"note\">hi</div>\n\n<script>alert(1)</script>\n")

	unsafe, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(string(unsafe), "<script>") {
		t.Fatalf("expected raw HTML by default, got %q", string(unsafe))
	}

	safe, err := parser.ParseWithOptions(source, interfaces.ParseOptions{SafeMode: true})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if strings.Contains(string(safe), "<script>") {
		t.Fatalf("expected raw HTML omitted in safe mode, got %q", string(safe))
	}
}

func TestGoldmarkParser_Sanitize(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.ParseWithOptions([]byte("[click](javascript:alert(1)) and **bold**"), interfaces.ParseOptions{
		Sanitize: true,
	})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	got := string(html)
	if strings.Contains(got, "javascript:") {
		t.Fatalf("expected javascript URL stripped, got %q", got)
	}
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Fatalf("expected safe markup kept, got %q", got)
	}
}

func TestCollectExtensions(t *testing.T) {
	if got := collectExtensions(nil); len(got) != 3 {
		t.Fatalf("expected 3 default extensions, got %d", len(got))
	}
	got := collectExtensions([]string{"table", " Tables ", "unknown", "footnote", ""})
	if len(got) != 3 {
		t.Fatalf("expected table, tables and footnote, got %d", len(got))
	}
}

func TestParseFrontMatterNormalisesNestedMaps(t *testing.T) {
	meta, _, err := ParseFrontMatter([]byte("---\ntitle: Nested\nseo:\n  keywords: [go, blog]\n  og:\n    type: article\n---\nbody\n"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	seo, ok := meta.Raw["seo"].(map[string]any)
	if !ok {
		t.Fatalf("expected string keyed map, got %T", meta.Raw["seo"])
	}
	if _, ok := seo["og"].(map[string]any); !ok {
		t.Fatalf("expected nested string keyed map, got %T", seo["og"])
	}
}
