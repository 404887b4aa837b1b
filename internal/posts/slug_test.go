package posts

import (
	"testing"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

func TestBaseName(t *testing.T) {
	cases := map[string]string{
		"../content/posts/docker-basics.md": "docker-basics",
		"posts/archive.tar.gz":              "archive.tar",
		"notes":                             "notes",
		"dir/sub/":                          "sub",
		`content\posts\windows.md`:          "windows",
		"posts/.md":                         "",
		"":                                  "",
		"   ":                               "",
		"/":                                 "",
		".":                                 "",
	}
	for in, want := range cases {
		if got := BaseName(in); got != want {
			t.Fatalf("BaseName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEffectiveSlug(t *testing.T) {
	if got := EffectiveSlug("posts/file.md", nil); got != "file" {
		t.Fatalf("expected file name slug, got %q", got)
	}
	if got := EffectiveSlug("posts/file.md", &interfaces.PostMetadata{}); got != "file" {
		t.Fatalf("expected empty metadata slug to fall back, got %q", got)
	}
	if got := EffectiveSlug("posts/file.md", &interfaces.PostMetadata{Slug: "custom"}); got != "custom" {
		t.Fatalf("expected metadata slug, got %q", got)
	}
	if got := EffectiveSlug("", nil); got != "" {
		t.Fatalf("expected empty slug, got %q", got)
	}
}
