package posts

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-06-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{" 2024-06-01 ", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"2024/06/01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-06-01T08:30:00Z", time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)},
		{"2024-06-01 08:30:00", time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)},
		{"June 1, 2024", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"Jun 1, 2024", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"1 June 2024", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, ok := ParseDate(tc.in)
		if !ok {
			t.Fatalf("ParseDate(%q) failed", tc.in)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "soon", "2024-13-45", "yesterday"} {
		got, ok := ParseDate(in)
		if ok {
			t.Fatalf("expected %q to be rejected, got %v", in, got)
		}
		if !got.IsZero() {
			t.Fatalf("expected zero time for %q, got %v", in, got)
		}
	}
}

func TestParseDateWithOffset(t *testing.T) {
	a, ok := ParseDate("2024-06-01T10:00:00+02:00")
	if !ok {
		t.Fatal("expected offset date to parse")
	}
	b, _ := ParseDate("2024-06-01T08:00:00Z")
	if !a.Equal(b) {
		t.Fatalf("expected %v to equal %v", a, b)
	}
}
