package jot

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// filterAll runs src through a frontMatterFilter in pieces of size n.
func filterAll(src string, n int) (string, FrontMatter, bool) {
	var f frontMatterFilter
	f.reset()
	var out strings.Builder
	for len(src) > 0 {
		k := min(n, len(src))
		out.Write(f.process([]byte(src[:k])))
		src = src[k:]
	}
	out.Write(f.finish())
	fm, ok := f.frontMatter()
	return out.String(), fm, ok
}

func TestFrontMatterFilterStripsLeadingBlock(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		body string
		want FrontMatter
	}{
		{
			name: "yaml",
			src:  "---\ntitle: Post\ndate: 2026-02-09\n---\n*Hello*\n",
			body: "*Hello*\n",
			want: FrontMatter{Format: "yaml", Raw: []byte("title: Post\ndate: 2026-02-09\n")},
		},
		{
			name: "toml",
			src:  "+++\ntitle = \"Post\"\n+++\nHello",
			body: "Hello",
			want: FrontMatter{Format: "toml", Raw: []byte("title = \"Post\"\n")},
		},
		{
			name: "json",
			src:  ";;;\n{\"title\": \"Post\"}\n;;;\nHello",
			body: "Hello",
			want: FrontMatter{Format: "json", Raw: []byte("{\"title\": \"Post\"}\n")},
		},
		{
			name: "crlf and bom",
			src:  "\xef\xbb\xbf---\r\nk: v\r\n---\r\nHello",
			body: "Hello",
			want: FrontMatter{Format: "yaml", Raw: []byte("k: v\r\n")},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			for _, n := range []int{1, 3, len(tc.src)} {
				body, fm, ok := filterAll(tc.src, n)
				if !ok {
					t.Fatalf("piece %d: front matter not found", n)
				}
				if body != tc.body {
					t.Fatalf("piece %d: body %q, want %q", n, body, tc.body)
				}
				if diff := cmp.Diff(tc.want, fm); diff != "" {
					t.Fatalf("piece %d: front matter mismatch (-want +got):\n%s", n, diff)
				}
			}
		})
	}
}

func TestFrontMatterFilterKeepsNonFrontMatter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
	}{
		{"not at start", "Intro\n+++\ntitle = \"Keep me\"\n+++\nTail\n"},
		{"unclosed", "---\ntitle: Post\n\nHello\n"},
		{"no metadata", "---\n*Keep*\n---\nTail\n"},
		{"plain", "just text"},
		{"delimiter only", "---"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			for _, n := range []int{1, 4, len(tc.src)} {
				body, _, ok := filterAll(tc.src, n)
				if ok {
					t.Fatalf("piece %d: unexpected front matter", n)
				}
				if body != tc.src {
					t.Fatalf("piece %d: body %q, want %q", n, body, tc.src)
				}
			}
		})
	}
}

func TestFrontMatterFilterOnlyStripsFirstBlock(t *testing.T) {
	t.Parallel()
	src := "---\ntitle: Skip\n---\nBody\n---\nkeep: yes\n---\n"
	body, fm, ok := filterAll(src, 5)
	if !ok || string(fm.Raw) != "title: Skip\n" {
		t.Fatalf("unexpected front matter %+v ok=%v", fm, ok)
	}
	if body != "Body\n---\nkeep: yes\n---\n" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestFrontMatterFilterGivesUpAfterProbeLimit(t *testing.T) {
	t.Parallel()
	src := "---\nk: v\n" + strings.Repeat("x: y\n", maxFrontMatterProbeBytes/5+1)
	body, _, ok := filterAll(src, 4096)
	if ok {
		t.Fatalf("expected no front matter past the probe limit")
	}
	if body != src {
		t.Fatalf("expected input to pass through unchanged")
	}
}

func TestFrontMatterDecode(t *testing.T) {
	t.Parallel()
	got, err := FrontMatter{Format: "json", Raw: []byte(`{"title": "Post", "n": 3}`)}.Decode()
	if err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"title": "Post", "n": 3}, got); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
	if _, err := (FrontMatter{Format: "toml", Raw: []byte("a = 1")}).Decode(); !errors.Is(err, ErrUnsupportedFrontMatter) {
		t.Fatalf("expected ErrUnsupportedFrontMatter, got %v", err)
	}
	if _, err := (FrontMatter{Format: "yaml", Raw: []byte("a: [")}).Decode(); err == nil {
		t.Fatalf("expected yaml syntax error")
	}
}
