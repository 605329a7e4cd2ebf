package mdmath

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func strippedText(src string) string {
	return FormatPlainText(Parse(src, WithFrontMatter(true)))
}

func TestParseOmitsFrontMatterAtStart(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		src      string
		contains []string
		omits    []string
	}{
		{
			name:     "yaml",
			src:      "---\ntitle: Post\ndate: 2026-02-09\n---\n\n# Hello\n\nBody.\n",
			contains: []string{"HELLO", "Body."},
			omits:    []string{"title: Post", "date: 2026-02-09"},
		},
		{
			name:     "toml",
			src:      "+++\ntitle = \"Post\"\n+++\n\n# Hello\n",
			contains: []string{"HELLO"},
			omits:    []string{"title = \"Post\""},
		},
		{
			name:     "json",
			src:      ";;;\n{\"title\": \"Post\"}\n;;;\n\n# Hello\n",
			contains: []string{"HELLO"},
			omits:    []string{"\"title\": \"Post\""},
		},
		{
			name:     "bom",
			src:      "\ufeff---\ntitle: Post\n---\nBody\n",
			contains: []string{"Body"},
			omits:    []string{"title: Post"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out := strippedText(tc.src)
			for _, want := range tc.contains {
				if !strings.Contains(out, want) {
					t.Fatalf("missing %q in output: %q", want, out)
				}
			}
			for _, bad := range tc.omits {
				if strings.Contains(out, bad) {
					t.Fatalf("unexpected %q in output: %q", bad, out)
				}
			}
		})
	}
}

func TestParseKeepsFrontMatter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "not at start",
			src:  "# Intro\n\n+++\ntitle = \"Keep me\"\n+++\n\nTail\n",
			want: []string{"INTRO", "title = \"Keep me\"", "Tail"},
		},
		{
			name: "unclosed",
			src:  "---\ntitle: Post\n\n# Hello\n",
			want: []string{"title: Post", "HELLO"},
		},
		{
			name: "no metadata",
			src:  "---\n# Keep\n---\n\nTail\n",
			want: []string{"KEEP", "Tail"},
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out := strippedText(tc.src)
			for _, want := range tc.want {
				if !strings.Contains(out, want) {
					t.Fatalf("missing %q in output: %q", want, out)
				}
			}
		})
	}
}

func TestParseStopsCheckingAfterInitialFrontMatter(t *testing.T) {
	t.Parallel()
	out := strippedText("---\ntitle: Skip\n---\n\nBody\n\n---\nkeep: yes\n---\n")
	if strings.Contains(out, "title: Skip") {
		t.Fatalf("unexpected front-matter content in output: %q", out)
	}
	for _, want := range []string{"Body", "keep: yes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output: %q", want, out)
		}
	}
}

func TestParseKeepsLeadingRuleByDefault(t *testing.T) {
	t.Parallel()
	doc := Parse("---\nNote: answers below are approximate\n---\nBody\n")
	var kinds []BlockKind
	for _, b := range doc.Blocks {
		kinds = append(kinds, b.Kind)
	}
	want := []BlockKind{BlockRule, BlockParagraph, BlockRule, BlockParagraph}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("block kinds (-want +got):\n%s", diff)
	}
	if got := doc.Blocks[1].PlainText(); got != "Note: answers below are approximate" {
		t.Fatalf("unexpected paragraph %q", got)
	}

	partial := ParseIncrement("---\nNote: streamed\n\n# Result\n\nMore text.\n", false)
	if len(partial.Blocks) != 6 || partial.Stable != 6 {
		t.Fatalf("expected 6 stable blocks while streaming, got %d (stable %d)", len(partial.Blocks), partial.Stable)
	}
}

func TestParseFrontMatterDisabled(t *testing.T) {
	t.Parallel()
	out := FormatPlainText(Parse("---\ntitle: Post\n---\nBody\n", WithFrontMatter(false)))
	if !strings.Contains(out, "title: Post") {
		t.Fatalf("front matter dropped with stripping disabled: %q", out)
	}
}

func TestParseIncrementWaitsForFrontMatterDecision(t *testing.T) {
	t.Parallel()
	doc := ParseIncrement("---\ntitle: Post\n", false, WithFrontMatter(true))
	if len(doc.Blocks) != 0 || doc.Stable != 0 {
		t.Fatalf("expected no blocks while front matter is open, got %d (stable %d)", len(doc.Blocks), doc.Stable)
	}
	doc = ParseIncrement("---\ntitle: Post\n---\n# Hi\n", false, WithFrontMatter(true))
	if len(doc.Blocks) != 1 || doc.Blocks[0].Kind != BlockHeader {
		t.Fatalf("expected a single header after front matter, got %+v", doc.Blocks)
	}
}
