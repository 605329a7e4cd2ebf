package mdmath

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"pkt.systems/mdmath/internal/palette"
)

const sinkSample = "# Title\n" +
	"\n" +
	"Some *emph* and [site](https://example.com).\n" +
	"\n" +
	"## Sub\n" +
	"### Three\n" +
	"- item\n" +
	"1. one\n" +
	"- [x] done\n" +
	"> quote\n" +
	"---\n" +
	"```go\n" +
	"fmt.Println(1)\n" +
	"```\n" +
	"| A | B |\n" +
	"|---|---|\n" +
	"| 1 | 2 |\n" +
	"\n" +
	"$$\n" +
	"x^2\n" +
	"$$\n" +
	"Note[^1]\n" +
	"\n" +
	"[^1]: Foot\n"

func TestFormatPlainText(t *testing.T) {
	t.Parallel()
	want := strings.Join([]string{
		"TITLE",
		"═════",
		"",
		"Some emph and site → https://example.com.",
		"",
		"Sub",
		"───",
		"▸ Three",
		"• item",
		"1. one",
		"✅ done",
		"│ quote",
		strings.Repeat("─", 60),
		"⚡ GO",
		"  fmt.Println(1)",
		"📊 TABLE",
		"A         B       ",
		"────────  ────────",
		"1         2       ",
		"",
		"  x²",
		"Note[1]",
		"",
		strings.Repeat("─", 50),
		"📝 FOOTNOTES:",
		"[1] Foot",
	}, "\n") + "\n"
	got := plainText(sinkSample)
	if got != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, got)
	}
}

func TestFormatPlainTextHeadings(t *testing.T) {
	t.Parallel()
	src := "# héllo wörld\n#### four\n##### five\n###### six\n# " + strings.Repeat("x", 70) + "\n"
	lines := strings.Split(plainText(src), "\n")
	want := []string{"HÉLLO WÖRLD", "═══════════", "  ▪ four", "    ▫ five", "      ◦ six"}
	for i, w := range want {
		if lines[i] != w {
			t.Fatalf("line %d: unexpected output\nwant: %q\n got: %q", i, w, lines[i])
		}
	}
	if lines[6] != strings.Repeat("═", 50) {
		t.Fatalf("long heading rule should cap at 50, got %d", runewidth.StringWidth(lines[6]))
	}
}

func TestFormatPlainTextLanguageTitles(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"js":   "⚡ JAVASCRIPT",
		"py":   "⚡ PYTHON",
		"rust": "⚡ RUST",
		"":     "⚡ CODE",
	}
	for lang, want := range tests {
		out := plainText("```" + lang + "\nx\n```\n")
		if first := strings.SplitN(out, "\n", 2)[0]; first != want {
			t.Fatalf("lang %q: unexpected output\nwant: %q\n got: %q", lang, want, first)
		}
	}
}

func TestFormatPlainTextDefinitionsAndRefLinks(t *testing.T) {
	t.Parallel()
	got := plainText("Term:\n: definition\nSee [docs][1]\n")
	want := "Term\n    └─ definition\nSee docs[1]\n"
	if got != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, got)
	}
}

func TestRenderDefinitionWrapsUnderMarker(t *testing.T) {
	t.Parallel()
	out := stripANSI(renderStream(t, []byte("Term:\n: alpha beta gamma delta epsilon\n"), 24))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected the definition to wrap, got %q", out)
	}
	if !strings.HasPrefix(lines[1], "    └─ ") {
		t.Fatalf("unexpected output\nwant prefix: %q\n got: %q", "    └─ ", lines[1])
	}
	if !strings.HasPrefix(lines[2], "       ") {
		t.Fatalf("continuation should align under the text, got %q", lines[2])
	}
}

func TestFormatPlainTextMatrix(t *testing.T) {
	t.Parallel()
	got := plainText("\\begin{vmatrix} a & b \\\\ c & d \\end{vmatrix}\n")
	want := "  |a  b|\n  |c  d|\n"
	if got != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, got)
	}
}

func TestFormatPlainTextCursor(t *testing.T) {
	t.Parallel()
	got := FormatPlainText(ParseIncrement("abc", false))
	if got != "abc\n▋\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRenderANSIStyles(t *testing.T) {
	t.Parallel()
	out := renderStream(t, []byte(sinkSample), 0)
	checks := map[string]string{
		"h1":          palette.PaletteDefault.H1,
		"emphasis":    palette.PaletteDefault.Emphasis,
		"list marker": palette.PaletteDefault.ListMarker,
		"quote":       palette.PaletteDefault.Quote,
		"link":        palette.PaletteDefault.LinkText,
		"math":        palette.PaletteDefault.Math,
		"table":       palette.PaletteDefault.TableHeader,
	}
	for name, prefix := range checks {
		if !strings.Contains(out, prefix) {
			t.Fatalf("missing %s ANSI prefix", name)
		}
	}
	plain := stripANSI(out)
	for _, want := range []string{"TITLE", "site → https://example.com", "╭", "╰", "fmt.Println(1)", "╔", "x²", "📝 FOOTNOTES:"} {
		if !strings.Contains(plain, want) {
			t.Fatalf("missing %q in output:\n%s", want, plain)
		}
	}
}

func TestRenderBoringHasNoANSI(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	err := Render(RenderRequest{
		Reader: strings.NewReader(sinkSample),
		Writer: &out,
		Width:  60,
		Theme:  BoringTheme(),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out.String(), "\x1b") {
		t.Fatalf("boring output contains escapes: %q", out.String())
	}
}

func TestRenderWrapsToWidth(t *testing.T) {
	t.Parallel()
	src := "A paragraph with enough words that it has to wrap several times at this width.\n" +
		"- list item with a long line that wraps onto a hanging indent\n" +
		"> quoted text that is also long enough to wrap around\n"
	out := stripANSI(renderStream(t, []byte(src), 24))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > 24 {
			t.Fatalf("line wider than 24 (%d): %q", w, line)
		}
	}
	var sawIndent, sawBar bool
	for i, line := range lines {
		if i > 0 && strings.HasPrefix(lines[i-1], "• ") && strings.HasPrefix(line, "  ") {
			sawIndent = true
		}
		if i > 0 && strings.HasPrefix(lines[i-1], "│ ") && strings.HasPrefix(line, "│ ") {
			sawBar = true
		}
	}
	if !sawIndent {
		t.Fatalf("list continuation missing hanging indent:\n%s", out)
	}
	if !sawBar {
		t.Fatalf("quote continuation missing bar:\n%s", out)
	}
}

func TestRenderOSC8Link(t *testing.T) {
	t.Parallel()
	src := []byte("A paragraph with a link to [site](https://example.com) and more text.")
	out := renderStreamWithOptions(t, src, 30, WithOSC8(true))
	if !strings.Contains(out, "\x1b]8;;https://example.com\x1b\\") {
		t.Fatalf("missing OSC8 link start in output: %q", out)
	}
	if strings.Contains(stripANSI(out), "→") {
		t.Fatalf("URL should be hidden behind OSC8: %q", stripANSI(out))
	}
	if strings.Contains(stripANSI(out), "paragraphwith") {
		t.Fatalf("spaces collapsed in OSC8 wrapped output: %q", out)
	}
}

func TestRenderLongURLIsShortened(t *testing.T) {
	t.Parallel()
	url := "https://example.com/" + strings.Repeat("segment/", 10)
	out := stripANSI(renderStream(t, []byte("[x]("+url+")\n"), 40))
	if strings.Contains(out, url) {
		t.Fatalf("expected shortened URL in %q", out)
	}
	if !strings.Contains(out, "…") {
		t.Fatalf("expected ellipsis in %q", out)
	}
}

func TestRenderHighlight(t *testing.T) {
	t.Parallel()
	src := []byte("```go\npackage main\n```\n")
	out := renderStreamWithOptions(t, src, 0, WithHighlight("monokai"))
	if !strings.Contains(out, "\x1b[38;5;") {
		t.Fatalf("expected 256-colour highlighting in %q", out)
	}
	if !strings.Contains(stripANSI(out), "package main") {
		t.Fatalf("missing code text in %q", stripANSI(out))
	}
}

func TestRenderCursorOptions(t *testing.T) {
	t.Parallel()
	doc := ParseIncrement("abc", false)
	if got := FormatANSI(doc, 0, BoringTheme()); got != "abc\n▋\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if got := FormatANSI(doc, 0, BoringTheme(), WithCursor("_")); got != "abc\n_\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if got := FormatANSI(doc, 0, BoringTheme(), WithCursor("")); got != "abc\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	err := Render(RenderRequest{Reader: bytes.NewReader([]byte{0xff, 0xfe}), Writer: &out})
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
	if err := Render(RenderRequest{Writer: &out}); err == nil {
		t.Fatalf("expected error for nil reader")
	}
	if err := Render(RenderRequest{Reader: strings.NewReader("")}); err == nil {
		t.Fatalf("expected error for nil writer")
	}
}
