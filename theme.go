package mdmath

import (
	"os"
	"sort"
	"strings"

	"pkt.systems/mdmath/internal/palette"
)

const ansiReset = palette.Reset

// Style describes a terminal style as an ANSI prefix sequence.
type Style struct {
	Prefix string
}

// Render wraps text in the style, resetting afterwards. An empty style
// returns text unchanged.
func (s Style) Render(text string) string {
	if s.Prefix == "" || text == "" {
		return text
	}
	return s.Prefix + text + ansiReset
}

// Styles groups the semantic styles used by the renderer.
type Styles struct {
	Text           Style
	Heading        [6]Style
	Emphasis       Style
	Strong         Style
	EmphasisStrong Style
	Strike         Style
	CodeInline     Style
	CodeBlock      Style
	Math           Style
	Quote          Style
	ListMarker     Style
	LinkText       Style
	LinkURL        Style
	ThematicBreak  Style
	Highlight      Style
	Keyboard       Style
	Footnote       Style
	TableHeader    Style
	TaskDone       Style
	TaskOpen       Style
	Cursor         Style
}

// Theme provides named styles for rendering.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

// BoringTheme returns a theme without any styling. Layout glyphs are kept.
func BoringTheme() Theme {
	return theme{name: "boring"}
}

func style(prefixes ...string) Style {
	var b strings.Builder
	for _, p := range prefixes {
		if p != "" {
			b.WriteString(p)
		}
	}
	return Style{Prefix: b.String()}
}

func stylesFromPalette(p palette.Palette) Styles {
	return Styles{
		Text:           style(p.Text),
		Heading:        [6]Style{style(palette.Underline, p.H1), style(p.H2), style(p.H3), style(p.H4), style(p.H5), style(p.H6)},
		Emphasis:       style(palette.Italic, p.Emphasis),
		Strong:         style(palette.Bold, p.Strong),
		EmphasisStrong: style(palette.Bold, palette.Italic, p.EmphasisStrong),
		Strike:         style(palette.Strike, p.Text),
		CodeInline:     style(p.CodeInline),
		CodeBlock:      style(p.CodeBlock),
		Math:           style(p.Math),
		Quote:          style(p.Quote),
		ListMarker:     style(p.ListMarker),
		LinkText:       style(palette.Underline, p.LinkText),
		LinkURL:        style(p.LinkURL),
		ThematicBreak:  style(p.ThematicBreak),
		Highlight:      style(p.Highlight),
		Keyboard:       style(palette.Bold, p.CodeInline),
		Footnote:       style(p.Footnote),
		TableHeader:    style(p.TableHeader),
		TaskDone:       style(p.TaskDone),
		TaskOpen:       style(p.TaskOpen),
		Cursor:         style(p.Cursor),
	}
}

var builtinThemes = map[string]Theme{
	"default":          theme{name: "default", styles: stylesFromPalette(palette.PaletteDefault)},
	"gruvbox":          theme{name: "gruvbox", styles: stylesFromPalette(palette.PaletteGruvbox)},
	"dracula":          theme{name: "dracula", styles: stylesFromPalette(palette.PaletteDracula)},
	"nord":             theme{name: "nord", styles: stylesFromPalette(palette.PaletteNord)},
	"tokyo-night":      theme{name: "tokyo-night", styles: stylesFromPalette(palette.PaletteTokyoNight)},
	"solarized-dark":   theme{name: "solarized-dark", styles: stylesFromPalette(palette.PaletteSolarizedDark)},
	"github-light":     theme{name: "github-light", styles: stylesFromPalette(palette.PaletteGithubLight)},
	"catppuccin-mocha": theme{name: "catppuccin-mocha", styles: stylesFromPalette(palette.PaletteCatppuccinMocha)},
	"boring":           BoringTheme(),
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme, or the boring theme when
// NO_COLOR is set.
func DefaultTheme() Theme {
	if os.Getenv("NO_COLOR") != "" {
		return BoringTheme()
	}
	return builtinThemes["default"]
}

func combineStyles(base Style, extra Style) Style {
	if base.Prefix == "" {
		return extra
	}
	if extra.Prefix == "" {
		return base
	}
	return Style{Prefix: base.Prefix + extra.Prefix}
}
