// Package palette holds the ANSI colour palettes behind the built-in themes.
package palette

import (
	"fmt"
	"strconv"
)

// SGR attribute sequences shared by every palette.
const (
	Reset     = "\x1b[0m"
	Bold      = "\x1b[1m"
	Dim       = "\x1b[2m"
	Italic    = "\x1b[3m"
	Underline = "\x1b[4m"
	Strike    = "\x1b[9m"
)

// Palette is a set of ANSI prefix sequences, one per semantic role.
type Palette struct {
	Text           string
	H1             string
	H2             string
	H3             string
	H4             string
	H5             string
	H6             string
	Emphasis       string
	Strong         string
	EmphasisStrong string
	CodeInline     string
	CodeBlock      string
	Math           string
	Quote          string
	ListMarker     string
	LinkText       string
	LinkURL        string
	ThematicBreak  string
	Highlight      string
	Footnote       string
	TableHeader    string
	TaskDone       string
	TaskOpen       string
	Cursor         string
}

// FG returns a 24-bit foreground sequence for a #rrggbb colour.
func FG(hex string) string {
	r, g, b := rgb(hex)
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}

// BG returns a 24-bit background sequence for a #rrggbb colour.
func BG(hex string) string {
	r, g, b := rgb(hex)
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
}

func rgb(hex string) (uint8, uint8, uint8) {
	if len(hex) == 7 && hex[0] == '#' {
		hex = hex[1:]
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		panic(fmt.Sprintf("palette: bad colour %q", hex))
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

type colours struct {
	fg, muted, red, orange, yellow, green, cyan, blue, purple, pink, bgAlt string
}

func build(c colours) Palette {
	return Palette{
		Text:           FG(c.fg),
		H1:             Bold + FG(c.green),
		H2:             Bold + FG(c.cyan),
		H3:             Bold + FG(c.blue),
		H4:             FG(c.blue),
		H5:             FG(c.muted),
		H6:             Dim + FG(c.muted),
		Emphasis:       FG(c.fg),
		Strong:         FG(c.fg),
		EmphasisStrong: FG(c.orange),
		CodeInline:     FG(c.yellow) + BG(c.bgAlt),
		CodeBlock:      FG(c.fg),
		Math:           Italic + FG(c.purple),
		Quote:          Italic + FG(c.muted),
		ListMarker:     FG(c.cyan),
		LinkText:       FG(c.blue),
		LinkURL:        Dim + FG(c.muted),
		ThematicBreak:  FG(c.muted),
		Highlight:      FG(c.bgAlt) + BG(c.yellow),
		Footnote:       Dim + FG(c.blue),
		TableHeader:    Bold + FG(c.cyan),
		TaskDone:       FG(c.green),
		TaskOpen:       FG(c.muted),
		Cursor:         FG(c.pink),
	}
}

var (
	PaletteDefault = build(colours{
		fg: "#d8dee9", muted: "#7f8c98", red: "#e06c75", orange: "#d19a66", yellow: "#e5c07b", green: "#98c379",
		cyan: "#56b6c2", blue: "#61afef", purple: "#c678dd", pink: "#ff79c6", bgAlt: "#2c313a",
	})
	PaletteGruvbox = build(colours{
		fg: "#ebdbb2", muted: "#928374", red: "#fb4934", orange: "#fe8019", yellow: "#fabd2f", green: "#b8bb26",
		cyan: "#8ec07c", blue: "#83a598", purple: "#d3869b", pink: "#d3869b", bgAlt: "#3c3836",
	})
	PaletteDracula = build(colours{
		fg: "#f8f8f2", muted: "#6272a4", red: "#ff5555", orange: "#ffb86c", yellow: "#f1fa8c", green: "#50fa7b",
		cyan: "#8be9fd", blue: "#bd93f9", purple: "#bd93f9", pink: "#ff79c6", bgAlt: "#44475a",
	})
	PaletteNord = build(colours{
		fg: "#eceff4", muted: "#616e88", red: "#bf616a", orange: "#d08770", yellow: "#ebcb8b", green: "#a3be8c",
		cyan: "#88c0d0", blue: "#81a1c1", purple: "#b48ead", pink: "#b48ead", bgAlt: "#3b4252",
	})
	PaletteTokyoNight = build(colours{
		fg: "#c0caf5", muted: "#565f89", red: "#f7768e", orange: "#ff9e64", yellow: "#e0af68", green: "#9ece6a",
		cyan: "#7dcfff", blue: "#7aa2f7", purple: "#bb9af7", pink: "#ff007c", bgAlt: "#292e42",
	})
	PaletteSolarizedDark = build(colours{
		fg: "#93a1a1", muted: "#586e75", red: "#dc322f", orange: "#cb4b16", yellow: "#b58900", green: "#859900",
		cyan: "#2aa198", blue: "#268bd2", purple: "#6c71c4", pink: "#d33682", bgAlt: "#073642",
	})
	PaletteGithubLight = build(colours{
		fg: "#24292f", muted: "#6e7781", red: "#cf222e", orange: "#bc4c00", yellow: "#9a6700", green: "#116329",
		cyan: "#1b7c83", blue: "#0969da", purple: "#8250df", pink: "#bf3989", bgAlt: "#eaeef2",
	})
	PaletteCatppuccinMocha = build(colours{
		fg: "#cdd6f4", muted: "#7f849c", red: "#f38ba8", orange: "#fab387", yellow: "#f9e2af", green: "#a6e3a1",
		cyan: "#94e2d5", blue: "#89b4fa", purple: "#cba6f7", pink: "#f5c2e7", bgAlt: "#313244",
	})
)
