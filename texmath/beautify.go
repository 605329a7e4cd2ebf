package texmath

import (
	"regexp"
	"strings"

	"github.com/rivo/uniseg"
)

const maxStructurePasses = 10

type rule struct {
	name  string
	apply func(string) string
}

var rules = []rule{
	{name: "sizing", apply: stripSizing},
	{name: "environments", apply: flattenEnvironments},
	{name: "structure", apply: resolveStructure},
	{name: "operators", apply: resolveOperators},
	{name: "symbols", apply: replaceSymbols},
	{name: "accents", apply: applyAccents},
	{name: "structure", apply: resolveStructure},
	{name: "scripts", apply: applyScripts},
	{name: "fallback", apply: wrapUnknown},
}

// Rules returns the names of the substitution passes in the order Beautify
// applies them.
func Rules() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}

// Beautify converts LaTeX-style math to Unicode text. It accepts any input
// and always returns a string; commands it does not know are kept as
// [\command].
func Beautify(latex string) string {
	s := strings.Map(func(r rune) rune {
		if r == openBrace || r == closeBrace {
			return -1
		}
		return r
	}, latex)
	for _, r := range rules {
		s = r.apply(s)
	}
	return s
}

var (
	sizingRe = regexp.MustCompile(`\\(?:left|right|bigl|bigr|Bigl|Bigr|biggl|biggr|Biggl|Biggr|bigg|Bigg|big|Big|limits|nolimits|displaystyle|textstyle)\b\.?`)

	environmentRe = regexp.MustCompile(`(?s)\\begin\{(matrix|pmatrix|bmatrix|Bmatrix|vmatrix|Vmatrix)\}(.*?)\\end\{(?:matrix|pmatrix|bmatrix|Bmatrix|vmatrix|Vmatrix)\}`)

	mathbbRe  = regexp.MustCompile(`\\mathbb\{([A-Za-z])\}`)
	fontRe    = regexp.MustCompile(`\\(?:mathbf|mathit|mathrm|mathsf|mathtt|mathcal|mathfrak|mathbb|mathscr|boldsymbol|operatorname|textbf|textit|textrm|text|mbox)\{([^{}]*)\}`)
	fracRe    = regexp.MustCompile(`\\[dt]?frac\{([^{}]*)\}\{([^{}]*)\}`)
	fracDigit = regexp.MustCompile(`\\[dt]?frac([0-9])([0-9])`)
	rootNRe   = regexp.MustCompile(`\\sqrt\[([^\]]*)\]\{([^{}]*)\}`)
	rootRe    = regexp.MustCompile(`\\sqrt\{([^{}]*)\}`)

	operatorRe = regexp.MustCompile(`\\([A-Za-z]+)((?:[_^](?:\{[^{}]*\}|[A-Za-z0-9]))*)`)
	commandRe  = regexp.MustCompile(`\\([A-Za-z]+)`)
	escapeRe   = regexp.MustCompile(`\\([,;:! {}|%$&#_])`)
	accentRe   = regexp.MustCompile(`\\(overrightarrow|widehat|widetilde|overline|underline|tilde|ddot|dot|hat|bar|vec)(?:\s*\{([^{}\\]*)\}|\s+([^\s\\{}]))`)

	supGroupRe = regexp.MustCompile(`\^\{([^{}]*)\}`)
	supDigitRe = regexp.MustCompile(`\^([0-9]+)`)
	subGroupRe = regexp.MustCompile(`_\{([^{}]*)\}`)
	subDigitRe = regexp.MustCompile(`_([0-9]+)`)
)

func stripSizing(s string) string {
	return sizingRe.ReplaceAllString(s, "")
}

func flattenEnvironments(s string) string {
	return environmentRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := environmentRe.FindStringSubmatch(m)
		kind, _ := ParseMatrixKind(sub[1])
		rows := splitCells(sub[2])
		parts := make([]string, 0, len(rows))
		for _, row := range rows {
			parts = append(parts, strings.Join(row, " "))
		}
		left, right := kind.Delimiters()
		if left == "" {
			left, right = "[", "]"
		}
		return left + strings.Join(parts, "; ") + right
	})
}

func resolveStructure(s string) string {
	for i := 0; i < maxStructurePasses; i++ {
		next := mathbbRe.ReplaceAllStringFunc(s, func(m string) string {
			letter := mathbbRe.FindStringSubmatch(m)[1]
			if glyph, ok := blackboard[letter]; ok {
				return glyph
			}
			return letter
		})
		next = fontRe.ReplaceAllString(next, "$1")
		next = fracRe.ReplaceAllString(next, "($1/$2)")
		next = fracDigit.ReplaceAllString(next, "($1/$2)")
		next = rootNRe.ReplaceAllString(next, "√[$1]($2)")
		next = rootRe.ReplaceAllString(next, "√($1)")
		if next == s {
			break
		}
		s = next
	}
	return s
}

func resolveOperators(s string) string {
	return operatorRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := operatorRe.FindStringSubmatch(m)
		glyph, ok := operatorGlyphs[sub[1]]
		if !ok {
			return m
		}
		var b strings.Builder
		b.WriteString(glyph)
		limits := sub[2]
		for len(limits) > 0 {
			b.WriteByte(limits[0])
			limits = limits[1:]
			if limits[0] == '{' {
				end := strings.IndexByte(limits, '}')
				b.WriteString(limits[1:end])
				limits = limits[end+1:]
				continue
			}
			b.WriteByte(limits[0])
			limits = limits[1:]
		}
		return b.String()
	})
}

func replaceSymbols(s string) string {
	s = escapeRe.ReplaceAllStringFunc(s, func(m string) string {
		return punctuation[m[1]]
	})
	return commandRe.ReplaceAllStringFunc(s, func(m string) string {
		if glyph, ok := symbols[m[1:]]; ok {
			return glyph
		}
		return m
	})
}

func applyAccents(s string) string {
	return accentRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := accentRe.FindStringSubmatch(m)
		arg := sub[2]
		if arg == "" {
			arg = sub[3]
		}
		return combine(arg, accentMarks[sub[1]])
	})
}

// combine appends mark to every grapheme cluster of s except whitespace.
func combine(s, mark string) string {
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		b.WriteString(cluster)
		if strings.TrimSpace(cluster) != "" {
			b.WriteString(mark)
		}
	}
	return b.String()
}

func applyScripts(s string) string {
	s = supGroupRe.ReplaceAllStringFunc(s, func(m string) string {
		return script(m[2:len(m)-1], '^', superscripts)
	})
	s = supDigitRe.ReplaceAllStringFunc(s, func(m string) string {
		return script(m[1:], '^', superscripts)
	})
	s = subGroupRe.ReplaceAllStringFunc(s, func(m string) string {
		return script(m[2:len(m)-1], '_', subscripts)
	})
	return subDigitRe.ReplaceAllStringFunc(s, func(m string) string {
		return script(m[1:], '_', subscripts)
	})
}

// script maps each rune of body through table; runes without an entry pass
// through unchanged. When no rune maps at all, the marker is kept so x^n
// still reads as a power, and a longer body is parenthesised.
func script(body string, marker byte, table map[rune]rune) string {
	var b strings.Builder
	mappedAny := false
	for _, r := range body {
		if m, ok := table[r]; ok {
			b.WriteRune(m)
			mappedAny = true
			continue
		}
		b.WriteRune(r)
	}
	if mappedAny {
		return b.String()
	}
	body = strings.TrimSpace(body)
	switch {
	case body == "":
		return ""
	case len([]rune(body)) == 1:
		return string(marker) + body
	default:
		return string(marker) + "(" + body + ")"
	}
}

func wrapUnknown(s string) string {
	s = commandRe.ReplaceAllString(s, "[$0]")
	return strings.Map(func(r rune) rune {
		switch r {
		case '{', '}':
			return -1
		case openBrace:
			return '{'
		case closeBrace:
			return '}'
		}
		return r
	}, s)
}
