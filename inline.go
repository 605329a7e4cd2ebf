package mdmath

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"pkt.systems/mdmath/texmath"
)

const (
	placeholderOpen  = '\uE000'
	placeholderClose = '\uE001'
)

// inlineMatcher claims spans of a line for one run kind. Submatch 1 of re
// is the span replaced by a placeholder; build receives all submatches.
// A wordBounded matcher must not start right after a word character of the
// line, which its leading ^ alone cannot see once the search has moved on.
type inlineMatcher struct {
	name        string
	re          *regexp.Regexp
	build       func(sub []string, claimed []Run) Run
	wordBounded bool
}

var inlineMatchers = []inlineMatcher{
	{
		name: "math",
		re:   regexp.MustCompile(`(\\\((.+?)\\\))`),
		build: func(sub []string, _ []Run) Run {
			return mathRun(sub[2])
		},
	},
	{
		name: "code",
		re:   regexp.MustCompile("(`([^`]+)`)"),
		build: func(sub []string, _ []Run) Run {
			return Run{Kind: RunCode, Text: sub[2], Source: sub[2]}
		},
	},
	{
		name: "dollar-math",
		re:   regexp.MustCompile(`(\$([^$\s](?:[^$]*[^$\s])?)\$)`),
		build: func(sub []string, _ []Run) Run {
			return mathRun(sub[2])
		},
	},
	{
		name: "escape",
		re:   regexp.MustCompile("(\\\\([\\\\`*_{}\\[\\]()#+\\-.!~|<>$=^]))"),
		build: func(sub []string, _ []Run) Run {
			return Run{Kind: RunText, Text: sub[2]}
		},
	},
	{
		name: "footnote",
		re:   regexp.MustCompile(`(\[\^([^\]\s]+)\])`),
		build: func(sub []string, _ []Run) Run {
			return Run{Kind: RunFootnoteRef, Ref: sub[2], Text: "[" + sub[2] + "]"}
		},
	},
	{
		name: "image",
		re:   regexp.MustCompile(`(!\[([^\]]*)\]\(([^)\s]+)\))`),
		build: func(sub []string, claimed []Run) Run {
			return spanRun(RunImage, sub[2], claimed, sub[3])
		},
	},
	{
		name:  "bold-italic",
		re:    regexp.MustCompile(`(\*\*\*(.+?)\*\*\*)`),
		build: styled(RunBoldItalic),
	},
	{
		name:  "bold",
		re:    regexp.MustCompile(`(\*\*(.+?)\*\*)`),
		build: styled(RunBold),
	},
	{
		name:        "bold-underscore",
		re:          regexp.MustCompile(`(?:^|[^\w])(__([^_\s](?:.*?[^_\s])?)__)(?:$|[^\w])`),
		build:       styled(RunBold),
		wordBounded: true,
	},
	{
		name:  "italic",
		re:    regexp.MustCompile(`(\*([^*\s](?:[^*]*[^*\s])?)\*)`),
		build: styled(RunItalic),
	},
	{
		name:        "italic-underscore",
		re:          regexp.MustCompile(`(?:^|[^\w])(_([^_\s](?:[^_]*[^_\s])?)_)(?:$|[^\w])`),
		build:       styled(RunItalic),
		wordBounded: true,
	},
	{
		name:  "strike",
		re:    regexp.MustCompile(`(~~(.+?)~~)`),
		build: styled(RunStrike),
	},
	{
		name:  "highlight",
		re:    regexp.MustCompile(`(==([^=\s](?:[^=]*[^=\s])?)==)`),
		build: styled(RunHighlight),
	},
	{
		name:  "kbd",
		re:    regexp.MustCompile(`(<kbd>(.+?)</kbd>)`),
		build: styled(RunKeyboard),
	},
	{
		name: "link",
		re:   regexp.MustCompile(`(\[([^\]]+)\]\(([^)\s]+)(?:\s+"[^"]*")?\))`),
		build: func(sub []string, claimed []Run) Run {
			return spanRun(RunLink, sub[2], claimed, sub[3])
		},
	},
	{
		name: "ref-link",
		re:   regexp.MustCompile(`(\[([^\]]+)\]\[([^\]\s]+)\])`),
		build: func(sub []string, claimed []Run) Run {
			run := spanRun(RunRefLink, sub[2], claimed, "")
			run.Ref = sub[3]
			return run
		},
	},
	{
		name: "autolink",
		re:   regexp.MustCompile(`(<((?:https?|ftp)://[^>\s]+)>)`),
		build: func(sub []string, _ []Run) Run {
			return Run{Kind: RunLink, Text: sub[2], URL: sub[2]}
		},
	},
}

// InlineMatcherNames returns the inline matchers in priority order. A span
// claimed by an earlier matcher is opaque to every later one.
func InlineMatcherNames() []string {
	names := make([]string, len(inlineMatchers))
	for i, m := range inlineMatchers {
		names[i] = m.name
	}
	return names
}

// ParseInline splits one line of text into styled runs. Unbalanced markers
// stay literal text.
func ParseInline(line string) []Run {
	work := strings.Map(func(r rune) rune {
		if r == placeholderOpen || r == placeholderClose {
			return -1
		}
		return r
	}, line)
	if work == "" {
		return nil
	}
	var claimed []Run
	for _, m := range inlineMatchers {
		work, claimed = m.claim(work, claimed)
	}
	return assembleRuns(work, claimed)
}

func (m inlineMatcher) claim(work string, claimed []Run) (string, []Run) {
	var b strings.Builder
	pos := 0
	for pos <= len(work) {
		loc := m.re.FindStringSubmatchIndex(work[pos:])
		if loc == nil {
			break
		}
		sub := make([]string, len(loc)/2)
		for i := range sub {
			if loc[2*i] >= 0 {
				sub[i] = work[pos+loc[2*i] : pos+loc[2*i+1]]
			}
		}
		start, end := pos+loc[2], pos+loc[3]
		if m.wordBounded && start == pos && pos > 0 && isWordByte(work[pos-1]) {
			b.WriteByte(work[pos])
			pos++
			continue
		}
		run := m.build(sub, claimed)
		b.WriteString(work[pos:start])
		b.WriteString(placeholder(len(claimed)))
		claimed = append(claimed, run)
		pos = end
	}
	if b.Len() == 0 {
		return work, claimed
	}
	b.WriteString(work[pos:])
	return b.String(), claimed
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func placeholder(idx int) string {
	return string(placeholderOpen) + strconv.Itoa(idx) + string(placeholderClose)
}

func styled(kind RunKind) func([]string, []Run) Run {
	return func(sub []string, claimed []Run) Run {
		return spanRun(kind, sub[2], claimed, "")
	}
}

func spanRun(kind RunKind, content string, claimed []Run, url string) Run {
	run := Run{Kind: kind, URL: url}
	if strings.ContainsRune(content, placeholderOpen) {
		run.Children = assembleRuns(content, claimed)
		run.Text = runsText(run.Children)
		return run
	}
	run.Text = html.UnescapeString(content)
	return run
}

func mathRun(src string) Run {
	return Run{Kind: RunMath, Text: texmath.Beautify(src), Source: src}
}

// assembleRuns splits work on placeholders, substituting the claimed run
// for each and wrapping the fragments between them as text.
func assembleRuns(work string, claimed []Run) []Run {
	var runs []Run
	appendText := func(text string) {
		if text == "" {
			return
		}
		text = html.UnescapeString(text)
		if n := len(runs); n > 0 && runs[n-1].Kind == RunText && runs[n-1].Children == nil {
			runs[n-1].Text += text
			return
		}
		runs = append(runs, Run{Kind: RunText, Text: text})
	}
	for work != "" {
		open := strings.IndexRune(work, placeholderOpen)
		if open < 0 {
			appendText(work)
			break
		}
		appendText(work[:open])
		rest := work[open+len(string(placeholderOpen)):]
		end := strings.IndexRune(rest, placeholderClose)
		if end < 0 {
			break
		}
		idx, err := strconv.Atoi(rest[:end])
		if err == nil && idx >= 0 && idx < len(claimed) {
			run := claimed[idx]
			if run.Kind == RunText && run.Children == nil {
				if n := len(runs); n > 0 && runs[n-1].Kind == RunText && runs[n-1].Children == nil {
					runs[n-1].Text += run.Text
				} else {
					runs = append(runs, run)
				}
			} else {
				runs = append(runs, run)
			}
		}
		work = rest[end+len(string(placeholderClose)):]
	}
	return runs
}
