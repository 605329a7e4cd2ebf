package mdmath

import (
	"strconv"
	"strings"
)

// markdownEscaper escapes the characters that can open an inline
// construct. Parentheses and ] stay bare so text never forms a \( or \[
// math delimiter.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "{", `\{`, "}", `\}`,
	"[", `\[`, "#", `\#`, "+", `\+`,
	"-", `\-`, ".", `\.`, "!", `\!`, "~", `\~`, "|", `\|`, "<", `\<`,
	">", `\>`, "$", `\$`, "=", `\=`, "^", `\^`, "&", "&amp;",
)

// FormatMarkdown serializes doc as canonical Markdown. Parsing the result
// yields a document with the same structure and text. Footnote definitions
// are written where the footnote section stands.
func FormatMarkdown(doc Document) string {
	var b strings.Builder
	for _, block := range doc.Blocks {
		line, ok := markdownBlock(block)
		if !ok {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func markdownBlock(b Block) (string, bool) {
	switch b.Kind {
	case BlockBlank:
		return "", true
	case BlockHeader:
		return strings.TrimRight(strings.Repeat("#", b.Level)+" "+markdownRuns(b.Runs), " "), true
	case BlockParagraph:
		return markdownRuns(b.Runs), true
	case BlockCode:
		fence := "```"
		for strings.Contains(b.Text, fence) {
			fence += "`"
		}
		if b.Text == "" {
			return fence + b.Language + "\n" + fence, true
		}
		return fence + b.Language + "\n" + b.Text + "\n" + fence, true
	case BlockMath:
		if b.Source == "" {
			return "", false
		}
		return "$$\n" + b.Source + "\n$$", true
	case BlockMatrix:
		name := string(b.Matrix)
		return `\begin{` + name + "}\n" + strings.TrimSpace(b.Source) + "\n" + `\end{` + name + "}", true
	case BlockTable:
		return markdownTable(b), true
	case BlockList:
		marker := "-"
		if b.Ordered {
			marker = strconv.Itoa(b.Index) + "."
		}
		return strings.Repeat(" ", b.Indent) + marker + " " + markdownRuns(b.Runs), true
	case BlockTask:
		box := "[ ]"
		if b.Checked {
			box = "[x]"
		}
		return strings.Repeat(" ", b.Indent) + "- " + box + " " + markdownRuns(b.Runs), true
	case BlockQuote:
		return strings.Repeat("> ", b.Depth) + markdownRuns(b.Runs), true
	case BlockRule:
		return "---", true
	case BlockFootnoteDef:
		return "[^" + b.Ref + "]: " + markdownRuns(b.Runs), true
	case BlockDefTerm:
		return markdownRuns(b.Runs) + ":", true
	case BlockDefinition:
		return ": " + markdownRuns(b.Runs), true
	}
	return "", false
}

func markdownTable(b Block) string {
	var out strings.Builder
	writeRow := func(cells []string) {
		out.WriteByte('|')
		for _, cell := range cells {
			out.WriteByte(' ')
			out.WriteString(strings.ReplaceAll(cell, "|", `\|`))
			out.WriteString(" |")
		}
	}
	writeRow(b.Headers)
	if b.Aligns != nil {
		out.WriteString("\n|")
		for _, a := range b.Aligns {
			switch a {
			case AlignLeft:
				out.WriteString(" :--- |")
			case AlignCenter:
				out.WriteString(" :---: |")
			case AlignRight:
				out.WriteString(" ---: |")
			default:
				out.WriteString(" --- |")
			}
		}
	}
	for _, row := range b.Rows {
		out.WriteByte('\n')
		writeRow(row)
	}
	return out.String()
}

func markdownRuns(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(markdownRun(r))
	}
	return b.String()
}

func markdownRun(r Run) string {
	inner := markdownEscaper.Replace(r.Text)
	if r.Children != nil {
		inner = markdownRuns(r.Children)
	}
	switch r.Kind {
	case RunBold:
		return "**" + inner + "**"
	case RunItalic:
		return "*" + inner + "*"
	case RunBoldItalic:
		return "***" + inner + "***"
	case RunStrike:
		return "~~" + inner + "~~"
	case RunHighlight:
		return "==" + inner + "=="
	case RunKeyboard:
		return "<kbd>" + inner + "</kbd>"
	case RunCode:
		return "`" + r.Source + "`"
	case RunMath:
		return `\(` + r.Source + `\)`
	case RunLink:
		return "[" + inner + "](" + r.URL + ")"
	case RunRefLink:
		return "[" + inner + "][" + r.Ref + "]"
	case RunImage:
		return "![" + inner + "](" + r.URL + ")"
	case RunFootnoteRef:
		return "[^" + r.Ref + "]"
	}
	return inner
}
