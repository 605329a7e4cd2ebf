package mdmath

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	defaultCursor  = "▋"
	headingRuleMax = 50
	ruleWidth      = 60
	footnoteRule   = 50
	minFillWidth   = 8
)

// painter turns blocks into terminal text. In plain mode it uses no styles,
// boxes or wrapping, so the output depends only on the document.
type painter struct {
	styles Styles
	width  int
	cfg    renderConfig
	plain  bool
}

func newPainter(width int, theme Theme, cfg renderConfig) *painter {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &painter{styles: theme.Styles(), width: width, cfg: cfg}
}

func newPlainPainter() *painter {
	return &painter{cfg: renderConfig{cursor: defaultCursor}, plain: true}
}

// document renders every block followed by the cursor when doc is open.
func (p *painter) document(doc Document) string {
	var b strings.Builder
	for i := range doc.Blocks {
		b.WriteString(p.block(doc.Blocks, i))
		b.WriteByte('\n')
	}
	if !doc.Finished && p.cfg.cursor != "" {
		b.WriteString(p.cursor())
		b.WriteByte('\n')
	}
	return b.String()
}

func (p *painter) cursor() string {
	return p.styles.Cursor.Render(p.cfg.cursor)
}

// block renders blocks[i]. The previous block decides whether a footnote
// definition opens the footnote section.
func (p *painter) block(blocks []Block, i int) string {
	b := blocks[i]
	switch b.Kind {
	case BlockHeader:
		return p.heading(b)
	case BlockParagraph:
		return p.fill("", "", p.runs(b.Runs, p.styles.Text))
	case BlockCode:
		return p.code(b)
	case BlockMath:
		return p.math(b)
	case BlockMatrix:
		return p.matrix(b)
	case BlockTable:
		return p.table(b)
	case BlockList:
		marker := "•"
		if b.Ordered {
			marker = strconv.Itoa(b.Index) + "."
		}
		pad := strings.Repeat(" ", b.Indent)
		return p.fill(pad+p.styles.ListMarker.Render(marker)+" ", pad+strings.Repeat(" ", displayWidth(marker)+1), p.runs(b.Runs, p.styles.Text))
	case BlockTask:
		pad := strings.Repeat(" ", b.Indent)
		if b.Checked {
			return p.fill(pad+p.styles.TaskDone.Render("✅")+" ", pad+"   ", p.runs(b.Runs, combineStyles(p.styles.Strike, p.styles.TaskOpen)))
		}
		return p.fill(pad+p.styles.TaskOpen.Render("⬜")+" ", pad+"   ", p.runs(b.Runs, p.styles.Text))
	case BlockQuote:
		bar := p.styles.Quote.Render(strings.Repeat("│ ", b.Depth))
		return p.fill(bar, bar, p.runs(b.Runs, p.styles.Quote))
	case BlockDefTerm:
		return p.fill("", "", p.runs(b.Runs, p.styles.Strong))
	case BlockDefinition:
		return p.fill("    "+p.styles.ThematicBreak.Render("└─")+" ", "       ", p.runs(b.Runs, p.styles.Text))
	case BlockRule:
		n := ruleWidth
		if !p.plain && p.width > 0 && p.width < n {
			n = p.width
		}
		return p.styles.ThematicBreak.Render(strings.Repeat("─", n))
	case BlockFootnoteDef:
		line := p.fill(p.styles.Footnote.Render("["+b.Ref+"]")+" ", strings.Repeat(" ", displayWidth(b.Ref)+3), p.runs(b.Runs, p.styles.Text))
		if i > 0 && blocks[i-1].Kind == BlockFootnoteDef {
			return line
		}
		return p.styles.ThematicBreak.Render(strings.Repeat("─", footnoteRule)) + "\n" +
			p.styles.TableHeader.Render("📝 FOOTNOTES:") + "\n" + line
	}
	return ""
}

func (p *painter) heading(b Block) string {
	st := p.styles.Heading[b.Level-1]
	runs := b.Runs
	if b.Level == 1 {
		runs = upperRuns(runs, cases.Upper(language.Und))
	}
	title := p.runs(runs, st)
	n := displayWidth(runsText(runs))
	if n > headingRuleMax {
		n = headingRuleMax
	}
	switch b.Level {
	case 1:
		return p.fill("", "", title) + "\n" + st.Render(strings.Repeat("═", n))
	case 2:
		return p.fill("", "", title) + "\n" + st.Render(strings.Repeat("─", n))
	case 3:
		return p.fill(st.Render("▸")+" ", "  ", title)
	case 4:
		return p.fill("  "+st.Render("▪")+" ", "    ", title)
	case 5:
		return p.fill("    "+st.Render("▫")+" ", "      ", title)
	default:
		return p.fill("      "+st.Render("◦")+" ", "        ", title)
	}
}

func (p *painter) code(b Block) string {
	title := p.styles.TableHeader.Render("⚡ " + languageTitle(b.Language))
	if p.plain {
		return title + "\n" + indent.String(b.Text, 2)
	}
	body := b.Text
	if p.cfg.highlight != "" {
		body = highlightCode(body, b.Language, p.cfg.highlight)
	} else if p.styles.CodeBlock.Prefix != "" {
		lines := strings.Split(body, "\n")
		for i, line := range lines {
			lines[i] = p.styles.CodeBlock.Render(line)
		}
		body = strings.Join(lines, "\n")
	}
	if inner := p.width - 4; p.width > 0 && inner >= minFillWidth {
		body = wrap.String(body, inner)
	}
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	return title + "\n" + box.Render(body)
}

func (p *painter) math(b Block) string {
	if p.plain {
		return indent.String(b.Text, 2)
	}
	lines := strings.Split(b.Text, "\n")
	for i, line := range lines {
		lines[i] = p.styles.Math.Render(line)
	}
	body := strings.Join(lines, "\n")
	if inner := p.width - 4; p.width > 0 && inner >= minFillWidth {
		body = wordwrap.String(body, inner)
	}
	box := lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(0, 1)
	return box.Render(body)
}

func (p *painter) matrix(b Block) string {
	lines := LayoutMatrix(b.Matrix, b.Rows)
	for i, line := range lines {
		lines[i] = p.styles.Math.Render(line)
	}
	return indent.String(strings.Join(lines, "\n"), 2)
}

func (p *painter) table(b Block) string {
	headers := make([]string, len(b.Headers))
	for i, h := range b.Headers {
		headers[i] = p.runs(ParseInline(h), p.styles.TableHeader)
	}
	rows := make([][]string, len(b.Rows))
	for i, row := range b.Rows {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = p.runs(ParseInline(cell), p.styles.Text)
		}
	}
	grid, err := LayoutTable(headers, rows, b.Aligns)
	if err != nil {
		return p.tableFallback(b)
	}
	var out strings.Builder
	out.WriteString(p.styles.TableHeader.Render("📊 TABLE"))
	out.WriteByte('\n')
	out.WriteString(grid.FormatRow(headers))
	out.WriteByte('\n')
	out.WriteString(p.styles.ThematicBreak.Render(grid.Rule("─")))
	for _, row := range rows {
		out.WriteByte('\n')
		out.WriteString(grid.FormatRow(row))
	}
	return out.String()
}

func (p *painter) tableFallback(b Block) string {
	lines := []string{"| " + strings.Join(b.Headers, " | ") + " |"}
	for _, row := range b.Rows {
		lines = append(lines, "| "+strings.Join(row, " | ")+" |")
	}
	return p.fill("", "", strings.Join(lines, "\n"))
}

// fill wraps text to the painter width. The first line starts with prefix
// and continuation lines with cont.
func (p *painter) fill(prefix, cont, text string) string {
	limit := p.width - displayWidth(prefix)
	if p.plain || p.width <= 0 || limit < minFillWidth {
		return prefix + text
	}
	wrapped := wordwrap.String(text, limit)
	if p.cfg.softWrap {
		wrapped = wrap.String(wrapped, limit)
	}
	lines := strings.Split(wrapped, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = prefix + lines[i]
		} else {
			lines[i] = cont + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

// runs renders inline runs over base. Nested runs combine their style with
// the enclosing one.
func (p *painter) runs(runs []Run, base Style) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(p.run(r, base))
	}
	return b.String()
}

func (p *painter) run(r Run, base Style) string {
	st := combineStyles(base, p.runStyle(r.Kind))
	var text string
	if r.Children != nil {
		text = p.runs(r.Children, st)
	} else {
		text = st.Render(r.Text)
	}
	switch r.Kind {
	case RunCode:
		if !p.plain && p.styles.CodeInline.Prefix != "" {
			return st.Render(" " + r.Text + " ")
		}
	case RunKeyboard:
		if r.Children == nil {
			return st.Render("[" + r.Text + "]")
		}
		return "[" + text + "]"
	case RunLink:
		if p.cfg.osc8 && !p.plain {
			return hyperlink(r.URL, text)
		}
		if r.URL == r.Text {
			return text
		}
		return text + p.styles.LinkURL.Render(" → "+p.shownURL(r.URL))
	case RunRefLink:
		return text + p.styles.LinkURL.Render("["+r.Ref+"]")
	case RunImage:
		label := r.Text
		if label == "" {
			label = "image"
		}
		if p.cfg.osc8 && !p.plain {
			return hyperlink(r.URL, st.Render("🖼 "+label))
		}
		return st.Render("🖼 "+label) + p.styles.LinkURL.Render(" → "+p.shownURL(r.URL))
	}
	return text
}

func (p *painter) runStyle(kind RunKind) Style {
	switch kind {
	case RunBold:
		return p.styles.Strong
	case RunItalic:
		return p.styles.Emphasis
	case RunBoldItalic:
		return p.styles.EmphasisStrong
	case RunCode:
		return p.styles.CodeInline
	case RunStrike:
		return p.styles.Strike
	case RunMath:
		return p.styles.Math
	case RunLink, RunImage, RunRefLink:
		return p.styles.LinkText
	case RunFootnoteRef:
		return p.styles.Footnote
	case RunHighlight:
		return p.styles.Highlight
	case RunKeyboard:
		return p.styles.Keyboard
	}
	return Style{}
}

func upperRuns(runs []Run, caser cases.Caser) []Run {
	out := make([]Run, len(runs))
	for i, r := range runs {
		r.Text = caser.String(r.Text)
		if r.Children != nil {
			r.Children = upperRuns(r.Children, caser)
		}
		out[i] = r
	}
	return out
}

// highlightCode colours code with chroma. Unknown languages and lexer
// failures return the code unchanged.
func highlightCode(code, lang, styleName string) string {
	if lang == "" {
		return code
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Match("file." + lang)
	}
	if lexer == nil {
		return code
	}
	lexer = chroma.Coalesce(lexer)
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var b strings.Builder
	if err := formatters.TTY256.Format(&b, styles.Get(styleName), iterator); err != nil {
		return code
	}
	return strings.TrimRight(b.String(), "\n")
}

var languageTitles = map[string]string{
	"js":         "JAVASCRIPT",
	"javascript": "JAVASCRIPT",
	"jsx":        "REACT JSX",
	"ts":         "TYPESCRIPT",
	"typescript": "TYPESCRIPT",
	"tsx":        "REACT TSX",
	"py":         "PYTHON",
	"python":     "PYTHON",
	"py3":        "PYTHON 3",
	"cpp":        "C++",
	"c++":        "C++",
	"scss":       "SASS",
	"mysql":      "MySQL",
	"postgres":   "PostgreSQL",
	"sh":         "SHELL",
	"yml":        "YAML",
	"conf":       "CONFIG",
	"md":         "MARKDOWN",
	"tex":        "LaTeX",
	"docker":     "DOCKERFILE",
}

// languageTitle returns the display title of a fence language tag.
func languageTitle(lang string) string {
	if lang == "" {
		return "CODE"
	}
	if title, ok := languageTitles[strings.ToLower(lang)]; ok {
		return title
	}
	return strings.ToUpper(lang)
}
