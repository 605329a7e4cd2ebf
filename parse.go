package mdmath

import (
	"sort"
	"strconv"
	"strings"

	"pkt.systems/mdmath/texmath"
)

// ParseOption configures scanning.
type ParseOption func(*parseConfig)

type parseConfig struct {
	frontMatter     bool
	footnoteSection bool
}

func defaultParseConfig() parseConfig {
	return parseConfig{footnoteSection: true}
}

// WithFrontMatter controls whether a leading ---, +++ or ;;; metadata block
// is dropped. It is kept by default, so a leading --- reads as a rule.
func WithFrontMatter(strip bool) ParseOption {
	return func(cfg *parseConfig) {
		cfg.frontMatter = strip
	}
}

// WithFootnoteSection controls whether a finished document ends with one
// footnote block per definition. Enabled by default.
func WithFootnoteSection(enabled bool) ParseOption {
	return func(cfg *parseConfig) {
		cfg.footnoteSection = enabled
	}
}

// Parse scans complete text into a Document.
func Parse(text string, opts ...ParseOption) Document {
	return ParseIncrement(text, true, opts...)
}

// ParseIncrement scans the full text accumulated so far. Every call starts
// from scratch, so the result depends only on text and finished. Open code,
// math and matrix blocks are closed with whatever they hold; when finished
// is true the footnote section is appended.
func ParseIncrement(text string, finished bool, opts ...ParseOption) Document {
	cfg := defaultParseConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	doc := Document{Footnotes: map[string]string{}, Finished: finished}
	text = sanitizeText(text)
	if cfg.frontMatter {
		body, decided := stripFrontMatter(text, finished)
		if !decided {
			return doc
		}
		text = body
	}

	lines := strings.Split(text, "\n")
	complete := strings.HasSuffix(text, "\n") || text == ""
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	s := scanner{footnotes: doc.Footnotes}
	for i, line := range lines {
		s.scanLine(i, line)
	}
	s.cur = len(lines)
	s.close(true)
	openFrom := len(lines)
	if !complete {
		openFrom = len(lines) - 1
	}

	doc.Blocks = s.blocks
	if finished {
		if cfg.footnoteSection {
			doc.Blocks = appendFootnoteSection(doc.Blocks, doc.Footnotes, len(lines))
		}
		doc.Stable = len(doc.Blocks)
		return doc
	}
	for _, end := range s.ends {
		if end >= openFrom {
			break
		}
		doc.Stable++
	}
	return doc
}

type scanState uint8

const (
	stateNormal scanState = iota
	stateCode
	stateMath
	stateMatrix
	stateTable
)

type scanner struct {
	blocks    []Block
	footnotes map[string]string

	// ends holds, per block, the line whose content completed it. A block
	// is stable once that line is complete.
	ends []int
	cur  int

	state     scanState
	start     int
	buf       []string
	fence     string
	language  string
	mathClose string
	matrix    texmath.MatrixKind
	table     Block
	separator bool

	// term is the text of the last paragraph that may head a definition
	// list, found on line termLine.
	term     string
	termLine int
}

func (s *scanner) scanLine(n int, line string) {
	s.cur = n
	switch s.state {
	case stateCode:
		if closesFence(line, s.fence) {
			s.close(false)
			return
		}
		s.buf = append(s.buf, line)
		return
	case stateMath:
		trim := strings.TrimSpace(line)
		if trim == s.mathClose {
			s.close(false)
			return
		}
		if strings.HasSuffix(trim, s.mathClose) {
			s.buf = append(s.buf, strings.TrimSuffix(trim, s.mathClose))
			s.close(false)
			return
		}
		s.buf = append(s.buf, line)
		return
	case stateMatrix:
		before, after, ok := texmath.FindEnd(line, s.matrix)
		if !ok {
			s.buf = append(s.buf, line)
			return
		}
		s.buf = append(s.buf, before)
		s.close(false)
		s.paragraph(n, after)
		return
	case stateTable:
		trim := strings.TrimSpace(line)
		if isTableRow(trim) {
			if !s.separator && len(s.table.Rows) == 0 && isTableSeparator(trim) {
				s.separator = true
				s.table.Aligns = parseAlignments(trim)
				return
			}
			s.table.Rows = append(s.table.Rows, splitTableRow(trim))
			return
		}
		s.close(false)
	}
	s.scanNormal(n, line)
}

func (s *scanner) scanNormal(n int, line string) {
	trim := strings.TrimSpace(line)

	if marker, info := fenceMarker(line); marker != "" {
		s.open(stateCode, n)
		s.fence = marker
		s.language = fenceLanguage(info)
		return
	}
	if closer, ok := mathOpener(trim); ok {
		s.open(stateMath, n)
		s.mathClose = closer
		return
	}
	if body, ok := oneLineMath(trim); ok {
		s.emitMath(n, body, false)
		return
	}
	if kind, before, after, ok := texmath.FindBegin(line); ok {
		s.paragraph(n, before)
		if body, tail, closed := texmath.FindEnd(after, kind); closed {
			s.emitMatrix(n, kind, body, false)
			s.paragraph(n, tail)
			return
		}
		s.open(stateMatrix, n)
		s.matrix = kind
		s.buf = append(s.buf, after)
		return
	}
	if ref, body, ok := parseFootnoteDef(trim); ok {
		s.footnotes[ref] = body
		return
	}
	if isTableRow(trim) {
		headers := splitTableRow(trim)
		if _, err := LayoutTable(headers, nil, nil); err != nil {
			s.paragraph(n, line)
			return
		}
		s.open(stateTable, n)
		s.table = Block{Kind: BlockTable, Headers: headers, Line: n}
		return
	}

	indent, idx := leadingIndentCount(line)
	rest := line[idx:]
	if level, content, ok := parseHeading(rest); ok && indent < 4 {
		s.emit(Block{Kind: BlockHeader, Level: level, Runs: ParseInline(content), Line: n})
		return
	}
	if isThematicBreak(trim) {
		s.emit(Block{Kind: BlockRule, Line: n})
		return
	}
	if checked, content, ok := parseTask(rest); ok {
		s.emit(Block{Kind: BlockTask, Checked: checked, Indent: indent, Runs: ParseInline(strings.TrimSpace(content)), Line: n})
		return
	}
	if ordered, num, content, ok := parseListMarker(rest); ok {
		s.emit(Block{Kind: BlockList, Ordered: ordered, Index: num, Indent: indent, Runs: ParseInline(strings.TrimSpace(content)), Line: n})
		return
	}
	if depth, content, ok := parseQuotePrefix(line); ok {
		s.emit(Block{Kind: BlockQuote, Depth: depth, Runs: ParseInline(strings.TrimSpace(content)), Line: n})
		return
	}
	if def, ok := parseDefinition(trim); ok {
		s.adoptTerm(n)
		s.emit(Block{Kind: BlockDefinition, Runs: ParseInline(def), Line: n})
		return
	}
	if trim == "" {
		s.emit(Block{Kind: BlockBlank, Line: n})
		return
	}
	if term, ok := parseDefinitionTerm(trim); ok {
		s.paragraph(n, line)
		// Only the next line tells whether this is a term.
		s.ends[len(s.ends)-1] = n + 1
		s.term, s.termLine = term, n
		return
	}
	s.paragraph(n, line)
}

// adoptTerm turns the paragraph on the line before n into a definition
// term when it was written as "Term:".
func (s *scanner) adoptTerm(n int) {
	last := len(s.blocks) - 1
	if s.term == "" || s.termLine != n-1 || last < 0 {
		return
	}
	if b := s.blocks[last]; b.Kind != BlockParagraph || b.Line != n-1 {
		return
	}
	s.blocks[last] = Block{Kind: BlockDefTerm, Runs: ParseInline(s.term), Line: n - 1}
	s.term = ""
}

func (s *scanner) open(state scanState, n int) {
	s.state = state
	s.start = n
	s.buf = s.buf[:0]
	s.separator = false
}

// close emits the open block, if any. forced marks code, math and matrix
// blocks that ran into the end of input.
func (s *scanner) close(forced bool) {
	switch s.state {
	case stateCode:
		s.emit(Block{
			Kind:         BlockCode,
			Language:     s.language,
			Text:         strings.Join(s.buf, "\n"),
			Line:         s.start,
			Unterminated: forced,
		})
	case stateMath:
		s.emitMath(s.start, strings.Join(s.buf, "\n"), forced)
	case stateMatrix:
		s.emitMatrix(s.start, s.matrix, strings.Join(s.buf, "\n"), forced)
	case stateTable:
		s.emit(s.table)
		s.table = Block{}
	}
	s.state = stateNormal
	s.buf = s.buf[:0]
}

// emitMath emits a math block, splitting matrix environments inside it into
// their own blocks.
func (s *scanner) emitMath(n int, src string, unterminated bool) {
	rest := src
	split := false
	for {
		kind, before, after, ok := texmath.FindBegin(rest)
		if !ok {
			break
		}
		split = true
		s.mathBlock(n, before, false)
		body, tail, closed := texmath.FindEnd(after, kind)
		if !closed {
			s.emitMatrix(n, kind, after, unterminated)
			return
		}
		s.emitMatrix(n, kind, body, false)
		rest = tail
	}
	if split && strings.TrimSpace(rest) == "" {
		return
	}
	s.mathBlock(n, rest, unterminated)
}

func (s *scanner) mathBlock(n int, src string, unterminated bool) {
	src = strings.TrimSpace(src)
	if src == "" && !unterminated {
		return
	}
	s.emit(Block{Kind: BlockMath, Source: src, Text: texmath.Beautify(src), Line: n, Unterminated: unterminated})
}

func (s *scanner) emitMatrix(n int, kind texmath.MatrixKind, body string, unterminated bool) {
	s.emit(Block{
		Kind:         BlockMatrix,
		Matrix:       kind,
		Source:       body,
		Rows:         texmath.SplitMatrix(body),
		Line:         n,
		Unterminated: unterminated,
	})
}

func (s *scanner) paragraph(n int, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	s.emit(Block{Kind: BlockParagraph, Runs: ParseInline(text), Line: n})
}

func (s *scanner) emit(b Block) {
	s.blocks = append(s.blocks, b)
	s.ends = append(s.ends, s.cur)
}

func mathOpener(trim string) (string, bool) {
	switch trim {
	case `\[`:
		return `\]`, true
	case "$$":
		return "$$", true
	}
	return "", false
}

func oneLineMath(trim string) (string, bool) {
	switch {
	case len(trim) > 4 && strings.HasPrefix(trim, "$$") && strings.HasSuffix(trim, "$$"):
		return trim[2 : len(trim)-2], true
	case len(trim) > 4 && strings.HasPrefix(trim, `\[`) && strings.HasSuffix(trim, `\]`):
		return trim[2 : len(trim)-2], true
	}
	return "", false
}

func appendFootnoteSection(blocks []Block, footnotes map[string]string, line int) []Block {
	if len(footnotes) == 0 {
		return blocks
	}
	refs := make([]string, 0, len(footnotes))
	for ref := range footnotes {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		return footnoteLess(refs[i], refs[j])
	})
	for _, ref := range refs {
		text := footnotes[ref]
		blocks = append(blocks, Block{Kind: BlockFootnoteDef, Ref: ref, Text: text, Runs: ParseInline(text), Line: line})
	}
	return blocks
}

// footnoteLess orders numeric references numerically ahead of named ones.
func footnoteLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}
