package mdmath

import "pkt.systems/mdmath/texmath"

// BlockKind identifies the structural role of a Block.
type BlockKind uint8

const (
	BlockBlank BlockKind = iota
	BlockHeader
	BlockParagraph
	BlockCode
	BlockMath
	BlockTable
	BlockMatrix
	BlockList
	BlockTask
	BlockQuote
	BlockRule
	BlockFootnoteDef
	BlockDefTerm
	BlockDefinition
)

var blockKindNames = [...]string{
	BlockBlank:       "blank",
	BlockHeader:      "header",
	BlockParagraph:   "paragraph",
	BlockCode:        "code",
	BlockMath:        "math",
	BlockTable:       "table",
	BlockMatrix:      "matrix",
	BlockList:        "list",
	BlockTask:        "task",
	BlockQuote:       "blockquote",
	BlockRule:        "rule",
	BlockFootnoteDef: "footnote",
	BlockDefTerm:     "definition-term",
	BlockDefinition:  "definition",
}

func (k BlockKind) String() string {
	if int(k) < len(blockKindNames) {
		return blockKindNames[k]
	}
	return "unknown"
}

// Align is the horizontal alignment of a table column.
type Align uint8

const (
	AlignNone Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Block is one structural unit of a Document. Which fields are meaningful
// depends on Kind:
//
//   - BlockHeader: Level (1..6), Runs
//   - BlockParagraph: Runs
//   - BlockCode: Language, Text
//   - BlockMath: Source (raw), Text (beautified)
//   - BlockTable: Headers, Rows, Aligns
//   - BlockMatrix: Matrix, Rows (beautified cells), Source
//   - BlockList: Ordered, Index, Indent, Runs
//   - BlockTask: Checked, Indent, Runs
//   - BlockQuote: Depth, Runs
//   - BlockFootnoteDef: Ref, Text, Runs
//   - BlockDefTerm, BlockDefinition: Runs
//
// Line is the zero-based source line the block starts on. Unterminated is
// set on code, math and matrix blocks closed by the end of input rather
// than by their marker.
type Block struct {
	Kind         BlockKind
	Level        int
	Runs         []Run
	Language     string
	Text         string
	Source       string
	Headers      []string
	Rows         [][]string
	Aligns       []Align
	Matrix       texmath.MatrixKind
	Ordered      bool
	Index        int
	Indent       int
	Checked      bool
	Depth        int
	Ref          string
	Line         int
	Unterminated bool
}

// PlainText returns the concatenated rendered text of the block's runs.
func (b Block) PlainText() string {
	return runsText(b.Runs)
}

// RunKind identifies the style of an inline Run.
type RunKind uint8

const (
	RunText RunKind = iota
	RunBold
	RunItalic
	RunBoldItalic
	RunCode
	RunStrike
	RunMath
	RunLink
	RunFootnoteRef
	RunImage
	RunHighlight
	RunKeyboard
	RunRefLink
)

var runKindNames = [...]string{
	RunText:        "text",
	RunBold:        "bold",
	RunItalic:      "italic",
	RunBoldItalic:  "bold-italic",
	RunCode:        "code",
	RunStrike:      "strike",
	RunMath:        "math",
	RunLink:        "link",
	RunFootnoteRef: "footnote-ref",
	RunImage:       "image",
	RunHighlight:   "highlight",
	RunKeyboard:    "kbd",
	RunRefLink:     "ref-link",
}

func (k RunKind) String() string {
	if int(k) < len(runKindNames) {
		return runKindNames[k]
	}
	return "unknown"
}

// Run is a styled span of inline text.
//
// Text holds the rendered content with all nested markup resolved. Source
// keeps the raw inner markup for code and math. Children is set when the
// span enclosed spans claimed by higher-priority matchers, e.g. the code
// inside **`x`**.
type Run struct {
	Kind     RunKind
	Text     string
	URL      string
	Ref      string
	Source   string
	Children []Run
}

// Document is the structured result of scanning text.
type Document struct {
	Blocks []Block
	// Footnotes maps reference to definition text. The last definition of a
	// reference wins.
	Footnotes map[string]string
	// Finished reports whether the text was complete when scanned.
	Finished bool
	// Stable is the number of leading blocks that appending more text cannot
	// change.
	Stable int
}

// Footnote returns the definition text for ref.
func (d Document) Footnote(ref string) (string, bool) {
	text, ok := d.Footnotes[ref]
	return text, ok
}

func runsText(runs []Run) string {
	switch len(runs) {
	case 0:
		return ""
	case 1:
		return runs[0].Text
	}
	n := 0
	for _, r := range runs {
		n += len(r.Text)
	}
	buf := make([]byte, 0, n)
	for _, r := range runs {
		buf = append(buf, r.Text...)
	}
	return string(buf)
}
