package texmath

import "strings"

// MatrixKind names a matrix environment.
type MatrixKind string

const (
	Matrix      MatrixKind = "matrix"
	PMatrix     MatrixKind = "pmatrix"
	BMatrix     MatrixKind = "bmatrix"
	BraceMatrix MatrixKind = "Bmatrix"
	VMatrix     MatrixKind = "vmatrix"
	NormMatrix  MatrixKind = "Vmatrix"
)

var matrixKinds = []MatrixKind{Matrix, PMatrix, BMatrix, BraceMatrix, VMatrix, NormMatrix}

// ParseMatrixKind returns the kind for an environment name. Names are case
// sensitive: bmatrix and Bmatrix differ.
func ParseMatrixKind(name string) (MatrixKind, bool) {
	for _, k := range matrixKinds {
		if string(k) == name {
			return k, true
		}
	}
	return Matrix, false
}

// Delimiters returns the bracket glyphs drawn around the rows of k. A plain
// matrix has none.
func (k MatrixKind) Delimiters() (open, close string) {
	switch k {
	case PMatrix:
		return "(", ")"
	case BMatrix:
		return "[", "]"
	case BraceMatrix:
		return "{", "}"
	case VMatrix:
		return "|", "|"
	case NormMatrix:
		return "‖", "‖"
	default:
		return "", ""
	}
}

// SplitMatrix splits an environment body into rows on \\ and cells on &.
// Every cell is beautified; \hline rules and empty rows are dropped.
func SplitMatrix(body string) [][]string {
	rows := splitCells(body)
	for _, row := range rows {
		for i, cell := range row {
			row[i] = Beautify(cell)
		}
	}
	return rows
}

func splitCells(body string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(body, `\\`) {
		line = strings.TrimSpace(strings.ReplaceAll(line, `\hline`, ""))
		if line == "" {
			continue
		}
		cells := strings.Split(line, "&")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		rows = append(rows, cells)
	}
	return rows
}

// FindBegin locates the first \begin{kind} of a matrix environment in line
// and returns the text around it.
func FindBegin(line string) (kind MatrixKind, before, after string, ok bool) {
	rest := line
	offset := 0
	for {
		i := strings.Index(rest, `\begin{`)
		if i < 0 {
			return Matrix, line, "", false
		}
		tail := rest[i+len(`\begin{`):]
		j := strings.IndexByte(tail, '}')
		if j >= 0 {
			if k, found := ParseMatrixKind(tail[:j]); found {
				start := offset + i
				end := start + len(`\begin{`) + j + 1
				return k, line[:start], line[end:], true
			}
		}
		offset += i + len(`\begin{`)
		rest = line[offset:]
	}
}

// FindEnd locates \end{kind} in line and returns the text around it.
func FindEnd(line string, kind MatrixKind) (before, after string, ok bool) {
	marker := `\end{` + string(kind) + `}`
	i := strings.Index(line, marker)
	if i < 0 {
		return line, "", false
	}
	return line[:i], line[i+len(marker):], true
}
