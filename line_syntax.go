package mdmath

import (
	"regexp"
	"strings"
)

var (
	taskRe        = regexp.MustCompile(`^[-*+][ \t]+\[([ xX])\][ \t]+(.*)$`)
	footnoteDefRe = regexp.MustCompile(`^\[\^([^\]\s]+)\]:[ \t]*(.*)$`)
	closingHashes = regexp.MustCompile(`[ \t]+#+$`)
	defTermRe     = regexp.MustCompile(`^([^:]+):$`)
	definitionRe  = regexp.MustCompile(`^:[ \t]+(\S.*)$`)
)

func parseQuotePrefix(line string) (int, string, bool) {
	i := 0
	for i < len(line) && isSpace(line[i]) {
		i++
	}
	depth := 0
	for i < len(line) && line[i] == '>' {
		depth++
		i++
		if i < len(line) && isSpace(line[i]) {
			i++
		}
	}
	if depth == 0 {
		return 0, line, false
	}
	return depth, line[i:], true
}

// parseListMarker reports whether text starts with a list marker. It
// returns the ordinal for ordered markers and the text after the marker.
func parseListMarker(text string) (ordered bool, num int, content string, ok bool) {
	if text == "" {
		return false, 0, "", false
	}
	switch text[0] {
	case '-', '+', '*':
		padding, idx := countSpaces(text[1:])
		if padding == 0 {
			return false, 0, "", false
		}
		return false, 0, text[1+idx:], true
	}
	i := 0
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	if i == 0 || i > 9 || i >= len(text) {
		return false, 0, "", false
	}
	if text[i] != '.' && text[i] != ')' {
		return false, 0, "", false
	}
	padding, idx := countSpaces(text[i+1:])
	if padding == 0 {
		return false, 0, "", false
	}
	for j := 0; j < i; j++ {
		num = num*10 + int(text[j]-'0')
	}
	return true, num, text[i+1+idx:], true
}

func parseTask(text string) (checked bool, content string, ok bool) {
	m := taskRe.FindStringSubmatch(text)
	if m == nil {
		return false, "", false
	}
	return m[1] != " ", m[2], true
}

func parseHeading(text string) (int, string, bool) {
	if !strings.HasPrefix(text, "#") {
		return 0, "", false
	}
	level := 0
	for level < len(text) && text[level] == '#' {
		level++
	}
	if level > 6 {
		return 0, "", false
	}
	if level == len(text) {
		return level, "", true
	}
	if !isSpace(text[level]) {
		return 0, "", false
	}
	content := strings.TrimSpace(text[level+1:])
	if strings.Trim(content, "#") == "" {
		return level, "", true
	}
	content = closingHashes.ReplaceAllString(content, "")
	return level, content, true
}

func parseFootnoteDef(text string) (ref, body string, ok bool) {
	m := footnoteDefRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

// parseDefinitionTerm reports whether a trimmed line can introduce a
// definition list, i.e. "Term:" with no other colon.
func parseDefinitionTerm(text string) (string, bool) {
	m := defTermRe.FindStringSubmatch(text)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

func parseDefinition(text string) (string, bool) {
	m := definitionRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// fenceMarker returns the run of backticks or tildes opening a code fence
// and the info string after it.
func fenceMarker(text string) (marker, info string) {
	trim := strings.TrimSpace(text)
	if len(trim) < 3 || (trim[0] != '`' && trim[0] != '~') {
		return "", ""
	}
	ch := trim[0]
	n := 0
	for n < len(trim) && trim[n] == ch {
		n++
	}
	if n < 3 {
		return "", ""
	}
	info = strings.TrimSpace(trim[n:])
	if ch == '`' && strings.ContainsRune(info, '`') {
		return "", ""
	}
	return trim[:n], info
}

func closesFence(text, marker string) bool {
	trim := strings.TrimSpace(text)
	if len(trim) < len(marker) || trim[0] != marker[0] {
		return false
	}
	return strings.Trim(trim, marker[:1]) == ""
}

func fenceLanguage(info string) string {
	if i := strings.IndexAny(info, " \t{"); i >= 0 {
		info = info[:i]
	}
	return info
}

func isThematicBreak(text string) bool {
	trim := strings.TrimSpace(text)
	if len(trim) < 3 {
		return false
	}
	ch := trim[0]
	if ch != '-' && ch != '*' && ch != '_' {
		return false
	}
	for i := 0; i < len(trim); i++ {
		if trim[i] != ch {
			return false
		}
	}
	return true
}

// isTableRow reports whether a trimmed line starts and ends with a pipe.
func isTableRow(trim string) bool {
	return len(trim) >= 2 && trim[0] == '|' && trim[len(trim)-1] == '|'
}

// isTableSeparator reports whether a row is a header separator such as
// |---|:--:|.
func isTableSeparator(trim string) bool {
	if !isTableRow(trim) || !strings.Contains(trim, "-") {
		return false
	}
	for i := 0; i < len(trim); i++ {
		switch trim[i] {
		case '|', '-', ':', ' ', '\t':
		default:
			return false
		}
	}
	return true
}

// splitTableRow splits a pipe-delimited row into trimmed cells. Escaped
// pipes stay inside their cell.
func splitTableRow(trim string) []string {
	trim = strings.TrimPrefix(trim, "|")
	if strings.HasSuffix(trim, "|") && !strings.HasSuffix(trim, `\|`) {
		trim = trim[:len(trim)-1]
	}
	var cells []string
	var cell strings.Builder
	for i := 0; i < len(trim); i++ {
		if trim[i] == '\\' && i+1 < len(trim) && trim[i+1] == '|' {
			cell.WriteByte('|')
			i++
			continue
		}
		if trim[i] == '|' {
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
			continue
		}
		cell.WriteByte(trim[i])
	}
	return append(cells, strings.TrimSpace(cell.String()))
}

func parseAlignments(trim string) []Align {
	cells := splitTableRow(trim)
	aligns := make([]Align, len(cells))
	for i, c := range cells {
		left := strings.HasPrefix(c, ":")
		right := strings.HasSuffix(c, ":")
		switch {
		case left && right:
			aligns[i] = AlignCenter
		case right:
			aligns[i] = AlignRight
		case left:
			aligns[i] = AlignLeft
		}
	}
	return aligns
}

func leadingIndentCount(s string) (int, int) {
	count := 0
	i := 0
	for i < len(s) {
		if s[i] == ' ' {
			count++
			i++
			continue
		}
		if s[i] == '\t' {
			count += 4
			i++
			continue
		}
		break
	}
	return count, i
}

func countSpaces(s string) (int, int) {
	count := 0
	i := 0
	for i < len(s) && isSpace(s[i]) {
		count++
		i++
	}
	return count, i
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}
