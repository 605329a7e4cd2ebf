package mdmath

import "strings"

const maxFrontMatterScanBytes = 64 * 1024

// stripFrontMatter drops a metadata block delimited by ---, +++ or ;;; at the
// very start of text. While the opening lines are still incomplete and eof is
// false, decided is false and body is empty.
func stripFrontMatter(text string, eof bool) (body string, decided bool) {
	body, decided = decideFrontMatter(text, eof)
	if !decided && len(text) > maxFrontMatterScanBytes {
		return text, true
	}
	return body, decided
}

func decideFrontMatter(text string, eof bool) (string, bool) {
	openLine, openNext, ok := nextLine(text, 0, eof)
	if !ok {
		return "", false
	}
	delim, isFrontMatter := parseOpeningFrontMatterDelimiter(openLine)
	if !isFrontMatter {
		return text, true
	}
	secondLine, secondNext, ok := nextLine(text, openNext, eof)
	if !ok {
		return "", false
	}
	if !frontMatterMetadataLikely(secondLine) {
		return text, true
	}
	closeNext, found := findClosingFrontMatterDelimiter(text, secondNext, delim, eof)
	if !found {
		if eof {
			return text, true
		}
		return "", false
	}
	return text[closeNext:], true
}

func nextLine(src string, start int, eof bool) (string, int, bool) {
	if start > len(src) {
		return "", 0, false
	}
	if start == len(src) {
		if eof {
			return "", start, true
		}
		return "", 0, false
	}
	i := strings.IndexByte(src[start:], '\n')
	if i < 0 {
		if !eof {
			return "", 0, false
		}
		return strings.TrimSuffix(src[start:], "\r"), len(src), true
	}
	lineEnd := start + i
	return strings.TrimSuffix(src[start:lineEnd], "\r"), lineEnd + 1, true
}

func parseOpeningFrontMatterDelimiter(line string) (string, bool) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(line, "\ufeff"))
	switch trimmed {
	case "---", "+++", ";;;":
		return trimmed, true
	default:
		return "", false
	}
}

func frontMatterMetadataLikely(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return true
	}
	return strings.ContainsAny(trimmed, ":=")
}

func findClosingFrontMatterDelimiter(src string, start int, delim string, eof bool) (int, bool) {
	for idx := start; idx <= len(src); {
		line, next, ok := nextLine(src, idx, eof)
		if !ok {
			return 0, false
		}
		if strings.TrimSpace(line) == delim {
			return next, true
		}
		if next == idx {
			return 0, false
		}
		idx = next
	}
	return 0, false
}
