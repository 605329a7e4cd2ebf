package mdmath

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const minURLWidth = 16

func truncateWithEllipsis(text string, limit int) string {
	if displayWidth(text) <= limit {
		return text
	}
	if limit <= 0 {
		return ""
	}
	return runewidth.Truncate(text, limit, "…")
}

// fitURL shortens url to limit columns, dropping the scheme first.
func fitURL(url string, limit int) string {
	if displayWidth(url) <= limit {
		return url
	}
	if idx := strings.Index(url, "://"); idx != -1 {
		trimmed := url[idx+3:]
		if displayWidth(trimmed) <= limit {
			return trimmed
		}
	}
	return truncateWithEllipsis(url, limit)
}

// shownURL is the URL text printed after a link when OSC 8 is off.
func (p *painter) shownURL(url string) string {
	if p.plain || p.width <= 0 {
		return url
	}
	limit := p.width / 2
	if limit < minURLWidth {
		limit = minURLWidth
	}
	return fitURL(url, limit)
}
