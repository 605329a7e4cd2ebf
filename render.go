package mdmath

import (
	"fmt"
	"io"
)

// RenderRequest configures Render.
type RenderRequest struct {
	Reader       io.Reader
	Writer       io.Writer
	Width        int
	Theme        Theme
	Options      []RenderOption
	ParseOptions []ParseOption
}

// Render reads a complete Markdown document and writes it as ANSI text.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	src, err := io.ReadAll(req.Reader)
	if err != nil {
		return fmt.Errorf("render: read: %w", err)
	}
	if err := ValidateInput(src); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	doc := Parse(string(src), req.ParseOptions...)
	if err := RenderDocument(req.Writer, doc, req.Width, req.Theme, req.Options...); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// RenderDocument writes doc as ANSI text wrapped to width. A width of zero
// disables wrapping. A nil theme selects DefaultTheme.
func RenderDocument(w io.Writer, doc Document, width int, theme Theme, opts ...RenderOption) error {
	if w == nil {
		return fmt.Errorf("writer is nil")
	}
	_, err := io.WriteString(w, FormatANSI(doc, width, theme, opts...))
	return err
}

// FormatANSI returns doc as ANSI text wrapped to width.
func FormatANSI(doc Document, width int, theme Theme, opts ...RenderOption) string {
	return newPainter(width, theme, newRenderConfig(opts)).document(doc)
}

// FormatPlainText returns doc as unstyled text. Layout glyphs such as
// heading rules, list bullets and table rules are kept, and nothing is
// wrapped.
func FormatPlainText(doc Document) string {
	return newPlainPainter().document(doc)
}
