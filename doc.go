// Package mdmath renders Markdown with LaTeX math to terminal text.
//
// The package is one parse core with several sinks. Parse and ParseIncrement
// scan text into a Document of blocks and inline runs; math is rewritten to
// Unicode by the texmath package on the way. FormatANSI, FormatPlainText and
// FormatMarkdown turn a Document into styled terminal text, unstyled text or
// canonical Markdown.
//
// Core properties:
//   - Scanning never fails: unbalanced markup stays literal text
//   - Scanning is pure: the same text always yields the same Document
//   - Streaming rescans the accumulated text and reports how many leading
//     blocks are stable, so a live view only repaints the tail
//   - Theme-driven styling via ANSI prefixes
//
// Example:
//
//	reader := strings.NewReader("# Euler\n\n$$e^{i\\pi} + 1 = 0$$\n")
//	err := mdmath.Render(mdmath.RenderRequest{
//		Reader: reader,
//		Writer: os.Stdout,
//		Width:  80,
//		Theme:  mdmath.DefaultTheme(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// For token streams, feed chunks to RenderLive, or to an Accumulator and a
// LiveRenderer when driving the loop yourself.
package mdmath
