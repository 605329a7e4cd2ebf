package mdmath

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/ansi"
)

// LiveRenderer paints a growing document to a terminal. Stable blocks are
// written once; the open tail and the cursor are erased and redrawn on
// every update.
type LiveRenderer struct {
	w       io.Writer
	painter *painter
	printed int
	tail    int
	buf     strings.Builder
}

// NewLiveRenderer returns a LiveRenderer writing to w. A nil theme selects
// DefaultTheme.
func NewLiveRenderer(w io.Writer, width int, theme Theme, opts ...RenderOption) *LiveRenderer {
	return &LiveRenderer{w: w, painter: newPainter(width, theme, newRenderConfig(opts))}
}

// Update brings the terminal in line with doc. Documents passed to
// successive calls must come from the same growing text.
func (l *LiveRenderer) Update(doc Document) error {
	l.buf.Reset()
	if l.tail > 0 {
		fmt.Fprintf(&l.buf, "\x1b[%dF\x1b[J", l.tail)
		l.tail = 0
	}
	stable := doc.Stable
	if stable > len(doc.Blocks) {
		stable = len(doc.Blocks)
	}
	for ; l.printed < stable; l.printed++ {
		l.buf.WriteString(l.painter.block(doc.Blocks, l.printed))
		l.buf.WriteByte('\n')
	}
	if l.painter.cfg.repaint && !doc.Finished {
		var tail strings.Builder
		for i := l.printed; i < len(doc.Blocks); i++ {
			tail.WriteString(l.painter.block(doc.Blocks, i))
			tail.WriteByte('\n')
		}
		if l.painter.cfg.cursor != "" {
			tail.WriteString(l.painter.cursor())
			tail.WriteByte('\n')
		}
		l.tail = l.visualLines(tail.String())
		l.buf.WriteString(tail.String())
	}
	if l.buf.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(l.w, l.buf.String())
	return err
}

// visualLines counts the terminal rows text occupies, including rows added
// by the terminal wrapping lines wider than the painter width.
func (l *LiveRenderer) visualLines(text string) int {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return 0
	}
	width := l.painter.width
	n := 0
	for _, line := range strings.Split(text, "\n") {
		w := ansi.PrintableRuneWidth(line)
		if width <= 0 || w <= width {
			n++
			continue
		}
		n += (w + width - 1) / width
	}
	return n
}

// LiveRequest configures RenderLive.
type LiveRequest struct {
	Chunks       <-chan Chunk
	Writer       io.Writer
	Width        int
	Theme        Theme
	Options      []RenderOption
	ParseOptions []ParseOption
}

// RenderLive consumes chunks until the channel closes, repainting the
// document after each one. The finished document is painted last. Cancel
// ctx to stop early; the producer should observe the same context.
func RenderLive(ctx context.Context, req LiveRequest) error {
	if req.Chunks == nil {
		return fmt.Errorf("live: chunks is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("live: writer is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	acc := NewAccumulator(req.ParseOptions...)
	live := NewLiveRenderer(req.Writer, req.Width, req.Theme, req.Options...)
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("live: %w", ctx.Err())
		case chunk, ok := <-req.Chunks:
			if !ok {
				if err := live.Update(acc.Finish()); err != nil {
					return fmt.Errorf("live: write: %w", err)
				}
				return nil
			}
			if chunk.Err != nil {
				return fmt.Errorf("live: %w", chunk.Err)
			}
			if chunk.Text == "" {
				continue
			}
			if err := live.Update(acc.Append(chunk.Text)); err != nil {
				return fmt.Errorf("live: write: %w", err)
			}
		}
	}
}
