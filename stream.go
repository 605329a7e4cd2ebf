package mdmath

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"
)

// DefaultChunkSize is the read size used by ReadChunks when none is given.
const DefaultChunkSize = 4096

var chunkBufPool = sync.Pool{
	New: func() any {
		buf := make([]byte, DefaultChunkSize+utf8.UTFMax)
		return &buf
	},
}

// Accumulator collects streamed text and rescans it on every append.
type Accumulator struct {
	text strings.Builder
	opts []ParseOption
}

// NewAccumulator returns an empty Accumulator that scans with opts.
func NewAccumulator(opts ...ParseOption) *Accumulator {
	return &Accumulator{opts: opts}
}

// Append adds chunk to the buffered text and returns the open document.
func (a *Accumulator) Append(chunk string) Document {
	a.text.WriteString(chunk)
	return ParseIncrement(a.text.String(), false, a.opts...)
}

// Finish returns the finished document for everything appended so far.
func (a *Accumulator) Finish() Document {
	return ParseIncrement(a.text.String(), true, a.opts...)
}

// Text returns the text appended so far.
func (a *Accumulator) Text() string {
	return a.text.String()
}

// Reset discards the buffered text.
func (a *Accumulator) Reset() {
	a.text.Reset()
}

// Chunk is one piece of streamed text. A chunk with a non-nil Err ends the
// stream.
type Chunk struct {
	Text string
	Err  error
}

// ReadChunks reads r in the background and delivers its text in chunks of
// at most size bytes. Chunks never split a UTF-8 sequence and carry no
// control runes or invalid bytes. Input that looks binary ends the stream
// with ErrBinaryInput. The channel is closed at EOF, after an error chunk,
// or when ctx is done.
func ReadChunks(ctx context.Context, r io.Reader, size int) <-chan Chunk {
	if size <= 0 {
		size = DefaultChunkSize
	}
	out := make(chan Chunk, 1)
	go func() {
		defer close(out)
		send := func(c Chunk) bool {
			select {
			case out <- c:
				return true
			case <-ctx.Done():
				return false
			}
		}
		bufp := chunkBufPool.Get().(*[]byte)
		defer chunkBufPool.Put(bufp)
		if cap(*bufp) < size+utf8.UTFMax {
			*bufp = make([]byte, size+utf8.UTFMax)
		}
		buf := (*bufp)[:size+utf8.UTFMax]
		clean := make([]byte, len(buf))
		var v validator
		tail := 0
		for {
			if ctx.Err() != nil {
				return
			}
			n, err := r.Read(buf[tail : tail+size])
			if n > 0 {
				data := buf[:tail+n]
				if _, verr := v.observe(data); verr != nil {
					send(Chunk{Err: verr})
					return
				}
				text, rest := sanitizeBytes(clean, data)
				if len(text) > 0 && !send(Chunk{Text: string(text)}) {
					return
				}
				tail = copy(buf, rest)
			}
			if err != nil {
				if err != io.EOF {
					send(Chunk{Err: fmt.Errorf("read: %w", err)})
				}
				return
			}
		}
	}()
	return out
}
