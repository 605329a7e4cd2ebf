package mdmath

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

var readerPool = sync.Pool{
	New: func() any {
		return bufio.NewReaderSize(nil, 4096)
	},
}

// StreamSimulateRequest configures StreamSimulate.
type StreamSimulateRequest struct {
	Reader       io.Reader
	Writer       io.Writer
	Width        int
	Theme        Theme
	ChunkSize    int
	Delay        time.Duration
	Options      []RenderOption
	ParseOptions []ParseOption
}

// StreamSimulate replays Reader as if it arrived from a token stream:
// ChunkSize runes at a time, Delay apart, painted live.
func StreamSimulate(ctx context.Context, req StreamSimulateRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("stream simulate: Reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("stream simulate: Writer is nil")
	}
	if req.ChunkSize <= 0 {
		return fmt.Errorf("stream simulate: ChunkSize must be > 0")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	err := RenderLive(ctx, LiveRequest{
		Chunks:       simulateChunks(ctx, req.Reader, req.ChunkSize, req.Delay),
		Writer:       req.Writer,
		Width:        req.Width,
		Theme:        req.Theme,
		Options:      req.Options,
		ParseOptions: req.ParseOptions,
	})
	if err != nil {
		return fmt.Errorf("stream simulate: %w", err)
	}
	return nil
}

// simulateChunks emits size runes per chunk, waiting delay before each
// chunk after the first. Invalid bytes and control runes are dropped.
func simulateChunks(ctx context.Context, r io.Reader, size int, delay time.Duration) <-chan Chunk {
	out := make(chan Chunk)
	go func() {
		defer close(out)
		reader := readerPool.Get().(*bufio.Reader)
		reader.Reset(r)
		defer func() {
			reader.Reset(nil)
			readerPool.Put(reader)
		}()
		var timer *time.Timer
		if delay > 0 {
			timer = time.NewTimer(delay)
			timer.Stop()
			defer timer.Stop()
		}
		first := true
		send := func(c Chunk) bool {
			if timer != nil && !first && c.Err == nil {
				timer.Reset(delay)
				select {
				case <-timer.C:
				case <-ctx.Done():
					return false
				}
			}
			first = false
			select {
			case out <- c:
				return true
			case <-ctx.Done():
				return false
			}
		}
		var buf strings.Builder
		count := 0
		for {
			rn, n, err := reader.ReadRune()
			if err != nil {
				if err != io.EOF {
					send(Chunk{Err: fmt.Errorf("read: %w", err)})
					return
				}
				break
			}
			if (rn == utf8.RuneError && n == 1) || isControlRune(rn) {
				continue
			}
			buf.WriteRune(rn)
			count++
			if count >= size {
				if !send(Chunk{Text: buf.String()}) {
					return
				}
				buf.Reset()
				count = 0
			}
		}
		if buf.Len() > 0 {
			send(Chunk{Text: buf.String()})
		}
	}()
	return out
}
