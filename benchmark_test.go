package mdmath

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

// benchDocument builds a document mixing every block kind, repeated n times.
func benchDocument(n int) []byte {
	section := strings.Join([]string{
		"## Section",
		"",
		"A paragraph with **bold**, *italic*, `code`, $\\alpha^2 + \\beta_1$ and a [link](https://example.com/path).",
		"",
		"- first item with enough words to wrap at narrow widths",
		"- [x] finished task",
		"> quoted line",
		"",
		"```go",
		"func main() {",
		"\tfmt.Println(\"hello\")",
		"}",
		"```",
		"",
		"| Name | Value |",
		"|:-----|------:|",
		"| pi   | 3.14  |",
		"| e    | 2.71  |",
		"",
		"$$",
		"\\sum_{i=1}^{n} \\frac{1}{i} \\leq \\infty",
		"$$",
		"",
		"\\begin{pmatrix} 1 & 0 \\\\ 0 & 1 \\end{pmatrix}",
		"",
		"See note[^n].",
		"",
	}, "\n")
	var b strings.Builder
	b.WriteString("# Benchmark\n\n")
	for i := 0; i < n; i++ {
		b.WriteString(section)
		b.WriteByte('\n')
	}
	b.WriteString("[^n]: A footnote.\n")
	return []byte(b.String())
}

func BenchmarkParse(b *testing.B) {
	for _, n := range []int{1, 10, 100} {
		data := string(benchDocument(n))
		b.Run("sections"+strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for i := 0; i < b.N; i++ {
				_ = Parse(data)
			}
		})
	}
}

// BenchmarkAccumulator measures the cost of rescanning the whole text on
// every streamed chunk.
func BenchmarkAccumulator(b *testing.B) {
	data := string(benchDocument(10))
	for _, size := range []int{16, 256} {
		b.Run("chunk"+strconv.Itoa(size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				acc := NewAccumulator()
				for off := 0; off < len(data); off += size {
					end := off + size
					if end > len(data) {
						end = len(data)
					}
					_ = acc.Append(data[off:end])
				}
				_ = acc.Finish()
			}
		})
	}
}

func BenchmarkRender(b *testing.B) {
	data := benchDocument(10)
	for _, width := range []int{50, 80} {
		b.Run(intToWidthLabel(width), func(b *testing.B) {
			b.ReportAllocs()
			reader := bytes.NewReader(data)
			for i := 0; i < b.N; i++ {
				reader.Reset(data)
				if err := Render(RenderRequest{
					Reader: reader,
					Writer: io.Discard,
					Width:  width,
					Theme:  DefaultTheme(),
				}); err != nil {
					b.Fatalf("render: %v", err)
				}
			}
		})
	}
}

func BenchmarkStreamSimulateReader(b *testing.B) {
	data := bytes.Repeat([]byte("alpha beta gamma delta epsilon\n"), 200)
	b.ReportAllocs()
	reader := bytes.NewReader(data)
	for i := 0; i < b.N; i++ {
		reader.Reset(data)
		if err := StreamSimulate(context.Background(), StreamSimulateRequest{
			Reader:    reader,
			Writer:    io.Discard,
			Width:     80,
			ChunkSize: 64,
		}); err != nil {
			b.Fatalf("stream simulate: %v", err)
		}
	}
}

func BenchmarkHTTPRender(b *testing.B) {
	data := benchDocument(10)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}))
	defer server.Close()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := HTTPRender(context.Background(), HTTPRenderRequest{
			URL:    server.URL,
			Writer: io.Discard,
			Width:  80,
			Theme:  DefaultTheme(),
		}); err != nil {
			b.Fatalf("stream http: %v", err)
		}
	}
}

func intToWidthLabel(width int) string {
	return "w" + strconv.Itoa(width)
}
