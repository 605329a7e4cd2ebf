package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/mdmath"
	"pkt.systems/version"
)

const (
	defaultThemeName = "default"
	defaultWidth     = 80
	defaultChunkSize = 3
	defaultDelay     = 20 * time.Millisecond
)

func init() {
	version.SetDefaultModule("pkt.systems/mdmath")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		simulate     bool
		simChunkSize int
		simDelay     time.Duration
		themeName    string
		widthFlag    int
		osc8Flag     string
		liveFlag     string
		listThemes   bool
		outPath      string
		boring       bool
		plain        bool
		markdown     bool
		highlight    string
		softWrap     bool
		stripFront   bool
		verbose      bool
		showVersion  bool
	)

	flags := pflag.NewFlagSet("mdmath", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVar(&simulate, "simulate", false, "Stream simulator (use default delay and chunk size)")
	flags.IntVar(&simChunkSize, "simulate-chunk", defaultChunkSize, "Runes per simulated stream chunk")
	flags.DurationVar(&simDelay, "simulate-delay", defaultDelay, "Delay per simulated stream chunk")
	flags.StringVarP(&themeName, "theme", "t", defaultThemeName, "Theme name")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.StringVarP(&osc8Flag, "osc8", "8", "auto", "OSC8 hyperlinks: auto|on|off")
	flags.StringVar(&liveFlag, "live", "auto", "Repaint while input streams in: auto|on|off")
	flags.BoolVar(&listThemes, "list-themes", false, "List available themes")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVarP(&boring, "boring", "b", false, "Generate non-ANSI output")
	flags.BoolVar(&plain, "plain", false, "Write unstyled plain text")
	flags.BoolVar(&markdown, "markdown", false, "Write canonical Markdown")
	flags.StringVar(&highlight, "highlight", "", "Chroma style for code blocks, e.g. monokai (empty disables)")
	flags.BoolVar(&softWrap, "soft-wrap", false, "Break words longer than the width")
	flags.BoolVar(&stripFront, "strip-front-matter", false, "Drop a leading ---, +++ or ;;; metadata block")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")
	flags.BoolVar(&showVersion, "version", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: mdmath [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nIf no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(argv); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}

	if showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}
	if listThemes {
		printThemes(stdout)
		return 0
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if plain && markdown {
		fmt.Fprintln(stderr, "--plain and --markdown are mutually exclusive")
		return 2
	}

	args := flags.Args()
	reader, closer, err := openInputs(args, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "open input: %v\n", err)
		return 1
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	writer, closeOut, err := resolveOutput(outPath, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "open output: %v\n", err)
		return 1
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	var parseOpts []mdmath.ParseOption
	if stripFront {
		parseOpts = append(parseOpts, mdmath.WithFrontMatter(true))
	}

	if plain || markdown {
		format := "plain"
		if markdown {
			format = "markdown"
		}
		logger.Debug("formatting document", "format", format, "inputs", len(args))
		if err := writeFormatted(reader, writer, markdown, parseOpts); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", format, err)
			return 1
		}
		return 0
	}

	theme, ok := mdmath.ThemeByName(themeName)
	if !ok {
		fmt.Fprintf(stderr, "unknown theme %q\n\n", themeName)
		printThemes(stderr)
		return 2
	}
	if boring {
		theme = mdmath.BoringTheme()
	}

	width := resolveWidth(widthFlag)
	osc8, err := resolveOSC8(osc8Flag)
	if err != nil {
		fmt.Fprintf(stderr, "invalid --osc8 %q: %v\n", osc8Flag, err)
		return 2
	}
	live, err := resolveLive(liveFlag, writer)
	if err != nil {
		fmt.Fprintf(stderr, "invalid --live %q: %v\n", liveFlag, err)
		return 2
	}
	opts := []mdmath.RenderOption{
		mdmath.WithOSC8(osc8),
		mdmath.WithSoftWrap(softWrap),
		mdmath.WithHighlight(highlight),
		mdmath.WithRepaint(live),
	}
	logger.Debug("rendering", "theme", theme.Name(), "width", width, "osc8", osc8, "live", live, "simulate", simulate)

	switch {
	case simulate:
		err = mdmath.StreamSimulate(ctx, mdmath.StreamSimulateRequest{
			Reader:       reader,
			Writer:       writer,
			Width:        width,
			Theme:        theme,
			ChunkSize:    simChunkSize,
			Delay:        simDelay,
			Options:      opts,
			ParseOptions: parseOpts,
		})
	case live:
		liveCtx, cancel := context.WithCancel(ctx)
		err = mdmath.RenderLive(liveCtx, mdmath.LiveRequest{
			Chunks:       mdmath.ReadChunks(liveCtx, reader, mdmath.DefaultChunkSize),
			Writer:       writer,
			Width:        width,
			Theme:        theme,
			Options:      opts,
			ParseOptions: parseOpts,
		})
		cancel()
	default:
		err = mdmath.Render(mdmath.RenderRequest{
			Reader:       reader,
			Writer:       writer,
			Width:        width,
			Theme:        theme,
			Options:      opts,
			ParseOptions: parseOpts,
		})
	}
	if err != nil {
		fmt.Fprintf(stderr, "render: %v\n", err)
		return 1
	}
	logger.Debug("done")
	return 0
}

func writeFormatted(r io.Reader, w io.Writer, markdown bool, opts []mdmath.ParseOption) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	if err := mdmath.ValidateInput(src); err != nil {
		return err
	}
	doc := mdmath.Parse(string(src), opts...)
	out := mdmath.FormatPlainText(doc)
	if markdown {
		out = mdmath.FormatMarkdown(doc)
	}
	_, err = io.WriteString(w, out)
	return err
}

func printThemes(w io.Writer) {
	names := mdmath.AvailableThemes()
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func resolveOSC8(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return mdmath.DetectOSC8Support(), nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|on|off")
	}
}

// resolveLive decides whether to repaint the open tail. Auto repaints only
// when w is a terminal.
func resolveLive(mode string, w io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return isTerminal(w), nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|on|off")
	}
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

func openInputs(args []string, stdin io.Reader) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	m := &multiInputReader{sources: sources}
	return m, m, nil
}

func makeInputSource(raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	f, err := os.Open(normalizePath(path))
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
