package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenInputFileAndURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.md")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	reader, closer, err := openInputs([]string{path}, nil)
	if err != nil {
		t.Fatalf("openInputs file: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ := io.ReadAll(reader)
	if string(buf) != "hello" {
		t.Fatalf("unexpected file content: %q", string(buf))
	}

	fileURL := "file://" + path
	reader, closer, err = openInputs([]string{fileURL}, nil)
	if err != nil {
		t.Fatalf("openInputs file URL: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ = io.ReadAll(reader)
	if string(buf) != "hello" {
		t.Fatalf("unexpected file URL content: %q", string(buf))
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("stream"))
	}))
	defer srv.Close()
	reader, closer, err = openInputs([]string{srv.URL}, nil)
	if err != nil {
		t.Fatalf("openInputs http: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ = io.ReadAll(reader)
	if string(buf) != "stream" {
		t.Fatalf("unexpected http content: %q", string(buf))
	}
}

func TestOpenInputsConcatenates(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.md")
	second := filepath.Join(dir, "b.md")
	if err := os.WriteFile(first, []byte("one "), 0o644); err != nil {
		t.Fatalf("write first: %v", err)
	}
	if err := os.WriteFile(second, []byte("two"), 0o644); err != nil {
		t.Fatalf("write second: %v", err)
	}
	reader, closer, err := openInputs([]string{first, second}, nil)
	if err != nil {
		t.Fatalf("openInputs concat: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ := io.ReadAll(reader)
	if string(buf) != "one two" {
		t.Fatalf("unexpected concatenated content: %q", string(buf))
	}
}

func TestOpenInputsStdin(t *testing.T) {
	stdin := strings.NewReader("piped")
	reader, closer, err := openInputs(nil, stdin)
	if err != nil {
		t.Fatalf("openInputs stdin: %v", err)
	}
	if closer != nil {
		t.Fatalf("expected no closer for stdin")
	}
	buf, _ := io.ReadAll(reader)
	if string(buf) != "piped" {
		t.Fatalf("unexpected stdin content: %q", string(buf))
	}
}

func TestResolveOSC8(t *testing.T) {
	cases := map[string]bool{
		"on":  true,
		"off": false,
		"1":   true,
		"0":   false,
	}
	for input, want := range cases {
		got, err := resolveOSC8(input)
		if err != nil {
			t.Fatalf("resolveOSC8(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("resolveOSC8(%q)=%v want %v", input, got, want)
		}
	}
	if _, err := resolveOSC8("nope"); err == nil {
		t.Fatalf("expected error for invalid osc8 value")
	}
}

func TestResolveLive(t *testing.T) {
	var buf bytes.Buffer
	got, err := resolveLive("auto", &buf)
	if err != nil || got {
		t.Fatalf("auto on a buffer: got %v, %v", got, err)
	}
	got, err = resolveLive("on", &buf)
	if err != nil || !got {
		t.Fatalf("on: got %v, %v", got, err)
	}
	if _, err := resolveLive("sometimes", &buf); err == nil {
		t.Fatalf("expected error for invalid live value")
	}
}

func TestRunPlain(t *testing.T) {
	var stdout, stderr bytes.Buffer
	stdin := strings.NewReader("# Title\n\n- item\n")
	code := run(context.Background(), []string{"--plain"}, stdin, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	want := "TITLE\n═════\n\n• item\n"
	if stdout.String() != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, stdout.String())
	}
}

func TestRunMarkdown(t *testing.T) {
	var stdout, stderr bytes.Buffer
	stdin := strings.NewReader("* item\n1) one\n")
	code := run(context.Background(), []string{"--markdown"}, stdin, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	want := "- item\n1. one\n"
	if stdout.String() != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, stdout.String())
	}
}

func TestRunBoringRender(t *testing.T) {
	var stdout, stderr bytes.Buffer
	stdin := strings.NewReader("Euler: $e^{i\\pi}$\n")
	code := run(context.Background(), []string{"--boring", "--width", "40", "--osc8", "off"}, stdin, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if strings.Contains(stdout.String(), "\x1b[") {
		t.Fatalf("boring output contains ANSI: %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "Euler:") {
		t.Fatalf("missing text in %q", stdout.String())
	}
}

func TestRunRejectsBadFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--plain", "--markdown"}, strings.NewReader(""), &stdout, &stderr)
	if code != 2 {
		t.Fatalf("expected exit 2 for conflicting formats, got %d", code)
	}
	code = run(context.Background(), []string{"--theme", "nope"}, strings.NewReader(""), &stdout, &stderr)
	if code != 2 {
		t.Fatalf("expected exit 2 for unknown theme, got %d", code)
	}
}

func TestRunListThemes(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--list-themes"}, nil, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stdout.String(), "boring\n") || !strings.Contains(stdout.String(), "default\n") {
		t.Fatalf("unexpected theme list %q", stdout.String())
	}
}

func TestRunFrontMatterIsOptIn(t *testing.T) {
	src := "---\ntitle: Post\n---\nBody\n"
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"--plain"}, strings.NewReader(src), &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "title: Post") {
		t.Fatalf("front matter should be kept by default: %q", stdout.String())
	}
	stdout.Reset()
	if code := run(context.Background(), []string{"--plain", "--strip-front-matter"}, strings.NewReader(src), &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if stdout.String() != "Body\n" {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", "Body\n", stdout.String())
	}
}
