package mdmath

import (
	"bytes"
	"regexp"
	"testing"
)

var ansiRegexp = regexp.MustCompile("\x1b\\[[0-9;]*[A-Za-z]")
var osc8Regexp = regexp.MustCompile("\x1b\\]8;;.*?\x1b\\\\")

func stripANSI(s string) string {
	s = ansiRegexp.ReplaceAllString(s, "")
	s = osc8Regexp.ReplaceAllString(s, "")
	return s
}

func renderStream(t *testing.T, src []byte, width int) string {
	t.Helper()
	return renderStreamWithOptions(t, src, width, WithOSC8(false))
}

func renderStreamWithOptions(t *testing.T, src []byte, width int, opts ...RenderOption) string {
	t.Helper()
	var out bytes.Buffer
	err := Render(RenderRequest{
		Reader:  bytes.NewReader(src),
		Writer:  &out,
		Width:   width,
		Theme:   builtinThemes["default"],
		Options: opts,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out.String()
}

func plainText(src string) string {
	return FormatPlainText(Parse(src))
}
