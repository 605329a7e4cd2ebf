package mdmath

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	osc8      bool
	softWrap  bool
	highlight string
	cursor    string
	repaint   bool
}

func newRenderConfig(opts []RenderOption) renderConfig {
	cfg := renderConfig{cursor: defaultCursor, repaint: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithOSC8 enables or disables OSC 8 hyperlinks.
func WithOSC8(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.osc8 = enabled
	}
}

// WithSoftWrap enables soft wrapping for long words.
func WithSoftWrap(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.softWrap = enabled
	}
}

// WithHighlight enables syntax highlighting of fenced code with the named
// chroma style, e.g. "monokai". An empty name disables it.
func WithHighlight(style string) RenderOption {
	return func(cfg *renderConfig) {
		cfg.highlight = style
	}
}

// WithCursor sets the glyph drawn after the last block of an unfinished
// document. An empty glyph disables the cursor.
func WithCursor(glyph string) RenderOption {
	return func(cfg *renderConfig) {
		cfg.cursor = glyph
	}
}

// WithRepaint controls whether the live renderer erases and redraws the open
// tail of the document. Without it only stable blocks are printed as they
// settle, which suits pipes and log files.
func WithRepaint(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.repaint = enabled
	}
}
