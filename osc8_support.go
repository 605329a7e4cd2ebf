package mdmath

import (
	"os"
	"strconv"
	"strings"
)

const (
	osc8Start = "\x1b]8;;"
	osc8End   = "\x1b]8;;\x1b\\"
)

// osc8Programs lists TERM_PROGRAM values of terminals with OSC 8 support.
var osc8Programs = map[string]bool{
	"iTerm.app": true,
	"WezTerm":   true,
	"vscode":    true,
	"ghostty":   true,
}

// DetectOSC8Support reports whether the environment looks like a terminal
// that renders OSC 8 hyperlinks. OSC8=0 always disables them.
func DetectOSC8Support() bool {
	if os.Getenv("OSC8") == "0" {
		return false
	}
	if os.Getenv("DOMTERM") != "" || os.Getenv("WT_SESSION") != "" {
		return true
	}
	if osc8Programs[os.Getenv("TERM_PROGRAM")] {
		return true
	}
	if strings.Contains(strings.ToLower(os.Getenv("TERM")), "kitty") {
		return true
	}
	if vte, err := strconv.Atoi(os.Getenv("VTE_VERSION")); err == nil && vte >= 5000 {
		return true
	}
	return false
}

// hyperlink wraps text in an OSC 8 link to url.
func hyperlink(url, text string) string {
	return osc8Start + url + "\x1b\\" + text + osc8End
}
