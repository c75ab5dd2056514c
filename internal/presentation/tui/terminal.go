package tui

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of w, or fallback when unknown.
func Width(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// StatusStyler colors PASS, FAIL and ERROR labels for w. Non terminals get
// the labels unchanged.
func StatusStyler(w io.Writer) func(status, label string) string {
	out := termenv.NewOutput(w)
	return func(status, label string) string {
		var color string
		switch status {
		case "PASS":
			color = "#22c55e"
		case "FAIL":
			color = "#ef4444"
		default:
			color = "#f59e0b"
		}
		return out.String(label).Foreground(out.Color(color)).Bold().String()
	}
}
