package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the application banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{`    _         _                        _        `, "#818cf8"},
		{`   / \  _   _| |_ ___  _ __ ___   __ _| |_ __ _ `, "#a78bfa"},
		{`  / _ \| | | | __/ _ \| '_ ' _ \ / _' | __/ _' |`, "#c084fc"},
		{` / ___ \ |_| | || (_) | | | | | | (_| | || (_| |`, "#e879f9"},
		{`/_/   \_\__,_|\__\___/|_| |_| |_|\__,_|\__\__,_|`, "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
