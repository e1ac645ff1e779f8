package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Locus ASCII art banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  _                          ", "#34d399"},
		{" | |    ___   ___ _   _ ___ ", "#2dd4bf"},
		{" | |   / _ \\ / __| | | / __|", "#22d3ee"},
		{" | |__| (_) | (__| |_| \\__ \\", "#38bdf8"},
		{" |_____\\___/ \\___|\\__,_|___/", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Status colours a short status word: green for ok, red otherwise.
func Status(ok bool, text string) string {
	p := termenv.ColorProfile()
	color := "#ef4444"
	if ok {
		color = "#22c55e"
	}
	return termenv.String(text).Foreground(p.Color(color)).Bold().String()
}
