package cli

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/aretw0/locus/internal/presentation/tui"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the terminal width of w, or 0 when unknown.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// writeMarkdown renders markdown with glamour when w is a terminal and
// raw is false; otherwise it writes the source unchanged.
func writeMarkdown(w io.Writer, markdown string, raw bool) error {
	if raw || !isTerminal(w) {
		_, err := io.WriteString(w, markdown)
		return err
	}
	render, err := tui.NewRenderer(terminalWidth(w))
	if err != nil {
		_, werr := io.WriteString(w, markdown)
		return werr
	}
	out, err := render(markdown)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
