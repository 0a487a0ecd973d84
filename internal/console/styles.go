// Package console colors report titles and headers for terminal output.
package console

import (
	"io"

	"github.com/muesli/termenv"
)

const (
	black  = "0"
	yellow = "3"
)

// Styles implements report.Styles on top of a termenv output. Colors are
// dropped automatically when the writer is not a terminal or NO_COLOR is set.
type Styles struct {
	out *termenv.Output
}

// New returns Styles for w. With color false no escape sequences are emitted.
func New(w io.Writer, color bool) *Styles {
	var opts []termenv.OutputOption
	if !color {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &Styles{out: termenv.NewOutput(w, opts...)}
}

// Title renders s black on yellow.
func (s *Styles) Title(text string) string {
	return s.out.String(text).
		Foreground(s.out.Color(black)).
		Background(s.out.Color(yellow)).
		String()
}

// Header renders s in yellow.
func (s *Styles) Header(text string) string {
	return s.out.String(text).Foreground(s.out.Color(yellow)).String()
}
