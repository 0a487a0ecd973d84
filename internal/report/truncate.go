package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks a truncated cell value.
const Ellipsis = "..."

// width measures terminal cells. Ambiguous-width characters count as one
// cell regardless of the locale.
var width = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// cellText lays out line breaks and tabs the way Renderer prints them.
var cellText = strings.NewReplacer("\r\n", "\n", "\r", "", "\t", "    ")

func cellLines(s string) []string {
	return strings.Split(cellText.Replace(s), "\n")
}

// DisplayWidth returns the number of terminal cells s occupies. For a
// multi-line value that is the width of its widest line.
func DisplayWidth(s string) int {
	w := 0
	for _, line := range cellLines(s) {
		w = max(w, width.StringWidth(line))
	}
	return w
}

// Truncate shortens value to at most limit display cells, replacing the tail
// with Ellipsis. Each line of a multi-line value is cut on its own. A limit
// of zero or less disables truncation.
//
// For limits below len(Ellipsis) the marker is still appended in full, so the
// result is wider than limit. A wide character that would straddle the cut is
// dropped, leaving the result one cell short of limit.
func Truncate(value string, limit int) string {
	if limit <= 0 || DisplayWidth(value) <= limit {
		return value
	}
	keep := max(limit-len(Ellipsis), 0)
	out := cellLines(value)
	for i, line := range out {
		if width.StringWidth(line) > limit {
			out[i] = width.Truncate(line, keep, "") + Ellipsis
		}
	}
	return strings.Join(out, "\n")
}
