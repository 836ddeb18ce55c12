package libdiff

import (
	"strings"

	"github.com/fatih/color"
)

// Colorize colors the lines of a unified diff for terminal display.
func Colorize(unified string) string {
	var (
		header = color.New(color.Bold).SprintFunc()
		hunk   = color.New(color.FgCyan).SprintFunc()
		ins    = color.New(color.FgGreen).SprintFunc()
		del    = color.New(color.FgRed).SprintFunc()
	)
	lines := strings.SplitAfter(unified, "\n")
	for i, ln := range lines {
		switch {
		case strings.HasPrefix(ln, "+++"), strings.HasPrefix(ln, "---"):
			lines[i] = header(ln)
		case strings.HasPrefix(ln, "@@"):
			lines[i] = hunk(ln)
		case strings.HasPrefix(ln, "+"):
			lines[i] = ins(ln)
		case strings.HasPrefix(ln, "-"):
			lines[i] = del(ln)
		}
	}
	return strings.Join(lines, "")
}
