// Package libdiff computes line diffs between rendered files.
package libdiff

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (o Op) Prefix() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	default:
		return " "
	}
}

type Line struct {
	Op   Op
	Text string
}

// Lines diffs from and to line by line.  Lines do not include their
// terminating newline.
func Lines(from, to string) []Line {
	diffCfg := diffpatch.New()
	a, b, lines := diffCfg.DiffLinesToChars(from, to)
	diffs := diffCfg.DiffMain(a, b, false)
	diffs = diffCfg.DiffCharsToLines(diffs, lines)
	res := []Line{}
	for i := range diffs {
		diff := &diffs[i]
		var op Op
		switch diff.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		default:
			op = Equal
		}
		for _, ln := range splitLines(diff.Text) {
			res = append(res, Line{Op: op, Text: ln})
		}
	}
	return res
}

func splitLines(v string) []string {
	if v == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(v, "\n"), "\n")
}

// Counts returns the number of inserted and deleted lines.
func Counts(lines []Line) (ins, del int) {
	for _, ln := range lines {
		switch ln.Op {
		case Insert:
			ins++
		case Delete:
			del++
		}
	}
	return
}

// Unified formats the difference between from and to as a unified diff with
// context lines around each change.  Identical inputs give "".
func Unified(fromName, toName, from, to string, context int) string {
	lines := Lines(from, to)
	changed := []int{}
	for i := range lines {
		if lines[i].Op != Equal {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 {
		return ""
	}
	// fromPos[i] and toPos[i] count the lines of each side before lines[i].
	fromPos := make([]int, len(lines)+1)
	toPos := make([]int, len(lines)+1)
	for i, ln := range lines {
		fromPos[i+1], toPos[i+1] = fromPos[i], toPos[i]
		if ln.Op != Insert {
			fromPos[i+1]++
		}
		if ln.Op != Delete {
			toPos[i+1]++
		}
	}
	b := &strings.Builder{}
	fmt.Fprintf(b, "--- %s\n+++ %s\n", fromName, toName)
	for k := 0; k < len(changed); {
		start := max(changed[k]-context, 0)
		end := changed[k]
		for k < len(changed) && changed[k] <= end+2*context+1 {
			end = changed[k]
			k++
		}
		stop := min(end+context+1, len(lines))
		fmt.Fprintf(b, "@@ -%s +%s @@\n",
			hunkRange(fromPos[start], fromPos[stop]-fromPos[start]),
			hunkRange(toPos[start], toPos[stop]-toPos[start]))
		for _, ln := range lines[start:stop] {
			b.WriteString(ln.Op.Prefix())
			b.WriteString(ln.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func hunkRange(pos, n int) string {
	switch n {
	case 0:
		return fmt.Sprintf("%d,0", pos)
	case 1:
		return fmt.Sprintf("%d", pos+1)
	default:
		return fmt.Sprintf("%d,%d", pos+1, n)
	}
}
