// Package textdiff computes line diffs between an existing file and the
// content nestforge would write in its place.
package textdiff

import (
	"fmt"
	"strings"
)

// Op is a line-level edit operation.
type Op int

const (
	// OpEqual means the line is unchanged.
	OpEqual Op = iota
	// OpInsert means a line was added.
	OpInsert
	// OpDelete means a line was removed.
	OpDelete
)

// Line is one line of the edit script.
type Line struct {
	Op   Op
	Text string
	// Old and New are 1-based line numbers; 0 when the line is absent on that side.
	Old, New int
}

// Lines returns the full edit script turning a into b, equal lines
// included, from a longest-common-subsequence table.
func Lines(a, b []string) []Line {
	m, n := len(a), len(b)

	// lcs[i][j] = length of the LCS of a[i:] and b[j:]
	lcs := make([][]int, m+1)
	for i := range lcs {
		lcs[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	script := make([]Line, 0, max(m, n))
	i, j := 0, 0
	for i < m || j < n {
		switch {
		case i < m && j < n && a[i] == b[j]:
			script = append(script, Line{Op: OpEqual, Text: a[i], Old: i + 1, New: j + 1})
			i++
			j++
		case j < n && (i == m || lcs[i][j+1] > lcs[i+1][j]):
			script = append(script, Line{Op: OpInsert, Text: b[j], New: j + 1})
			j++
		default:
			script = append(script, Line{Op: OpDelete, Text: a[i], Old: i + 1})
			i++
		}
	}
	return script
}

// Stat counts inserted and deleted lines between two contents.
func Stat(old, new []byte) (inserted, deleted int) {
	for _, l := range Lines(splitLines(string(old)), splitLines(string(new))) {
		switch l.Op {
		case OpInsert:
			inserted++
		case OpDelete:
			deleted++
		}
	}
	return inserted, deleted
}

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// Unified produces a unified diff of old against new.
// Returns an empty string if the contents are identical.
func Unified(filename string, old, new []byte) string {
	script := Lines(splitLines(string(old)), splitLines(string(new)))

	var hunks [][2]int // [start, end) into script
	for i := 0; i < len(script); i++ {
		if script[i].Op == OpEqual {
			continue
		}
		start := max(i-contextLines, 0)
		end := i + 1
		// Extend while the next change is close enough to share context.
		for k := end; k < len(script) && k < end+2*contextLines+1; k++ {
			if script[k].Op != OpEqual {
				end = k + 1
			}
		}
		end = min(end+contextLines, len(script))
		if len(hunks) > 0 && start <= hunks[len(hunks)-1][1] {
			hunks[len(hunks)-1][1] = end
		} else {
			hunks = append(hunks, [2]int{start, end})
		}
		i = end - 1
	}
	if len(hunks) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n", filename)
	fmt.Fprintf(&sb, "+++ b/%s\n", filename)
	for _, h := range hunks {
		lines := script[h[0]:h[1]]
		oldStart, newStart := firstNumbers(script, h[0])
		var oldCount, newCount int
		for _, l := range lines {
			if l.Op != OpInsert {
				oldCount++
			}
			if l.Op != OpDelete {
				newCount++
			}
		}
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
		for _, l := range lines {
			sb.WriteString([]string{" ", "+", "-"}[l.Op] + l.Text + "\n")
		}
	}
	return sb.String()
}

// firstNumbers returns the old and new line numbers at which script[from:]
// starts, counting lines absent on one side from the preceding position.
func firstNumbers(script []Line, from int) (oldLine, newLine int) {
	for _, l := range script[:from] {
		if l.Op != OpInsert {
			oldLine++
		}
		if l.Op != OpDelete {
			newLine++
		}
	}
	return oldLine + 1, newLine + 1
}

// splitLines splits a string into lines, dropping the final newline.
func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
