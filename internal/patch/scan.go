package patch

import "strings"

// scan calls fn for every byte of s that lies outside string literals and
// comments, with the bracket depth relative to the start of s. A string
// literal is reported once, at its closing quote. Opening
// brackets are reported before the depth increases and closing brackets
// after it decreases. Returning false from fn stops the scan.
func scan(s string, fn func(i, depth int) bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			j := strings.IndexByte(s[i:], '\n')
			if j < 0 {
				return
			}
			i += j - 1
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			j := strings.Index(s[i+2:], "*/")
			if j < 0 {
				return
			}
			i += j + 3
		case c == '\'' || c == '"' || c == '`':
			j := i + 1
			for j < len(s) && s[j] != c {
				if s[j] == '\\' {
					j++
				}
				j++
			}
			if j < len(s) && !fn(j, depth) {
				return
			}
			i = j
		case c == '[' || c == '(' || c == '{':
			if !fn(i, depth) {
				return
			}
			depth++
		case c == ']' || c == ')' || c == '}':
			depth--
			if !fn(i, depth) {
				return
			}
		default:
			if !fn(i, depth) {
				return
			}
		}
	}
}

// matchingBracket returns the index of the ']' closing the '[' at open,
// or -1 when the literal is unterminated.
func matchingBracket(s string, open int) int {
	closeAt := -1
	scan(s[open+1:], func(i, depth int) bool {
		if depth < 0 {
			if s[open+1+i] == ']' {
				closeAt = open + 1 + i
			}
			return false
		}
		return true
	})
	return closeAt
}

// lastCodeByte returns the index of the last non-space byte of s outside
// comments, or -1.
func lastCodeByte(s string) int {
	last := -1
	scan(s, func(i, _ int) bool {
		if c := s[i]; c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			last = i
		}
		return true
	})
	return last
}

// splitEntries splits list literal content at top-level commas and returns
// the trimmed, non-empty entries.
func splitEntries(inner string) []string {
	var entries []string
	start := 0
	scan(inner, func(i, depth int) bool {
		if depth == 0 && inner[i] == ',' {
			entries = append(entries, inner[start:i])
			start = i + 1
		}
		return true
	})
	entries = append(entries, inner[start:])

	out := entries[:0]
	for _, e := range entries {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

// lineIndent returns the leading whitespace of the line containing pos.
func lineIndent(s string, pos int) string {
	start := strings.LastIndexByte(s[:pos], '\n') + 1
	end := start
	for end < len(s) && (s[end] == ' ' || s[end] == '\t') {
		end++
	}
	return s[start:end]
}

// lineStart returns the offset of the first byte of the line containing pos.
func lineStart(s string, pos int) int {
	return strings.LastIndexByte(s[:pos], '\n') + 1
}

// indentLines prefixes every line of text after the first with indent.
func indentLines(text, indent string) string {
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "" {
			lines[i] = indent + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
