package patch

import (
	"fmt"
	"regexp"
	"strings"
)

// Edit is a single idempotent change to a source file. Guards are evaluated
// against the file as it was read, so an edit never skips because of text
// inserted by an earlier edit in the same Apply call.
type Edit interface {
	// Name describes the edit for logs and results.
	Name() string
	apply(st *state) (applied bool, err error)
}

// state is the in-memory copy being edited.
type state struct {
	original string
	content  string
	// importAt is where the next import line goes, so several imports
	// keep their given order at the top of the file.
	importAt int
}

// ImportLine prepends Statement to the top of the file unless the literal
// statement is already present.
type ImportLine struct {
	Statement string
}

// Import builds an ImportLine for `import { names } from 'from';`.
func Import(names, from string) ImportLine {
	return ImportLine{Statement: fmt.Sprintf("import { %s } from '%s';", names, from)}
}

func (e ImportLine) Name() string { return "import " + e.Statement }

func (e ImportLine) apply(st *state) (bool, error) {
	if strings.Contains(st.original, e.Statement) {
		return false, nil
	}
	line := e.Statement + "\n"
	st.content = st.content[:st.importAt] + line + st.content[st.importAt:]
	st.importAt += len(line)
	return true, nil
}

// ListEntry adds Entry to the first `List: [ ... ]` literal unless Marker
// (Entry when empty) already appears anywhere in the file. A missing list
// is an error unless Optional is set.
type ListEntry struct {
	List     string
	Entry    string
	Marker   string
	Optional bool
}

func (e ListEntry) Name() string { return e.List + " += " + firstLine(e.Entry) }

func (e ListEntry) marker() string {
	if e.Marker != "" {
		return e.Marker
	}
	return e.Entry
}

func (e ListEntry) apply(st *state) (bool, error) {
	if strings.Contains(st.original, e.marker()) {
		return false, nil
	}

	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(e.List) + `\s*:\s*\[`)
	loc := pattern.FindStringIndex(st.content)
	if loc == nil {
		if e.Optional {
			return false, nil
		}
		return false, fmt.Errorf("%w: %s: [...]", ErrAnchorNotFound, e.List)
	}
	open := loc[1] - 1
	closeAt := matchingBracket(st.content, open)
	if closeAt < 0 {
		return false, fmt.Errorf("%w: unterminated %s list", ErrAnchorNotFound, e.List)
	}

	inner := st.content[open+1 : closeAt]
	replaced := formatList(inner, e.Entry, lineIndent(st.content, loc[0]))
	st.content = st.content[:open+1] + replaced + st.content[closeAt:]
	return true, nil
}

// formatList returns the new content between the brackets with entry added.
// Existing entries are kept verbatim.
func formatList(inner, entry, baseIndent string) string {
	multiline := strings.Contains(entry, "\n")

	if strings.Contains(inner, "\n") && strings.TrimSpace(inner) != "" {
		body := strings.TrimRight(inner, " \t\r\n")
		tail := inner[len(body):]
		indent := firstEntryIndent(inner, baseIndent+"  ")
		if last := lastCodeByte(body); last >= 0 && body[last] != ',' {
			body = body[:last+1] + "," + body[last+1:]
		}
		if !strings.Contains(tail, "\n") {
			tail = "\n" + baseIndent
		}
		return body + "\n" + indent + indentLines(entry, indent) + "," + tail
	}

	entries := append(splitEntries(inner), entry)
	if !multiline {
		return strings.Join(entries, ", ")
	}

	indent := baseIndent + "  "
	var b strings.Builder
	b.WriteString("\n")
	for _, en := range entries {
		b.WriteString(indent + indentLines(en, indent) + ",\n")
	}
	b.WriteString(baseIndent)
	return b.String()
}

// firstEntryIndent returns the indentation of the first non-blank line
// after the opening bracket.
func firstEntryIndent(inner, fallback string) string {
	for _, line := range strings.Split(inner, "\n")[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	}
	return fallback
}

// InsertBefore inserts Text on its own lines before the first line matching
// Anchor, indented like that line, unless Marker is already present.
type InsertBefore struct {
	Anchor *regexp.Regexp
	Text   string
	Marker string
}

func (e InsertBefore) Name() string { return "before " + e.Anchor.String() + ": " + firstLine(e.Text) }

func (e InsertBefore) apply(st *state) (bool, error) {
	marker := e.Marker
	if marker == "" {
		marker = strings.TrimSpace(e.Text)
	}
	if strings.Contains(st.original, marker) {
		return false, nil
	}

	loc := e.Anchor.FindStringIndex(st.content)
	if loc == nil {
		return false, fmt.Errorf("%w: %s", ErrAnchorNotFound, e.Anchor.String())
	}
	start := lineStart(st.content, loc[0])
	indent := lineIndent(st.content, loc[0])
	block := indent + indentLines(strings.Trim(e.Text, "\n"), indent) + "\n"
	st.content = st.content[:start] + block + st.content[start:]
	return true, nil
}

// AppendBlock appends Text at the end of the file unless Marker is present.
type AppendBlock struct {
	Text   string
	Marker string
}

func (e AppendBlock) Name() string { return "append " + firstLine(e.Text) }

func (e AppendBlock) apply(st *state) (bool, error) {
	marker := e.Marker
	if marker == "" {
		marker = strings.TrimSpace(e.Text)
	}
	if strings.Contains(st.original, marker) {
		return false, nil
	}
	if st.content != "" && !strings.HasSuffix(st.content, "\n") {
		st.content += "\n"
	}
	st.content += strings.Trim(e.Text, "\n") + "\n"
	return true, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
