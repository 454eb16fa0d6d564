// Package pkgjson edits package.json in place. Key order and formatting of
// untouched entries are kept so generated projects diff cleanly.
package pkgjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/modu-ai/nestforge/internal/fsutil"
)

// ErrInvalidManifest indicates package.json is not a JSON object.
var ErrInvalidManifest = errors.New("pkgjson: invalid package.json")

// SetScript sets scripts.<name> to command in the package.json at path.
// Returns false when the script already had that command.
func SetScript(path, name, command string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	updated, err := SetScriptBytes(data, name, command)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	if string(updated) == string(data) {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := fsutil.WriteFile(path, updated, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

// SetScriptBytes is SetScript over an in-memory document.
func SetScriptBytes(data []byte, name, command string) ([]byte, error) {
	if _, typ, _, err := jsonparser.Get(data); err != nil || typ != jsonparser.Object {
		return nil, ErrInvalidManifest
	}

	value, err := quote(command)
	if err != nil {
		return nil, err
	}

	current, err := jsonparser.GetString(data, "scripts", name)
	switch {
	case err == nil && current == command:
		return data, nil
	case !errors.Is(err, jsonparser.KeyPathNotFoundError):
		// Existing key: replace the value where it stands.
		return jsonparser.Set(data, value, "scripts", name)
	}

	scripts, typ, end, err := jsonparser.Get(data, "scripts")
	if err != nil || typ != jsonparser.Object {
		return jsonparser.Set(data, value, "scripts", name)
	}
	return appendEntry(data, len(scripts), end, name, value), nil
}

// Script returns scripts.<name>, or "" when it is not set.
func Script(path, name string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return ScriptBytes(data, name)
}

// ScriptBytes is Script over an in-memory document.
func ScriptBytes(data []byte, name string) (string, error) {
	s, err := jsonparser.GetString(data, "scripts", name)
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return "", nil
	}
	return s, err
}

// quote encodes s as a JSON string without HTML escaping, so shell
// operators such as && stay readable.
func quote(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// appendEntry adds "name": value as the last member of the object that ends
// at end (exclusive) and is size bytes long, indented like its siblings.
func appendEntry(data []byte, size, end int, name string, value []byte) []byte {
	closing := end - 1
	open := end - size
	body := string(data[open+1 : closing])

	closeIndent := indentOf(data, closing)
	entryIndent := closeIndent + "  "
	if i := strings.Index(body, "\""); i >= 0 {
		entryIndent = indentOf(data, open+1+i)
	}

	key, _ := quote(name)
	entry := string(key) + ": " + string(value)

	var b strings.Builder
	trimmed := strings.TrimRight(body, " \t\r\n")
	b.Write(data[:open+1])
	if strings.TrimSpace(trimmed) == "" {
		b.WriteString("\n" + entryIndent + entry + "\n" + closeIndent)
	} else {
		b.WriteString(trimmed)
		b.WriteString(",\n" + entryIndent + entry)
		b.WriteString(body[len(trimmed):])
	}
	b.Write(data[closing:])
	return []byte(b.String())
}

// indentOf returns the leading whitespace of the line holding data[i].
func indentOf(data []byte, i int) string {
	start := i
	for start > 0 && data[start-1] != '\n' {
		start--
	}
	end := start
	for end < len(data) && (data[end] == ' ' || data[end] == '\t') {
		end++
	}
	if end > i {
		return string(data[start:i])
	}
	return string(data[start:end])
}
