// Package envfile merges KEY=VALUE pairs into .env files.
package envfile

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	"github.com/modu-ai/nestforge/internal/fsutil"
)

// Entry is a single key/value pair. Value may be a string, bool or number;
// it is written without quoting or escaping.
type Entry struct {
	Key   string
	Value any
}

// E is shorthand for building an Entry.
func E(key string, value any) Entry {
	return Entry{Key: key, Value: value}
}

// Update merges entries into the file at path. Existing keys are replaced
// in place, new keys are appended in the given order, and keys not named
// are left untouched. A missing file is created.
func Update(path string, entries ...Entry) error {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read env file: %w", err)
	}

	content := Merge(string(data), entries...)
	if err := fsutil.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write env file: %w", err)
	}
	return nil
}

// Merge applies entries to env file content and returns the new content.
// Trailing whitespace is trimmed, so merging the same entries twice yields
// identical output. CRLF content keeps CRLF line endings.
func Merge(content string, entries ...Entry) string {
	eol := "\n"
	if strings.Contains(content, "\r\n") {
		eol = "\r\n"
	}
	for _, e := range entries {
		line := e.Key + "=" + cast.ToString(e.Value)
		pattern := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(e.Key) + `=[^\r\n]*`)

		if locs := pattern.FindAllStringIndex(content, -1); locs != nil {
			// Later duplicates are dropped so the key stays unique.
			for i := len(locs) - 1; i > 0; i-- {
				end := locs[i][1]
				if strings.HasPrefix(content[end:], "\r\n") {
					end += 2
				} else if strings.HasPrefix(content[end:], "\n") {
					end++
				}
				content = content[:locs[i][0]] + content[end:]
			}
			content = content[:locs[0][0]] + line + content[locs[0][1]:]
			continue
		}
		content = strings.TrimRight(content, " \t\r\n")
		if content != "" {
			content += eol
		}
		content += line
	}
	content = strings.TrimRight(content, " \t\r\n")
	if content == "" {
		return ""
	}
	return content + eol
}

// assignment matches the KEY=VALUE lines Merge writes.
var assignment = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_.]*)=(.*)$`)

// Read parses the env file at path. A missing file yields an empty map.
func Read(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read env file: %w", err)
	}
	return Parse(string(data))
}

// Parse reads env file content. Lines in the KEY=VALUE form Merge writes
// yield the raw text after the first '=', so values round-trip unchanged
// even when they hold '#', quotes or '$'. Any other line (export prefix,
// spaces around '=', multi-line quoted values) is parsed by godotenv.
func Parse(content string) (map[string]string, error) {
	raw := make(map[string]string)
	var rest []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if m := assignment.FindStringSubmatch(line); m != nil {
			raw[m[1]] = m[2]
			continue
		}
		rest = append(rest, line)
	}

	values, err := godotenv.Unmarshal(strings.Join(rest, "\n"))
	if err != nil {
		return nil, fmt.Errorf("parse env file: %w", err)
	}
	for k, v := range raw {
		values[k] = v
	}
	return values, nil
}
