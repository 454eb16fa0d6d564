package patch

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/modu-ai/nestforge/internal/fsutil"
)

// Result reports what Apply did.
type Result struct {
	Path    string
	Changed bool
	Applied []string
	Skipped []string
}

// Patcher applies edits to files on disk.
type Patcher struct {
	logger *slog.Logger
}

// New creates a Patcher. A nil logger discards output.
func New(logger *slog.Logger) *Patcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Patcher{logger: logger}
}

// @MX:ANCHOR: [AUTO] Apply is the single write path for edits to generated sources.
// @MX:REASON: [AUTO] every installer that wires code into app.module.ts or main.ts goes through it
// Apply reads path once, applies edits in order and writes the file once.
// If a required edit fails, the file is left byte-identical and the error
// wraps ErrAnchorNotFound.
func (p *Patcher) Apply(path string, edits ...Edit) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	updated, res, err := ApplyString(string(data), edits...)
	if err != nil {
		p.logger.Debug("patch aborted", "path", path, "error", err)
		return nil, fmt.Errorf("patch %s: %w", path, err)
	}
	res.Path = path

	if !res.Changed {
		p.logger.Debug("patch not needed", "path", path, "skipped", len(res.Skipped))
		return res, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := fsutil.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	p.logger.Debug("patched", "path", path, "applied", res.Applied)
	return res, nil
}

// ApplyString applies edits to content in memory. On error the returned
// content is the unmodified input.
func ApplyString(content string, edits ...Edit) (string, *Result, error) {
	st := &state{original: content, content: content}
	res := &Result{}

	for _, e := range edits {
		applied, err := e.apply(st)
		if err != nil {
			return content, nil, err
		}
		if applied {
			res.Applied = append(res.Applied, e.Name())
		} else {
			res.Skipped = append(res.Skipped, e.Name())
		}
	}

	res.Changed = st.content != content
	return st.content, res, nil
}
