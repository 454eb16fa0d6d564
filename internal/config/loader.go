package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/modu-ai/nestforge/internal/fsutil"
)

// LoadAnswers reads a YAML answers file, applies defaults for anything the
// file leaves out, normalizes and validates the result.
func LoadAnswers(path string) (*Record, error) {
	r := NewDefaultRecord()
	// Engine-dependent defaults must come from the file's engine, not the default one.
	r.Database = DatabaseConfig{UseTypeORM: DefaultUseTypeORM}

	loaded, err := loadYAMLFile(path, r)
	if err != nil {
		return nil, err
	}
	if !loaded {
		return nil, fmt.Errorf("read answers %s: %w", path, os.ErrNotExist)
	}

	ApplyDefaults(r)
	r.Normalize()
	if err := Validate(r); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadProjectRecord reads .nestforge.yaml from the project root.
// Secrets are never stored there; callers recover them from .env.
func LoadProjectRecord(projectRoot string) (*Record, error) {
	r := &Record{}
	path := filepath.Join(filepath.Clean(projectRoot), ProjectRecordFile)
	loaded, err := loadYAMLFile(path, r)
	if err != nil {
		return nil, err
	}
	if !loaded {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, path)
	}
	ApplyDefaults(r)
	return r, nil
}

// SaveProjectRecord writes the redacted record to .nestforge.yaml.
func SaveProjectRecord(projectRoot string, r *Record) error {
	redacted := r.Redacted()
	data, err := yaml.Marshal(&redacted)
	if err != nil {
		return fmt.Errorf("marshal project record: %w", err)
	}
	path := filepath.Join(filepath.Clean(projectRoot), ProjectRecordFile)
	header := []byte("# Generated by nestforge. Secrets live in .env.\n")
	if err := fsutil.WriteFile(path, append(header, data...), 0o644); err != nil {
		return fmt.Errorf("write project record: %w", err)
	}
	return nil
}

// loadYAMLFile reads and unmarshals a YAML file.
// Returns false without error when the file does not exist.
func loadYAMLFile(path string, target any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("parse %s: %w", filepath.Base(path), ErrInvalidYAML)
	}

	return true, nil
}
