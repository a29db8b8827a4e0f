// Package filestore keeps a session as a single YAML or JSON snapshot file.
// It backs the yaml storage option and export/import.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/thenoetrevino/tock/internal/models"
	"gopkg.in/yaml.v3"
)

// Format is a snapshot encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts yaml, yml and json
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format %q (want yaml or json)", s)
}

// FormatFromPath picks the format from a file extension, defaulting to YAML
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Encode writes snap to w
func Encode(w io.Writer, snap models.Snapshot, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	}
}

// Decode reads a snapshot and validates it
func Decode(r io.Reader, format Format) (models.Snapshot, error) {
	var snap models.Snapshot

	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&snap)
	default:
		err = yaml.NewDecoder(r).Decode(&snap)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return models.Snapshot{}, fmt.Errorf("decode %s: %w", format, err)
	}

	if err := snap.Validate(); err != nil {
		return models.Snapshot{}, err
	}
	return snap, nil
}

// Store persists a snapshot to one file
type Store struct {
	path   string
	format Format
}

// New returns a store for path, with the format taken from its extension
func New(path string) *Store {
	return &Store{path: path, format: FormatFromPath(path)}
}

// NewWithFormat returns a store for path using an explicit format
func NewWithFormat(path string, format Format) *Store {
	return &Store{path: path, format: format}
}

// Path returns the snapshot file
func (s *Store) Path() string {
	return s.path
}

// LoadAll reads the file. A missing file is an empty session.
func (s *Store) LoadAll(_ context.Context) (models.Snapshot, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return models.Snapshot{}, nil
	}
	if err != nil {
		return models.Snapshot{}, err
	}
	defer func() { _ = f.Close() }()

	return Decode(f, s.format)
}

// SaveAll replaces the file. The new contents are written to a temporary
// file first and renamed over the old one.
func (s *Store) SaveAll(_ context.Context, snap models.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid snapshot: %w", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, snap, s.format); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return writeFileAtomic(s.path, buf.Bytes(), 0o644)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
