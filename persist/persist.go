// Package persist saves and loads editor state as JSON or YAML documents.
package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"graphed/editor"
)

// Format represents a document format.
type Format string

const (
	// FormatJSON is the default format.
	FormatJSON Format = "json"
	// FormatYAML is easier to edit by hand.
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for format names and file extensions that
// map to no Format.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML}
}

// Encode writes snap to w.
func Encode[N any, D comparable, V any](w io.Writer, f Format, snap editor.Snapshot[N, D, V]) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}

// Decode reads a snapshot from r. Unknown fields are rejected.
func Decode[N any, D comparable, V any](r io.Reader, f Format) (editor.Snapshot[N, D, V], error) {
	var snap editor.Snapshot[N, D, V]
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&snap); err != nil {
			return snap, err
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&snap); err != nil {
			return snap, err
		}
	default:
		return snap, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	return snap, nil
}

// Save writes the persistent part of s to path, in the format its extension
// names. The file is only touched once the document has been encoded.
func Save[N any, D comparable, V any, T editor.Template[N, D, V], U any](path string, s *editor.State[N, D, V, T, U]) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, f, s.Snapshot()); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Load reads the state stored at path and restores it. Stale references in
// the document are repaired and logged through the logger given in opts.
func Load[N any, D comparable, V any, T editor.Template[N, D, V], U any](path string, opts ...editor.Option) (*editor.State[N, D, V, T, U], error) {
	snap, err := ReadSnapshot[N, D, V](path)
	if err != nil {
		return nil, err
	}
	s, err := editor.Restore[N, D, V, T, U](snap, opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

// ReadSnapshot decodes the document at path without restoring it.
func ReadSnapshot[N any, D comparable, V any](path string) (editor.Snapshot[N, D, V], error) {
	var snap editor.Snapshot[N, D, V]

	f, err := FormatFromPath(path)
	if err != nil {
		return snap, err
	}
	file, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer file.Close()

	snap, err = Decode[N, D, V](file, f)
	if err != nil {
		return snap, fmt.Errorf("load %s: %w", path, err)
	}
	return snap, nil
}
