package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// LoadState tells how a Load call obtained its value
type LoadState int

const (
	// StateMissing means the file does not exist and the default was returned
	StateMissing LoadState = iota
	// StateLoaded means the file was read and parsed
	StateLoaded
	// StateCorrupt means the file exists but could not be read or parsed; the default was returned
	StateCorrupt
)

func (s LoadState) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateLoaded:
		return "loaded"
	case StateCorrupt:
		return "corrupt"
	default:
		return fmt.Sprintf("LoadState(%d)", int(s))
	}
}

// Document owns a single JSON file. All reads and writes of that file go
// through one Document so they are serialized.
type Document[T any] struct {
	path       string
	newDefault func() T
	logger     *zap.Logger
	mutex      sync.RWMutex
}

// NewDocument creates a document bound to path. newDefault is called for
// every load that falls back, so callers never share a default value.
func NewDocument[T any](path string, newDefault func() T, logger *zap.Logger) *Document[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Document[T]{
		path:       path,
		newDefault: newDefault,
		logger:     logger.With(zap.String("document", path)),
	}
}

// Path returns the file backing the document
func (d *Document[T]) Path() string {
	return d.path
}

// Load returns the stored document, or the default when the file is missing
// or cannot be parsed. The state reports which case happened.
func (d *Document[T]) Load() (T, LoadState) {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return d.newDefault(), StateMissing
		}
		d.logger.Warn("document unreadable, using default", zap.Error(err))
		return d.newDefault(), StateCorrupt
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		d.logger.Warn("document corrupt, using default", zap.Error(err))
		return d.newDefault(), StateCorrupt
	}

	return value, StateLoaded
}

// Save replaces the whole document. Parent directories are created as
// needed and the file is swapped in with a rename so readers never see a
// half-written document.
func (d *Document[T]) Save(value T) error {
	data, err := encode(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(d.path), err)
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", filepath.Base(d.path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", filepath.Base(d.path), err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to chmod %s: %w", filepath.Base(d.path), err)
	}
	if err := os.Rename(tmpPath, d.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename %s: %w", filepath.Base(d.path), err)
	}

	d.logger.Debug("document saved", zap.Int("bytes", len(data)))
	return nil
}

// encode renders value with two-space indentation, leaving non-ASCII and
// HTML characters literal.
func encode(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
