package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kpsunited/kps-admin-backend/internal/errors"
	"github.com/kpsunited/kps-admin-backend/pkg/logger"
)

// FileBackend persists the whole key space as one JSON file, the direct
// analog of the browser storage the console originally ran on. Every Set
// rewrites the file atomically (temp file + rename), so a failed write
// leaves the previous file intact.
type FileBackend struct {
	mu    sync.Mutex
	path  string
	quota int64
	data  map[string]json.RawMessage
}

// NewFileBackend opens (or creates) the backing file at path.
// quota <= 0 means DefaultQuotaBytes.
func NewFileBackend(path string, quota int64) (*FileBackend, error) {
	if quota <= 0 {
		quota = DefaultQuotaBytes
	}

	b := &FileBackend{
		path:  path,
		quota: quota,
		data:  make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Info("Storage file absent, starting empty", map[string]interface{}{
			"path": path,
		})
		return b, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read storage file %s: %w", path, err)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &b.data); err != nil {
			// The file as a whole is unreadable. Refuse to start rather
			// than overwrite real data with an empty key space later.
			return nil, &errors.MalformedStateError{Key: path, Err: err}
		}
	}

	logger.Info("Storage file loaded", map[string]interface{}{
		"path": path,
		"keys": len(b.data),
	})
	return b, nil
}

func (f *FileBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (f *FileBackend) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	used := f.usedLocked()
	next := used - int64(len(f.data[key])) + int64(len(value))
	if next > f.quota {
		return &errors.QuotaExceededError{Key: key, Used: used, Cap: f.quota}
	}

	previous, hadPrevious := f.data[key]
	stored := make(json.RawMessage, len(value))
	copy(stored, value)
	f.data[key] = stored

	if err := f.flushLocked(); err != nil {
		if hadPrevious {
			f.data[key] = previous
		} else {
			delete(f.data, key)
		}
		return err
	}
	return nil
}

func (f *FileBackend) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	previous, hadPrevious := f.data[key]
	if !hadPrevious {
		return nil
	}
	delete(f.data, key)

	if err := f.flushLocked(); err != nil {
		f.data[key] = previous
		return err
	}
	return nil
}

func (f *FileBackend) Used(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.usedLocked(), nil
}

func (f *FileBackend) Close() error { return nil }

func (f *FileBackend) usedLocked() int64 {
	var used int64
	for _, v := range f.data {
		used += int64(len(v))
	}
	return used
}

func (f *FileBackend) flushLocked() error {
	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode storage file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace storage file: %w", err)
	}
	return nil
}
