package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStorage implements Storage as a single JSON document on disk.
// Every write rewrites the document through a temp file and rename, so a
// crash leaves either the old or the new document in place.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

// NewFileStorage returns a storage backed by the file at path. The file and
// its parent directory are created on first write.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Path returns the backing file path.
func (f *FileStorage) Path() string {
	return f.path
}

// Get returns the value stored under key.
// An unreadable or undecodable document is reported as ErrCorruptRecord.
func (f *FileStorage) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	v, ok := doc[key]
	if !ok {
		return nil, nil
	}
	return []byte(v), nil
}

// Set stores value under key.
func (f *FileStorage) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		// A corrupt document is replaced rather than blocking every write
		doc = make(map[string]string)
	}
	doc[key] = string(value)
	return f.write(doc)
}

// SetMany stores all values with a single document rewrite.
func (f *FileStorage) SetMany(ctx context.Context, values map[string][]byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		doc = make(map[string]string)
	}
	for k, v := range values {
		doc[k] = string(v)
	}
	return f.write(doc)
}

// Delete removes key.
func (f *FileStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		doc = make(map[string]string)
	}
	if _, ok := doc[key]; !ok && err == nil {
		return nil
	}
	delete(doc, key)
	return f.write(doc)
}

// Must be called with lock held.
func (f *FileStorage) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	if len(data) == 0 {
		return make(map[string]string), nil
	}

	doc := make(map[string]string)
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrCorruptRecord, err)
	}
	return doc, nil
}

// Must be called with lock held.
func (f *FileStorage) write(doc map[string]string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session document: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}
