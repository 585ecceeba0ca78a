package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

type fileDoc struct {
	Keys Tree `yaml:"keys"`
}

// File keeps the store tree in a YAML snapshot on disk. Every call reloads
// the file, so edits made by another process are picked up; mutating calls
// replace it atomically. Until the first write a missing file reads as the
// seed tree and nothing is created on disk.
type File struct {
	mu   sync.Mutex
	path string
	seed Tree
}

// NewFile opens the snapshot at path. The file may not exist yet.
func NewFile(path string, seed Tree) (*File, error) {
	if _, err := os.Stat(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fileError("open", path, err)
	}
	return &File{path: path, seed: seed}, nil
}

func (f *File) Path() string { return f.path }

func (f *File) Read(path, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, err := f.load()
	if err != nil {
		return "", err
	}
	return m.Read(path, name)
}

func (f *File) Write(path, name, value string) error {
	return f.mutate(func(m *Memory) error { return m.Write(path, name, value) })
}

func (f *File) CreatePath(path string) error {
	return f.mutate(func(m *Memory) error { return m.CreatePath(path) })
}

func (f *File) DeletePath(path string) error {
	return f.mutate(func(m *Memory) error { return m.DeletePath(path) })
}

func (f *File) HasPath(path string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, err := f.load()
	if err != nil {
		return false, err
	}
	return m.HasPath(path)
}

func (f *File) mutate(op func(*Memory) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, err := f.load()
	if err != nil {
		return err
	}
	if err := op(m); err != nil {
		return err
	}
	return f.save(m)
}

func (f *File) load() (*Memory, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewMemoryFrom(f.seed), nil
	}
	if err != nil {
		return nil, fileError("load", f.path, err)
	}
	var doc fileDoc
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, newError("load", f.path, "", KindStore, fmt.Errorf("parse snapshot: %w", err))
	}
	return NewMemoryFrom(doc.Keys), nil
}

func (f *File) save(m *Memory) error {
	b, err := yaml.Marshal(fileDoc{Keys: m.Snapshot()})
	if err != nil {
		return newError("save", f.path, "", KindStore, err)
	}
	// A read-only snapshot stands in for a key the user may not write.
	if info, err := os.Stat(f.path); err == nil && info.Mode().Perm()&0o200 == 0 {
		return newError("save", f.path, "", KindPermissionDenied, fs.ErrPermission)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fileError("save", f.path, err)
	}
	if err := replaceFile(f.path, b); err != nil {
		return fileError("save", f.path, err)
	}
	return nil
}

func fileError(op, path string, err error) *Error {
	kind := KindStore
	switch {
	case errors.Is(err, fs.ErrPermission):
		kind = KindPermissionDenied
	case errors.Is(err, fs.ErrNotExist):
		kind = KindNotFound
	}
	return newError(op, path, "", kind, err)
}
