// Package testutil holds test doubles shared by package tests.
package testutil

import (
	"strings"
	"sync"

	"thispc/internal/store"
)

type Op string

const (
	OpRead   Op = "read"
	OpWrite  Op = "write"
	OpCreate Op = "create"
	OpDelete Op = "delete"
	OpHas    Op = "has"
)

type Call struct {
	Op   Op
	Path string
	Name string
}

type fault struct {
	op   Op
	path string
	err  error
}

// FaultyStore wraps a store, records every call and fails the ones that
// match a registered fault. A failed call never reaches the inner store.
type FaultyStore struct {
	inner store.Store

	mu     sync.Mutex
	faults []fault
	calls  []Call
}

func NewFaultyStore(inner store.Store) *FaultyStore {
	return &FaultyStore{inner: inner}
}

// Fail makes every op on path return err.
func (f *FaultyStore) Fail(op Op, path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults = append(f.faults, fault{op: op, path: store.Clean(path), err: err})
}

func (f *FaultyStore) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Touched reports whether any mutating call reached path.
func (f *FaultyStore) Touched(path string) bool {
	path = store.Clean(path)
	for _, c := range f.Calls() {
		if c.Op != OpRead && c.Op != OpHas && strings.EqualFold(c.Path, path) {
			return true
		}
	}
	return false
}

func (f *FaultyStore) check(op Op, path, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	path = store.Clean(path)
	f.calls = append(f.calls, Call{Op: op, Path: path, Name: name})
	for _, ft := range f.faults {
		if ft.op == op && strings.EqualFold(ft.path, path) {
			return ft.err
		}
	}
	return nil
}

func (f *FaultyStore) Read(path, name string) (string, error) {
	if err := f.check(OpRead, path, name); err != nil {
		return "", err
	}
	return f.inner.Read(path, name)
}

func (f *FaultyStore) Write(path, name, value string) error {
	if err := f.check(OpWrite, path, name); err != nil {
		return err
	}
	return f.inner.Write(path, name, value)
}

func (f *FaultyStore) CreatePath(path string) error {
	if err := f.check(OpCreate, path, ""); err != nil {
		return err
	}
	return f.inner.CreatePath(path)
}

func (f *FaultyStore) DeletePath(path string) error {
	if err := f.check(OpDelete, path, ""); err != nil {
		return err
	}
	return f.inner.DeletePath(path)
}

func (f *FaultyStore) HasPath(path string) (bool, error) {
	if err := f.check(OpHas, path, ""); err != nil {
		return false, err
	}
	return f.inner.HasPath(path)
}
