package store

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

var errHasSubkeys = errors.New("path has subkeys")

type memValue struct {
	name string
	data string
}

type memNode struct {
	path   string
	values map[string]memValue
}

// Memory is an in-process Store. It backs the file store and the tests.
type Memory struct {
	mu    sync.RWMutex
	nodes map[string]*memNode
}

func NewMemory() *Memory {
	return &Memory{nodes: map[string]*memNode{}}
}

// NewMemoryFrom builds a store holding every path and value of t.
func NewMemoryFrom(t Tree) *Memory {
	m := NewMemory()
	for path, values := range t {
		n := m.ensure(Clean(path))
		for name, data := range values {
			n.values[foldKey(name)] = memValue{name: name, data: data}
		}
	}
	return m
}

func (m *Memory) Read(path, name string) (string, error) {
	path = Clean(path)
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.nodes[foldKey(path)]
	if !ok {
		return "", newError("read", path, name, KindNotFound, nil)
	}
	v, ok := n.values[foldKey(name)]
	if !ok {
		return "", newError("read", path, name, KindNotFound, nil)
	}
	return v.data, nil
}

func (m *Memory) Write(path, name, value string) error {
	path = Clean(path)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.ensure(path)
	n.values[foldKey(name)] = memValue{name: name, data: value}
	return nil
}

func (m *Memory) CreatePath(path string) error {
	path = Clean(path)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensure(path)
	return nil
}

func (m *Memory) DeletePath(path string) error {
	path = Clean(path)
	key := foldKey(path)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.nodes[key]; !ok {
		return nil
	}
	for k := range m.nodes {
		if strings.HasPrefix(k, key+"/") {
			return newError("delete", path, "", KindStore, errHasSubkeys)
		}
	}
	delete(m.nodes, key)
	return nil
}

func (m *Memory) HasPath(path string) (bool, error) {
	path = Clean(path)
	if path == "" {
		return true, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.nodes[foldKey(path)]
	return ok, nil
}

// Snapshot copies the current contents, keyed by the casing each path and
// value was first written with.
func (m *Memory) Snapshot() Tree {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(Tree, len(m.nodes))
	for _, n := range m.nodes {
		values := make(map[string]string, len(n.values))
		for _, v := range n.values {
			values[v.name] = v.data
		}
		out[n.path] = values
	}
	return out
}

// Paths lists every stored path in lexical order.
func (m *Memory) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.nodes))
	for _, n := range m.nodes {
		out = append(out, n.path)
	}
	sort.Strings(out)
	return out
}

// ensure creates path and its ancestors. Callers hold the write lock.
func (m *Memory) ensure(path string) *memNode {
	key := foldKey(path)
	if n, ok := m.nodes[key]; ok {
		return n
	}
	if p := parent(path); p != "" {
		m.ensure(p)
	}
	n := &memNode{path: path, values: map[string]memValue{}}
	m.nodes[key] = n
	return n
}
