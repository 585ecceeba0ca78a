//go:build windows

package store

import (
	"errors"
	"strings"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const machineRoot = `SOFTWARE\Microsoft\Windows\CurrentVersion`

// Registry is the Store backed by HKEY_LOCAL_MACHINE. It always uses the
// 64-bit view so a 32-bit build edits the keys Explorer reads.
type Registry struct {
	root   registry.Key
	prefix string
}

func NewRegistry() (Store, error) {
	return &Registry{root: registry.LOCAL_MACHINE, prefix: machineRoot}, nil
}

func (r *Registry) keyPath(path string) string {
	path = Clean(path)
	if path == "" {
		return r.prefix
	}
	return r.prefix + `\` + strings.ReplaceAll(path, "/", `\`)
}

func (r *Registry) Read(path, name string) (string, error) {
	k, err := registry.OpenKey(r.root, r.keyPath(path), registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return "", registryError("read", path, name, err)
	}
	defer k.Close()

	v, _, err := k.GetStringValue(name)
	if err != nil {
		return "", registryError("read", path, name, err)
	}
	return v, nil
}

func (r *Registry) Write(path, name, value string) error {
	k, _, err := registry.CreateKey(r.root, r.keyPath(path), registry.SET_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return registryError("write", path, name, err)
	}
	defer k.Close()

	if err := k.SetStringValue(name, value); err != nil {
		return registryError("write", path, name, err)
	}
	return nil
}

func (r *Registry) CreatePath(path string) error {
	k, _, err := registry.CreateKey(r.root, r.keyPath(path), registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return registryError("create", path, "", err)
	}
	return k.Close()
}

// DeletePath opens the parent in the 64-bit view and deletes the leaf from it.
func (r *Registry) DeletePath(path string) error {
	full := r.keyPath(path)
	i := strings.LastIndex(full, `\`)
	parentKey, leaf := full[:i], full[i+1:]

	p, err := registry.OpenKey(r.root, parentKey, registry.ENUMERATE_SUB_KEYS|registry.WOW64_64KEY)
	if err != nil {
		if e := registryError("delete", path, "", err); e.Kind != KindNotFound {
			return e
		}
		return nil
	}
	defer p.Close()

	if err := registry.DeleteKey(p, leaf); err != nil {
		if e := registryError("delete", path, "", err); e.Kind != KindNotFound {
			return e
		}
	}
	return nil
}

func (r *Registry) HasPath(path string) (bool, error) {
	k, err := registry.OpenKey(r.root, r.keyPath(path), registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		e := registryError("open", path, "", err)
		if e.Kind == KindNotFound {
			return false, nil
		}
		return false, e
	}
	k.Close()
	return true, nil
}

func registryError(op, path, name string, err error) *Error {
	kind := KindStore
	switch {
	case errors.Is(err, registry.ErrNotExist),
		errors.Is(err, windows.ERROR_FILE_NOT_FOUND),
		errors.Is(err, windows.ERROR_PATH_NOT_FOUND):
		kind = KindNotFound
	case errors.Is(err, windows.ERROR_ACCESS_DENIED):
		kind = KindPermissionDenied
	}
	return newError(op, Clean(path), name, kind, err)
}
