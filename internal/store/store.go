// Package store is the capability layer over the machine configuration store.
//
// Paths are logical, "/"-separated and relative to the machine configuration
// root (HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion on Windows). Matching is
// case-insensitive, as it is in the registry.
package store

import "strings"

// Store reads and writes named string values under configuration paths.
// Implementations make a single attempt per call and never retry.
type Store interface {
	// Read returns ErrNotFound when either the path or the value is absent.
	Read(path, name string) (string, error)
	// Write creates path and any missing ancestors before setting the value.
	Write(path, name, value string) error
	// CreatePath succeeds when the path already exists.
	CreatePath(path string) error
	// DeletePath succeeds when the path is already absent.
	DeletePath(path string) error
	HasPath(path string) (bool, error)
}

// Tree is a plain snapshot of a store: path -> value name -> value.
// A path with no values maps to an empty map.
type Tree map[string]map[string]string

// Clean normalizes a logical path: backslashes become slashes, empty
// segments are dropped and no leading or trailing separator remains.
func Clean(path string) string {
	path = strings.ReplaceAll(path, `\`, "/")
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "/")
}

func parent(path string) string {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return ""
	}
	return path[:i]
}

func foldKey(s string) string {
	return strings.ToLower(s)
}
