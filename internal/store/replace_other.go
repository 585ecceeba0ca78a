//go:build !windows

package store

import "github.com/google/renameio/v2"

func replaceFile(path string, b []byte) error {
	return renameio.WriteFile(path, b, 0o644)
}
