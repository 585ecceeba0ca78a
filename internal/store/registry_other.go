//go:build !windows

package store

import (
	"errors"
	"fmt"
)

func NewRegistry() (Store, error) {
	return nil, fmt.Errorf("registry store: %w", errors.ErrUnsupported)
}
