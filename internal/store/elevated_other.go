//go:build !windows

package store

import "os"

func IsElevated() bool {
	return os.Geteuid() == 0
}
