//go:build windows

package store

import "golang.org/x/sys/windows"

// IsElevated reports whether the process runs with an elevated token, which
// writing under HKEY_LOCAL_MACHINE requires.
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
