// Package singleinstance keeps a second writer from running at the same time
// by holding a loopback TCP port derived from the lock name.
package singleinstance

import (
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"sync"
)

const (
	portBase  = 41000
	portRange = 8000
)

var (
	mu        sync.Mutex
	listeners = map[string]net.Listener{}
)

func lockAddress(name string) string {
	if strings.TrimSpace(name) == "" {
		name = "thispc"
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	return fmt.Sprintf("127.0.0.1:%d", portBase+int(h.Sum32()%portRange))
}

// Acquire returns false when another process (or an earlier Acquire in this
// one) already holds name.
func Acquire(name string) (bool, error) {
	mu.Lock()
	defer mu.Unlock()
	if _, held := listeners[name]; held {
		return false, nil
	}
	ln, err := net.Listen("tcp", lockAddress(name))
	if err == nil {
		listeners[name] = ln
		return true, nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "only one usage") || strings.Contains(msg, "address already in use") {
		return false, nil
	}
	return false, fmt.Errorf("instance lock listen failed: %w", err)
}

func Release(name string) {
	mu.Lock()
	defer mu.Unlock()
	if ln, ok := listeners[name]; ok {
		_ = ln.Close()
		delete(listeners, name)
	}
}
