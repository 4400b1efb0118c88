// Package test provides helpers shared by clubterm tests.
package test

import (
	"fmt"
	"net"
	"sync"
)

var (
	used = map[int]struct{}{}
	lock sync.Mutex
)

// RandomPort returns a free TCP port that hasn't been handed out before in
// this process.
func RandomPort() int {
	for {
		l, err := net.Listen("tcp", "localhost:0") //nolint:gosec
		if err != nil {
			panic(fmt.Sprintf("test: listen: %v", err))
		}
		port := l.Addr().(*net.TCPAddr).Port
		_ = l.Close()

		lock.Lock()
		_, taken := used[port]
		used[port] = struct{}{}
		lock.Unlock()
		if !taken {
			return port
		}
	}
}

// ListenAddr returns a localhost address on a random port.
func ListenAddr() string {
	return fmt.Sprintf("localhost:%d", RandomPort())
}
