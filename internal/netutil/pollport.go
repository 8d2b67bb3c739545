package netutil

import (
	"net"
	"time"
)

// WaitForListener tries to connect to the given address and returns nil
// as soon as it succeeds, or the last dial error if timeout elapses
// first. It lets a caller that starts a listener in a goroutine wait
// until it is ready to accept connections.
func WaitForListener(network, addr string, timeout time.Duration) error {
	start := time.Now()
	var lastErr error
	for time.Since(start) < timeout {
		if lastErr = tryDial(network, addr); lastErr == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	return lastErr
}

func tryDial(network, addr string) error {
	conn, err := net.Dial(network, addr)
	if err == nil {
		err = conn.Close()
	}
	return err
}
