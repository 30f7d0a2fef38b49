package transport

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"
)

type tcpConn struct {
	conn    net.Conn
	timeout time.Duration
}

func dialTCP(addr string, timeout time.Duration) (*tcpConn, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &tcpConn{conn: conn, timeout: timeout}, nil
}

func (c *tcpConn) Write(p []byte) (int, error) {
	return c.conn.Write(p)
}

// Flush is a no-op; writes on a TCP socket are not buffered locally.
func (c *tcpConn) Flush() error { return nil }

func (c *tcpConn) Read(max int) ([]byte, error) {
	return collect(max, c.timeout, func(p []byte, deadline time.Time) (int, error) {
		if err := c.conn.SetReadDeadline(deadline); err != nil {
			return 0, err
		}
		n, err := c.conn.Read(p)
		if err != nil && errors.Is(err, os.ErrDeadlineExceeded) {
			return n, nil
		}
		return n, err
	})
}

func (c *tcpConn) Close() error {
	return c.conn.Close()
}
