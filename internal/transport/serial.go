package transport

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

type serialConn struct {
	port    serial.Port
	timeout time.Duration
}

func openSerial(name string, baud int, timeout time.Duration) (*serialConn, error) {
	if baud <= 0 {
		return nil, fmt.Errorf("open %s: invalid baud rate %d", name, baud)
	}

	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	// Stale bytes from a previous session would be read as our reply.
	if err := port.ResetInputBuffer(); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("reset %s: %w", name, err)
	}

	return &serialConn{port: port, timeout: timeout}, nil
}

func (c *serialConn) Write(p []byte) (int, error) {
	return c.port.Write(p)
}

func (c *serialConn) Flush() error {
	return c.port.Drain()
}

func (c *serialConn) Read(max int) ([]byte, error) {
	return collect(max, c.timeout, func(p []byte, deadline time.Time) (int, error) {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, nil
		}
		if err := c.port.SetReadTimeout(remaining); err != nil {
			return 0, err
		}
		return c.port.Read(p)
	})
}

func (c *serialConn) Close() error {
	return c.port.Close()
}
