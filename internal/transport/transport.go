package transport

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/chuanjin/elmlink/internal/logger"
	"go.uber.org/zap"
)

// TCPScheme selects a network adapter instead of a serial device,
// e.g. tcp://192.168.0.10:35000.
const TCPScheme = "tcp://"

// Prompt is printed by the adapter when it is ready for the next request.
const Prompt = '>'

// Config is consumed by Open. Port and baud rate are passed through to the
// driver as given.
type Config struct {
	Port        string
	Baud        int
	ReadTimeout time.Duration
}

// Conn is an open byte stream to an ELM327 adapter.
type Conn interface {
	Write(p []byte) (int, error)
	// Flush blocks until written bytes have left the local buffers.
	Flush() error
	// Read returns up to max bytes received within the read window. Running
	// out of time is not an error.
	Read(max int) ([]byte, error)
	Close() error
}

// Open connects to the adapter described by cfg.
func Open(cfg Config) (Conn, error) {
	if cfg.Port == "" {
		return nil, fmt.Errorf("open: empty port")
	}
	if cfg.ReadTimeout <= 0 {
		return nil, fmt.Errorf("open %s: read timeout must be positive", cfg.Port)
	}

	log := logger.Named("transport")
	if addr, ok := strings.CutPrefix(cfg.Port, TCPScheme); ok {
		c, err := dialTCP(addr, cfg.ReadTimeout)
		if err != nil {
			return nil, err
		}
		log.Info("Connected to network adapter", zap.String("address", addr))
		return c, nil
	}

	c, err := openSerial(cfg.Port, cfg.Baud, cfg.ReadTimeout)
	if err != nil {
		return nil, err
	}
	log.Info("Opened serial port", zap.String("port", cfg.Port), zap.Int("baud", cfg.Baud))
	return c, nil
}

// chunkReader reads whatever arrives before deadline into p. A timeout
// is reported as (0, nil).
type chunkReader func(p []byte, deadline time.Time) (int, error)

// collect accumulates chunks until max bytes, the prompt, or the deadline.
func collect(max int, timeout time.Duration, read chunkReader) ([]byte, error) {
	if max <= 0 {
		return nil, nil
	}

	deadline := time.Now().Add(timeout)
	buf := make([]byte, 0, max)
	chunk := make([]byte, max)

	for len(buf) < max && time.Now().Before(deadline) {
		n, err := read(chunk[:max-len(buf)], deadline)
		if err != nil {
			return buf, err
		}
		if n == 0 {
			break
		}
		buf = append(buf, chunk[:n]...)
		if bytes.IndexByte(chunk[:n], Prompt) >= 0 {
			break
		}
	}
	return buf, nil
}
