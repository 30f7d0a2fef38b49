package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything needed to reach the adapter.
type Config struct {
	Port        string        `env:"ELM_PORT" envDefault:"/dev/ttyUSB0"`
	Baud        int           `env:"ELM_BAUD" envDefault:"38400"`
	ReadCap     int           `env:"ELM_READ_CAP" envDefault:"100"`
	ReadTimeout time.Duration `env:"ELM_READ_TIMEOUT" envDefault:"1s"`

	// Directory of scripted command decoders, empty to use built-ins only.
	ScriptDir string `env:"ELM_SCRIPT_DIR"`

	Debug bool `env:"ELM_DEBUG" envDefault:"false"`
}

// Load reads the optional env files (".env" when none are given) and then
// the process environment. Variables already set win over file values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return c, nil
}

// Validate rejects values the transport or session cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port must not be empty"))
	}
	if c.Baud <= 0 {
		errs = append(errs, fmt.Errorf("baud rate must be positive, got %d", c.Baud))
	}
	if c.ReadCap <= 0 {
		errs = append(errs, fmt.Errorf("read cap must be positive, got %d", c.ReadCap))
	}
	if c.ReadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("read timeout must be positive, got %s", c.ReadTimeout))
	}
	return errors.Join(errs...)
}
