package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"ELM_PORT", "ELM_BAUD", "ELM_READ_CAP", "ELM_READ_TIMEOUT", "ELM_SCRIPT_DIR", "ELM_DEBUG"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB0", cfg.Port)
	assert.Equal(t, 38400, cfg.Baud)
	assert.Equal(t, 100, cfg.ReadCap)
	assert.Equal(t, time.Second, cfg.ReadTimeout)
	assert.Empty(t, cfg.ScriptDir)
	assert.False(t, cfg.Debug)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvFileAndOverride(t *testing.T) {
	for _, k := range []string{"ELM_PORT", "ELM_BAUD", "ELM_READ_TIMEOUT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	envFile := filepath.Join(t.TempDir(), "test.env")
	content := "ELM_PORT=COM5\nELM_BAUD=9600\nELM_READ_TIMEOUT=250ms\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	t.Setenv("ELM_BAUD", "115200")

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "COM5", cfg.Port)
	assert.Equal(t, 115200, cfg.Baud, "process environment wins over the env file")
	assert.Equal(t, 250*time.Millisecond, cfg.ReadTimeout)
}

func TestLoad_BadValue(t *testing.T) {
	t.Setenv("ELM_BAUD", "fast")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Port: "", Baud: 0, ReadCap: -1, ReadTimeout: 0}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
	assert.Contains(t, err.Error(), "baud")
	assert.Contains(t, err.Error(), "read cap")
	assert.Contains(t, err.Error(), "read timeout")
}
