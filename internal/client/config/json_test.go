package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"server_endpoint_addr": "example.com:9000", "dial_timeout_seconds": 10}`), 0o600))

	os.Args = []string{"client", "-config", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "example.com:9000", cfg.ServerEndpointAddr)
	assert.Equal(t, 10*time.Second, cfg.DialTimeout)
}
