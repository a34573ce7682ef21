package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"server", "-a", ":7777", "-d", "/var/lib/engdir", "-u", "root", "-p", "s3cret"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":7777", cfg.Address)
	assert.Equal(t, "/var/lib/engdir", cfg.DataDir)
	assert.Equal(t, "root", cfg.AdminUsername)
	assert.Equal(t, "s3cret", cfg.AdminPassword)
}

func TestParseFlagsIgnoresUnknown(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"server", "-z", "whatever", "-a", ":7777"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":7777", cfg.Address)
	assert.Equal(t, "data", cfg.DataDir)
}
