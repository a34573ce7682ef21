// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

// Config holds runtime settings for the directory server.
//
// Fields:
//   - Address: TCP bind address for the text protocol listener.
//   - DataDir: directory holding the flat-file record stores.
//   - AdminUsername / AdminPassword: built-in administrator credentials.
//     The defaults are for development only and should be overridden.
type Config struct {
	Address       string
	DataDir       string
	AdminUsername string
	AdminPassword string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: The admin credentials are insecure for production and should be
// overridden.
func (c *Config) LoadDefaults() {
	c.Address = ":9000"
	c.DataDir = "data"
	c.AdminUsername = "admin"
	c.AdminPassword = "admin"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
