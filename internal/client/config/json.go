package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mkuznecovs/engdir/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. The dial timeout is expressed in whole seconds. After unmarshalling,
// non-zero fields are copied into the runtime Config struct.
type JsonConfig struct {
	ServerEndpointAddr string `json:"server_endpoint_addr"`
	DialTimeoutSeconds int    `json:"dial_timeout_seconds"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path is taken from the -c or -config command-line flags; when
// neither is set, no JSON file is loaded. Fields absent from the file keep
// their current values. If the file cannot be read or contains invalid
// JSON, the function panics.
func parseJson(cfg *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = c.ServerEndpointAddr
	}
	if c.DialTimeoutSeconds > 0 {
		cfg.DialTimeout = time.Duration(c.DialTimeoutSeconds) * time.Second
	}
}
