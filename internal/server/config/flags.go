package config

import (
	"flag"
	"os"

	"github.com/mkuznecovs/engdir/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   TCP bind address (e.g., ":9000")
//	-d string   data directory for the record stores
//	-u string   administrator username
//	-p string   administrator password
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-u", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Address, "a", config.Address, "address and port to run server")
	fs.StringVar(&config.DataDir, "d", config.DataDir, "data directory")
	fs.StringVar(&config.AdminUsername, "u", config.AdminUsername, "administrator username")
	fs.StringVar(&config.AdminPassword, "p", config.AdminPassword, "administrator password")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
