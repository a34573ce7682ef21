package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/mkuznecovs/engdir/internal/client/cli"
	"github.com/mkuznecovs/engdir/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	terminal := term.IsTerminal(int(os.Stdin.Fd()))
	app := cli.NewApp(cfg, os.Stdin, os.Stdout, terminal)

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
