// Package cli implements the interactive terminal client. The server drives
// the whole conversation; the client relays server output to the terminal,
// collects one line of input per prompt, and masks password entry.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"

	"github.com/mkuznecovs/engdir/internal/client/config"
)

type App struct {
	config *config.Config
	in     io.Reader
	out    io.Writer

	// terminal reports whether in is an interactive terminal; only then is
	// password input read without echo.
	terminal bool
}

func NewApp(cfg *config.Config, in io.Reader, out io.Writer, terminal bool) *App {
	return &App{config: cfg, in: in, out: out, terminal: terminal}
}

// Run connects to the server and relays the conversation until either side
// closes the connection.
func (a *App) Run(ctx context.Context) error {
	conn, err := net.DialTimeout("tcp", a.config.ServerEndpointAddr, a.config.DialTimeout)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", a.config.ServerEndpointAddr, err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	fmt.Fprintf(a.out, "Connected to %s\n", a.config.ServerEndpointAddr)
	return a.relay(bufio.NewReader(conn), conn, bufio.NewReader(a.in))
}
