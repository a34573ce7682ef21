// Package tcpserver accepts client connections and hands each one to its
// own session goroutine. The protocol itself lives in the session package;
// this layer only listens, accepts, and closes.
package tcpserver

import (
	"context"
	"errors"
	"net"
	"sync"

	"github.com/google/uuid"

	"github.com/mkuznecovs/engdir/internal/logging"
	"github.com/mkuznecovs/engdir/internal/server/accounts"
	"github.com/mkuznecovs/engdir/internal/server/presence"
	"github.com/mkuznecovs/engdir/internal/server/profiles"
	"github.com/mkuznecovs/engdir/internal/server/session"
)

type TCPServer struct {
	address  string
	logger   logging.Logger
	accounts *accounts.Service
	profiles *profiles.Service
}

func NewTCPServer(a string, l logging.Logger, acc *accounts.Service, prof *profiles.Service) (*TCPServer, error) {
	return &TCPServer{
		address:  a,
		logger:   l.With("module", "tcp_server"),
		accounts: acc,
		profiles: prof,
	}, nil
}

func (s *TCPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping TCP server...")
		listen.Close()
	}()

	s.logger.Info(ctx, "Starting TCP server", "address", listen.Addr().String())

	var wg sync.WaitGroup
	for {
		conn, err := listen.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				break
			}
			s.logger.Warn(ctx, "accept failed", "error", err.Error())
			continue
		}

		wg.Add(1)
		go func(conn net.Conn) {
			defer wg.Done()
			s.handle(ctx, conn)
		}(conn)
	}

	wg.Wait()
	return nil
}

// handle runs one client session to completion and closes the connection.
func (s *TCPServer) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	// Sessions block in reads between menu choices; closing the connection
	// on cancel is what unblocks them so shutdown can drain.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	logger := s.logger.With("session", uuid.NewString(), "remote", conn.RemoteAddr().String())
	logger.Info(ctx, "connection accepted")

	// Presence is scoped to this connection, mirroring a dedicated server
	// process per client.
	reg := presence.NewRegistry()
	session.New(conn, s.accounts, s.profiles, reg, logger).Run(ctx)

	logger.Info(ctx, "connection closed")
}
