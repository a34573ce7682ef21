// Package session implements the per-connection protocol state machine:
// login menu -> authentication -> role menu -> closed. A Session owns one
// line-oriented channel and drives every exchange on it; the listener only
// supplies the channel and closes it when Run returns.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mkuznecovs/engdir/internal/common"
	"github.com/mkuznecovs/engdir/internal/logging"
	"github.com/mkuznecovs/engdir/internal/server/accounts"
	"github.com/mkuznecovs/engdir/internal/server/presence"
	"github.com/mkuznecovs/engdir/internal/server/profiles"
)

const (
	msgInvalidChoice = "Invalid choice. Please try again.\n"
	msgOperationErr  = "Operation failed. Please try again later.\n"
)

// Session is the per-connection state. It is created on accept and discarded
// when the connection closes; nothing in it outlives the connection.
type Session struct {
	rw      io.ReadWriter
	scanner *bufio.Scanner

	accounts *accounts.Service
	profiles *profiles.Service
	presence *presence.Registry
	logger   logging.Logger

	username string
	role     accounts.Role
}

func New(rw io.ReadWriter, acc *accounts.Service, prof *profiles.Service, pres *presence.Registry, logger logging.Logger) *Session {
	return &Session{
		rw:       rw,
		scanner:  bufio.NewScanner(rw),
		accounts: acc,
		profiles: prof,
		presence: pres,
		logger:   logger,
	}
}

// readLine receives one line, tolerating a trailing \r. Any read failure,
// including a plain close, ends the session; the caller propagates the error
// up to Run.
func (s *Session) readLine() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(s.scanner.Text(), "\r"), nil
}

func (s *Session) send(ctx context.Context, text string) {
	if _, err := io.WriteString(s.rw, text); err != nil {
		// the next read will fail and terminate the session
		s.logger.Warn(ctx, "send failed", "error", err.Error())
	}
}

func (s *Session) sendf(ctx context.Context, format string, args ...any) {
	s.send(ctx, fmt.Sprintf(format, args...))
}

// Run drives the login menu until the client exits, disconnects, or logs
// out of an authenticated menu.
func (s *Session) Run(ctx context.Context) {
	defer func() {
		if s.username != "" {
			s.presence.SetOffline(s.username)
		}
	}()

	for {
		if ctx.Err() != nil {
			return
		}

		s.send(ctx, "\n===== Welcome to Engineering Platform =====\n"+
			"1. Login\n"+
			"2. Register\n"+
			"3. Exit\n"+
			"=======================================\n"+
			"Enter your choice: ")

		line, err := s.readLine()
		if err != nil {
			s.logger.Debug(ctx, "client disconnected", "error", err.Error())
			return
		}

		switch common.ParseChoice(line) {
		case 1:
			done, err := s.login(ctx)
			if err != nil {
				s.logger.Debug(ctx, "client disconnected", "error", err.Error())
				return
			}
			if done {
				return
			}
		case 2:
			if err := s.register(ctx); err != nil {
				s.logger.Debug(ctx, "client disconnected", "error", err.Error())
				return
			}
		case 3:
			s.send(ctx, "Goodbye!\n")
			return
		default:
			s.send(ctx, "Invalid choice! Please try again.\n")
		}
	}
}

// login runs the authentication exchange. done is true when the client was
// authenticated and has since logged out, i.e. the session is over. A false
// done with nil err returns the client to the login menu.
func (s *Session) login(ctx context.Context) (done bool, err error) {
	s.send(ctx, "Enter username: ")
	username, err := s.readLine()
	if err != nil {
		return false, err
	}
	if username == "" || len(username) > common.MaxFieldLength {
		s.send(ctx, "Error: invalid username (empty or too long).\n")
		return false, nil
	}
	if !common.SafeForPrompt(username) {
		s.send(ctx, "Error: username contains invalid characters. Please try again.\n")
		return false, nil
	}

	// Pending accounts are reported before any password exchange.
	pending, perr := s.accounts.IsPending(username)
	if perr != nil {
		s.logger.Error(ctx, "pending check failed", "user", username, "error", perr.Error())
		s.send(ctx, msgOperationErr)
		return false, nil
	}
	if pending {
		s.send(ctx, "Your account is pending approval by an administrator.\n")
		return false, nil
	}

	s.send(ctx, "Enter password: ")
	password, err := s.readLine()
	if err != nil {
		return false, err
	}
	if password == "" || len(password) > common.MaxFieldLength {
		s.send(ctx, "Error: invalid password (empty or too long).\n")
		return false, nil
	}
	if !common.SafeForPrompt(password) {
		s.send(ctx, "Error: password contains invalid characters.\n")
		return false, nil
	}

	role, aerr := s.accounts.Authenticate(username, password)
	if aerr != nil {
		if errors.Is(aerr, common.ErrorUnauthorized) {
			s.send(ctx, "Invalid username or password. Please try again.\n")
			return false, nil
		}
		if errors.Is(aerr, common.ErrorPendingApproval) {
			s.send(ctx, "Your account is pending approval by an administrator.\n")
			return false, nil
		}
		s.logger.Error(ctx, "authentication failed", "user", username, "error", aerr.Error())
		s.send(ctx, msgOperationErr)
		return false, nil
	}

	s.username = username
	s.role = role
	s.presence.SetOnline(username, role)
	s.logger.Info(ctx, "login", "user", username, "role", role.String())
	s.sendf(ctx, "Login successful! Welcome, %s!\n", username)

	if role == accounts.RoleAdmin {
		err = s.adminMenu(ctx)
	} else {
		err = s.mainMenu(ctx)
	}
	return true, err
}

// logout clears presence and reports; the caller unwinds to Run, which
// returns so the listener closes the connection.
func (s *Session) logout(ctx context.Context) {
	s.send(ctx, "Logging out...\n")
	s.presence.SetOffline(s.username)
	s.logger.Info(ctx, "logout", "user", s.username)
}
