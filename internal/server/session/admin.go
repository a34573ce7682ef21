package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mkuznecovs/engdir/internal/common"
	"github.com/mkuznecovs/engdir/internal/server/accounts"
)

// adminMenu is the authenticated loop for the administrator.
func (s *Session) adminMenu(ctx context.Context) error {
	for {
		s.send(ctx, "\n===== Admin Menu =====\n"+
			"1. View Engineers\n"+
			"2. View Organizations\n"+
			"3. Accept New Users\n"+
			"4. Delete Users\n"+
			"5. Logout\n"+
			"Enter your choice: ")

		line, err := s.readLine()
		if err != nil {
			return err
		}

		switch common.ParseChoice(line) {
		case 1:
			s.listEngineers(ctx)
		case 2:
			s.listOrganizations(ctx)
		case 3:
			if err := s.acceptPending(ctx); err != nil {
				return err
			}
		case 4:
			if err := s.deleteUser(ctx); err != nil {
				return err
			}
		case 5:
			s.logout(ctx)
			return nil
		default:
			s.send(ctx, msgInvalidChoice)
		}
	}
}

// confirm asks a [Y/N] question; only a leading Y (either case) proceeds.
func (s *Session) confirm(ctx context.Context, prompt string) (bool, error) {
	s.send(ctx, prompt)
	line, err := s.readLine()
	if err != nil {
		return false, err
	}
	return line != "" && (line[0] == 'Y' || line[0] == 'y'), nil
}

// selectIndex prints prompt and reads a 1-based index into a listing of n
// entries. Returns 0 when the admin cancelled or the input was unusable,
// after reporting to the client.
func (s *Session) selectIndex(ctx context.Context, prompt string, n int) (int, error) {
	s.send(ctx, prompt)
	line, err := s.readLine()
	if err != nil {
		return 0, err
	}
	if !common.IsDigits(strings.TrimSpace(line)) {
		s.send(ctx, "Invalid input. Operation cancelled.\n")
		return 0, nil
	}
	sel := common.ParseChoice(line)
	if sel <= 0 || sel > n {
		s.send(ctx, "Operation cancelled or invalid selection.\n")
		return 0, nil
	}
	return sel, nil
}

// acceptPending lists the pending queue and promotes one selected entry.
// The selection indexes into the snapshot listed here; a concurrent queue
// mutation makes the index stale. There is no locking across the exchange.
func (s *Session) acceptPending(ctx context.Context) error {
	pending, err := s.accounts.ListPending()
	if err != nil {
		s.logger.Error(ctx, "pending listing failed", "error", err.Error())
		s.send(ctx, "Error accessing pending users!\n")
		return nil
	}
	if len(pending) == 0 {
		s.send(ctx, "No pending users to approve.\n")
		return nil
	}

	var b strings.Builder
	b.WriteString("\n===== Pending Users =====\n")
	for i, a := range pending {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, a.Username, a.Role)
	}
	s.send(ctx, b.String())

	sel, err := s.selectIndex(ctx, "\nEnter number of user to approve (0 to cancel): ", len(pending))
	if err != nil {
		return err
	}
	if sel == 0 {
		return nil
	}
	candidate := pending[sel-1]

	ok, err := s.confirm(ctx, fmt.Sprintf("Are you sure you want to approve user '%s'? [Y/N]: ", candidate.Username))
	if err != nil {
		return err
	}
	if !ok {
		s.send(ctx, "User approval cancelled.\n")
		return nil
	}

	perr := s.accounts.Promote(candidate)
	if perr != nil {
		if errors.Is(perr, common.ErrorPromoteIncomplete) {
			s.logger.Warn(ctx, "promote incomplete", "user", candidate.Username, "error", perr.Error())
			s.send(ctx, "User approved, but the pending queue could not be updated. "+
				"The entry may appear in the pending list again.\n")
			return nil
		}
		s.logger.Error(ctx, "promote failed", "user", candidate.Username, "error", perr.Error())
		s.send(ctx, "Error approving user. Please try again later.\n")
		return nil
	}

	s.logger.Info(ctx, "user approved", "user", candidate.Username, "role", candidate.Role.String())
	s.send(ctx, "User successfully approved.\n")
	return nil
}

// deleteUser lists active accounts and removes one selected entry, then
// cascades to the matching profile store. A failed cascade leaves the
// profile row behind and says so; it is not rolled back.
func (s *Session) deleteUser(ctx context.Context) error {
	users, err := s.accounts.ListActive()
	if err != nil {
		s.logger.Error(ctx, "user listing failed", "error", err.Error())
		s.send(ctx, "Error opening user database!\n")
		return nil
	}
	if len(users) == 0 {
		s.send(ctx, "No users found to delete.\n")
		return nil
	}

	var b strings.Builder
	b.WriteString("\n===== Users List =====\n")
	for i, a := range users {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, a.Username, a.Role)
	}
	s.send(ctx, b.String())

	sel, err := s.selectIndex(ctx, "Enter number of user to delete (0 to cancel): ", len(users))
	if err != nil {
		return err
	}
	if sel == 0 {
		return nil
	}
	candidate := users[sel-1]

	ok, err := s.confirm(ctx, fmt.Sprintf("Are you sure you want to delete user '%s'? [Y/N]: ", candidate.Username))
	if err != nil {
		return err
	}
	if !ok {
		s.send(ctx, "User deletion cancelled.\n")
		return nil
	}

	removed, rerr := s.accounts.Remove(candidate.Username)
	if rerr != nil {
		if errors.Is(rerr, common.ErrorNotFound) {
			s.send(ctx, "Operation cancelled or invalid selection.\n")
			return nil
		}
		s.logger.Error(ctx, "delete failed", "user", candidate.Username, "error", rerr.Error())
		s.send(ctx, "Error accessing user database!\n")
		return nil
	}

	// Cascade to the profile store selected by the removed record's role.
	var cascadeErr error
	var profileKind string
	switch removed.Role {
	case accounts.RoleEngineer:
		profileKind = "engineer"
		cascadeErr = s.profiles.RemoveEngineer(removed.Username)
	case accounts.RoleOrganization:
		profileKind = "organization"
		cascadeErr = s.profiles.RemoveOrganization(removed.Username)
	}
	if cascadeErr != nil && !errors.Is(cascadeErr, common.ErrorNotFound) {
		s.logger.Error(ctx, "profile cascade failed", "user", removed.Username, "error", cascadeErr.Error())
		s.sendf(ctx, "User deleted, but %s profile remains.\n", profileKind)
		return nil
	}

	s.logger.Info(ctx, "user deleted", "user", removed.Username, "role", removed.Role.String())
	s.send(ctx, "User successfully deleted.\n")
	return nil
}
