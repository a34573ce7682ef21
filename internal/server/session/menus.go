package session

import (
	"context"
	"errors"
	"strings"

	"github.com/mkuznecovs/engdir/internal/common"
	"github.com/mkuznecovs/engdir/internal/server/accounts"
)

// mainMenu is the authenticated loop for engineers and organizations. It
// returns on logout (nil) or on a lost connection.
func (s *Session) mainMenu(ctx context.Context) error {
	for {
		var directoryItem string
		if s.role == accounts.RoleEngineer {
			directoryItem = "2. List Organizations\n"
		} else {
			directoryItem = "2. List Engineers\n"
		}

		s.send(ctx, "\n===== Main Menu =====\n"+
			"1. View Profile\n"+
			directoryItem+
			"3. Start Conversation\n"+
			"4. View Conversations\n"+
			"5. Block/Unblock Users\n"+
			"6. Logout\n"+
			"Enter your choice: ")

		line, err := s.readLine()
		if err != nil {
			return err
		}

		switch common.ParseChoice(line) {
		case 1:
			s.viewProfile(ctx)
		case 2:
			if s.role == accounts.RoleEngineer {
				s.listOrganizations(ctx)
			} else {
				s.listEngineers(ctx)
			}
		case 3:
			s.send(ctx, "Start conversation functionality not yet implemented.\n")
		case 4:
			s.send(ctx, "View conversations functionality not yet implemented.\n")
		case 5:
			s.send(ctx, "Block/Unblock users functionality not yet implemented.\n")
		case 6:
			s.logout(ctx)
			return nil
		default:
			s.send(ctx, msgInvalidChoice)
		}
	}
}

// viewProfile prints the logged-in user's own profile.
func (s *Session) viewProfile(ctx context.Context) {
	var b strings.Builder
	b.WriteString("\n===== Profile Information =====\n")
	b.WriteString("Username: " + s.username + "\n")
	b.WriteString("User Type: " + s.role.String() + "\n")

	switch s.role {
	case accounts.RoleEngineer:
		e, err := s.profiles.GetEngineer(s.username)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				b.WriteString("No additional profile information found.\n")
				break
			}
			s.logger.Error(ctx, "profile lookup failed", "user", s.username, "error", err.Error())
			s.send(ctx, "Error retrieving profile information!\n")
			return
		}
		appendEngineerDetails(&b, e.Specialization, e.Experience, e.Education, e.Skills)
	case accounts.RoleOrganization:
		o, err := s.profiles.GetOrganization(s.username)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				b.WriteString("No additional profile information found.\n")
				break
			}
			s.logger.Error(ctx, "profile lookup failed", "user", s.username, "error", err.Error())
			s.send(ctx, "Error retrieving profile information!\n")
			return
		}
		appendOrganizationDetails(&b, o.Name, o.Industry, o.Description)
	}

	s.send(ctx, b.String())
}

// listEngineers prints the engineer directory annotated with presence.
func (s *Session) listEngineers(ctx context.Context) {
	list, err := s.profiles.ListEngineers()
	if err != nil {
		s.logger.Error(ctx, "engineer listing failed", "error", err.Error())
		s.send(ctx, msgOperationErr)
		return
	}
	if len(list) == 0 {
		s.send(ctx, "No engineers found in the system.\n")
		return
	}

	var b strings.Builder
	b.WriteString("\n===== Available Engineers =====\n")
	for i, e := range list {
		appendListRow(&b, i+1, e.Username, e.Specialization, e.Experience, s.presence.Online(e.Username))
	}
	s.send(ctx, b.String())
}

// listOrganizations prints the organization directory annotated with
// presence.
func (s *Session) listOrganizations(ctx context.Context) {
	list, err := s.profiles.ListOrganizations()
	if err != nil {
		s.logger.Error(ctx, "organization listing failed", "error", err.Error())
		s.send(ctx, msgOperationErr)
		return
	}
	if len(list) == 0 {
		s.send(ctx, "No organizations found in the system.\n")
		return
	}

	var b strings.Builder
	b.WriteString("\n===== Available Organizations =====\n")
	for i, o := range list {
		appendOrgRow(&b, i+1, o.Name, o.Industry, s.presence.Online(o.Username))
	}
	s.send(ctx, b.String())
}
