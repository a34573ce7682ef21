package session

import (
	"context"
	"errors"
	"strconv"

	"github.com/mkuznecovs/engdir/internal/common"
	"github.com/mkuznecovs/engdir/internal/server/accounts"
	"github.com/mkuznecovs/engdir/internal/server/profiles"
)

// register collects username, password, role and the role-specific profile,
// then queues the account for admin approval. Validation failures abort back
// to the login menu; only a lost connection returns an error.
func (s *Session) register(ctx context.Context) error {
	s.send(ctx, "Enter new username: ")
	username, err := s.readLine()
	if err != nil {
		return err
	}
	if username == "" || len(username) > common.MaxFieldLength {
		s.send(ctx, "Error: invalid username (empty or too long).\n")
		return nil
	}
	// Both charsets gate registration fields: the prompt-safe set and the
	// record-safe set; input must pass the union.
	if !common.SafeForPrompt(username) || !common.SafeForRecord(username) {
		s.send(ctx, "Error: username contains invalid characters.\n")
		return nil
	}

	pending, perr := s.accounts.IsPending(username)
	if perr != nil {
		s.logger.Error(ctx, "pending check failed", "user", username, "error", perr.Error())
		s.send(ctx, msgOperationErr)
		return nil
	}
	if pending {
		s.send(ctx, "Username already pending approval. Please choose another one.\n")
		return nil
	}
	taken, eerr := s.accounts.Exists(username)
	if eerr != nil {
		s.logger.Error(ctx, "uniqueness check failed", "user", username, "error", eerr.Error())
		s.send(ctx, msgOperationErr)
		return nil
	}
	if taken {
		s.send(ctx, "Username already exists. Please choose another one.\n")
		return nil
	}

	s.send(ctx, "Enter new password: ")
	password, err := s.readLine()
	if err != nil {
		return err
	}
	if len(password) < common.MinPasswordLength || len(password) > common.MaxFieldLength {
		s.sendf(ctx, "Error: invalid password (minimum %d characters, maximum %d).\n",
			common.MinPasswordLength, common.MaxFieldLength)
		return nil
	}
	if !common.SafeForPrompt(password) || !common.SafeForRecord(password) {
		s.send(ctx, "Error: password contains invalid characters.\n")
		return nil
	}

	s.send(ctx, "Select user type:\n1. Engineer\n2. Organization\nEnter your choice: ")
	choice, err := s.readLine()
	if err != nil {
		return err
	}
	if choice != "1" && choice != "2" {
		s.send(ctx, "Invalid user type. Registration failed.\n")
		return nil
	}
	role := accounts.Role(choice[0] - '0')

	rerr := s.accounts.Register(accounts.Account{Username: username, Password: password, Role: role})
	if rerr != nil {
		if errors.Is(rerr, common.ErrorAlreadyExists) {
			s.send(ctx, "Username already exists. Please choose another one.\n")
			return nil
		}
		s.logger.Error(ctx, "registration failed", "user", username, "error", rerr.Error())
		s.send(ctx, "Error in registration. Please try again later.\n")
		return nil
	}
	s.logger.Info(ctx, "registration queued", "user", username, "role", role.String())

	// Profile fields are collected now, while the account is still pending;
	// the profile row exists before approval.
	switch role {
	case accounts.RoleEngineer:
		s.send(ctx, "Complete your engineer profile:\n")
		if err := s.collectEngineerProfile(ctx, username); err != nil {
			return err
		}
	case accounts.RoleOrganization:
		s.send(ctx, "Complete your organization profile:\n")
		if err := s.collectOrganizationProfile(ctx, username); err != nil {
			return err
		}
	}

	s.send(ctx, "\nYour registration is pending approval by an administrator.\n"+
		"You will be able to login once your account is approved.\n")
	return nil
}

// promptFreeText re-prompts until the input fits a pipe-delimited record
// field. Rejected, not escaped.
func (s *Session) promptFreeText(ctx context.Context, prompt string) (string, error) {
	for {
		s.send(ctx, prompt)
		line, err := s.readLine()
		if err != nil {
			return "", err
		}
		if !profiles.ValidFreeText(line) {
			s.send(ctx, "Invalid input. The | character is not allowed.\n")
			continue
		}
		return line, nil
	}
}

// promptYears re-prompts until the input is a plain non-negative number not
// exceeding max (no cap when max is 0).
func (s *Session) promptYears(ctx context.Context, prompt, retryMsg string, max int) (int, error) {
	for {
		s.send(ctx, prompt)
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}
		if !common.IsDigits(line) {
			s.send(ctx, retryMsg)
			continue
		}
		years, cerr := strconv.Atoi(line)
		if cerr != nil {
			s.send(ctx, retryMsg)
			continue
		}
		if max > 0 && years > max {
			s.send(ctx, "Too many years of experience. Try again.\n")
			continue
		}
		return years, nil
	}
}

func (s *Session) collectEngineerProfile(ctx context.Context, username string) error {
	specialization, err := s.promptFreeText(ctx, "Enter your specialization: ")
	if err != nil {
		return err
	}
	experience, err := s.promptYears(ctx, "Enter your years of experience: ",
		"Invalid input. Enter a number.\n", profiles.MaxExperienceYears)
	if err != nil {
		return err
	}
	education, err := s.promptYears(ctx, "Enter your education (in years): ",
		"Education not in years. Try again.\n", 0)
	if err != nil {
		return err
	}
	skills, err := s.promptFreeText(ctx, "Enter your skills (comma separated): ")
	if err != nil {
		return err
	}

	serr := s.profiles.SaveEngineer(profiles.Engineer{
		Username:       username,
		Specialization: specialization,
		Experience:     experience,
		Education:      education,
		Skills:         skills,
	})
	if serr != nil {
		s.logger.Error(ctx, "engineer profile save failed", "user", username, "error", serr.Error())
		s.send(ctx, "Error saving engineer profile!\n")
		return nil
	}
	s.send(ctx, "Engineer profile created successfully!\n")
	return nil
}

func (s *Session) collectOrganizationProfile(ctx context.Context, username string) error {
	name, err := s.promptFreeText(ctx, "Enter organization name: ")
	if err != nil {
		return err
	}
	industry, err := s.promptFreeText(ctx, "Enter industry: ")
	if err != nil {
		return err
	}
	description, err := s.promptFreeText(ctx, "Enter description: ")
	if err != nil {
		return err
	}

	serr := s.profiles.SaveOrganization(profiles.Organization{
		Username:    username,
		Name:        name,
		Industry:    industry,
		Description: description,
	})
	if serr != nil {
		s.logger.Error(ctx, "organization profile save failed", "user", username, "error", serr.Error())
		s.send(ctx, "Error saving organization profile!\n")
		return nil
	}
	s.send(ctx, "Organization profile created successfully!\n")
	return nil
}
