package accounts

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/mkuznecovs/engdir/internal/common"
)

// Service enforces the identity rules on top of a Repository: the bootstrap
// admin account, the uniqueness invariant across active and pending tables,
// and the promote/remove flows driven by the admin menu.
type Service struct {
	repo          Repository
	adminUsername string
	adminPassword string
}

func NewService(repo Repository, adminUsername, adminPassword string) *Service {
	return &Service{
		repo:          repo,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
	}
}

// AdminUsername returns the well-known administrator username.
func (s *Service) AdminUsername() string {
	return s.adminUsername
}

func (s *Service) checkPassword(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

// Authenticate returns the account role for a valid username/password pair.
// The admin credential is checked first and works even when the credential
// file is missing. Bad credentials yield common.ErrorUnauthorized; a queued
// account yields common.ErrorPendingApproval regardless of the password.
func (s *Service) Authenticate(username, password string) (Role, error) {
	if username == s.adminUsername && s.checkPassword(s.adminPassword, password) {
		return RoleAdmin, nil
	}

	a, err := s.repo.FindActive(username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			pending, perr := s.IsPending(username)
			if perr != nil {
				return 0, perr
			}
			if pending {
				return 0, common.ErrorPendingApproval
			}
			return 0, common.ErrorUnauthorized
		}
		return 0, err
	}

	if !s.checkPassword(a.Password, password) {
		return 0, common.ErrorUnauthorized
	}
	return a.Role, nil
}

// IsPending reports whether username sits in the pending queue.
func (s *Service) IsPending(username string) (bool, error) {
	_, err := s.repo.FindPending(username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Exists reports whether username is taken anywhere: the bootstrap admin,
// the active table or the pending queue.
func (s *Service) Exists(username string) (bool, error) {
	if username == s.adminUsername {
		return true, nil
	}
	if _, err := s.repo.FindActive(username); err == nil {
		return true, nil
	} else if !errors.Is(err, common.ErrorNotFound) {
		return false, err
	}
	return s.IsPending(username)
}

// Register queues a new account for admin approval. The uniqueness check
// re-runs here, immediately before the append; the window between a caller's
// own check and this one is the known unlocked-mutation hazard.
func (s *Service) Register(a Account) error {
	if a.Role != RoleEngineer && a.Role != RoleOrganization {
		return fmt.Errorf("role %d not registrable: %w", a.Role, common.ErrorValidation)
	}
	taken, err := s.Exists(a.Username)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("username %q: %w", a.Username, common.ErrorAlreadyExists)
	}
	return s.repo.AppendPending(a)
}

// ListPending returns the pending queue in append order. A row carrying the
// admin username is skipped defensively; it can never be queued through
// Register.
func (s *Service) ListPending() ([]Account, error) {
	all, err := s.repo.ListPending()
	if err != nil {
		return nil, err
	}
	out := make([]Account, 0, len(all))
	for _, a := range all {
		if a.Username == s.adminUsername {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// ListActive returns active accounts in append order, excluding the admin.
func (s *Service) ListActive() ([]Account, error) {
	all, err := s.repo.ListActive()
	if err != nil {
		return nil, err
	}
	out := make([]Account, 0, len(all))
	for _, a := range all {
		if a.Username == s.adminUsername {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// Promote moves a pending account into the active table: append first, then
// rewrite the queue without it. When the append lands but the rewrite fails
// the account is temporarily in both tables; that state is surfaced as
// common.ErrorPromoteIncomplete instead of being merged silently.
func (s *Service) Promote(a Account) error {
	if err := s.repo.AppendActive(a); err != nil {
		return err
	}
	if _, err := s.repo.RemovePending(a.Username); err != nil {
		return fmt.Errorf("%w: account %q is active but still queued: %v",
			common.ErrorPromoteIncomplete, a.Username, err)
	}
	return nil
}

// Remove deletes an active account and returns the removed record so the
// caller can cascade to the matching profile store. The admin account cannot
// be removed.
func (s *Service) Remove(username string) (Account, error) {
	if username == s.adminUsername {
		return Account{}, fmt.Errorf("admin account: %w", common.ErrorValidation)
	}
	a, err := s.repo.FindActive(username)
	if err != nil {
		return Account{}, err
	}
	if _, err := s.repo.RemoveActive(username); err != nil {
		return Account{}, err
	}
	return a, nil
}

// EnsureAdmin injects the bootstrap admin record into the active table when
// it is not already present.
func (s *Service) EnsureAdmin() error {
	_, err := s.repo.FindActive(s.adminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return s.repo.AppendActive(Account{
		Username: s.adminUsername,
		Password: s.adminPassword,
		Role:     RoleAdmin,
	})
}
