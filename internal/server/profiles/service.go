package profiles

import (
	"fmt"
	"strings"

	"github.com/mkuznecovs/engdir/internal/common"
)

// Service validates profile fields before they reach the pipe-delimited
// tables and exposes lookups for the directory listings.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ValidFreeText reports whether s can be stored in a pipe-delimited profile
// row. Spaces are fine here; the pipe and line breaks are not.
func ValidFreeText(s string) bool {
	return !strings.ContainsAny(s, "|\n\r")
}

func (s *Service) SaveEngineer(e Engineer) error {
	if e.Experience < 0 || e.Experience > MaxExperienceYears {
		return fmt.Errorf("experience %d out of range: %w", e.Experience, common.ErrorValidation)
	}
	if e.Education < 0 {
		return fmt.Errorf("education %d out of range: %w", e.Education, common.ErrorValidation)
	}
	for _, field := range []string{e.Specialization, e.Skills} {
		if !ValidFreeText(field) {
			return fmt.Errorf("field %q contains forbidden characters: %w", field, common.ErrorValidation)
		}
	}
	return s.repo.AppendEngineer(e)
}

func (s *Service) SaveOrganization(o Organization) error {
	for _, field := range []string{o.Name, o.Industry, o.Description} {
		if !ValidFreeText(field) {
			return fmt.Errorf("field %q contains forbidden characters: %w", field, common.ErrorValidation)
		}
	}
	return s.repo.AppendOrganization(o)
}

func (s *Service) GetEngineer(username string) (Engineer, error) {
	return s.repo.GetEngineer(username)
}

func (s *Service) GetOrganization(username string) (Organization, error) {
	return s.repo.GetOrganization(username)
}

func (s *Service) ListEngineers() ([]Engineer, error) {
	return s.repo.ListEngineers()
}

func (s *Service) ListOrganizations() ([]Organization, error) {
	return s.repo.ListOrganizations()
}

// RemoveEngineer deletes the profile row for username. Returns
// common.ErrorNotFound when no row was dropped.
func (s *Service) RemoveEngineer(username string) error {
	n, err := s.repo.RemoveEngineer(username)
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// RemoveOrganization deletes the profile row for username. Returns
// common.ErrorNotFound when no row was dropped.
func (s *Service) RemoveOrganization(username string) error {
	n, err := s.repo.RemoveOrganization(username)
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
