package profiles

import (
	"path/filepath"
	"strconv"

	"github.com/mkuznecovs/engdir/internal/server/store"
)

const (
	engineersFileName     = "engineers.txt"
	organizationsFileName = "organizations.txt"
)

// FileRepository keeps profiles in two pipe-delimited flat files under a
// data directory.
type FileRepository struct {
	engineers     *store.Table
	organizations *store.Table
}

var _ Repository = (*FileRepository)(nil)

func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{
		engineers:     store.NewTable(filepath.Join(dir, engineersFileName), "|"),
		organizations: store.NewTable(filepath.Join(dir, organizationsFileName), "|"),
	}
}

func (r *FileRepository) EnsureFiles() error {
	if err := r.engineers.EnsureExists(); err != nil {
		return err
	}
	return r.organizations.EnsureExists()
}

func parseEngineer(fields []string) (Engineer, bool) {
	if len(fields) != 5 {
		return Engineer{}, false
	}
	exp, err := strconv.Atoi(fields[2])
	if err != nil || exp < 0 {
		return Engineer{}, false
	}
	edu, err := strconv.Atoi(fields[3])
	if err != nil || edu < 0 {
		return Engineer{}, false
	}
	return Engineer{
		Username:       fields[0],
		Specialization: fields[1],
		Experience:     exp,
		Education:      edu,
		Skills:         fields[4],
	}, true
}

func parseOrganization(fields []string) (Organization, bool) {
	if len(fields) != 4 {
		return Organization{}, false
	}
	return Organization{
		Username:    fields[0],
		Name:        fields[1],
		Industry:    fields[2],
		Description: fields[3],
	}, true
}

func (r *FileRepository) GetEngineer(username string) (Engineer, error) {
	fields, err := r.engineers.FindFirst(func(f []string) bool {
		e, ok := parseEngineer(f)
		return ok && e.Username == username
	})
	if err != nil {
		return Engineer{}, err
	}
	e, _ := parseEngineer(fields)
	return e, nil
}

func (r *FileRepository) ListEngineers() ([]Engineer, error) {
	var out []Engineer
	err := r.engineers.Scan(func(rec store.Record) bool {
		if e, ok := parseEngineer(rec.Fields); ok {
			out = append(out, e)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FileRepository) AppendEngineer(e Engineer) error {
	return r.engineers.Append(
		e.Username,
		e.Specialization,
		strconv.Itoa(e.Experience),
		strconv.Itoa(e.Education),
		e.Skills,
	)
}

func (r *FileRepository) RemoveEngineer(username string) (int, error) {
	return r.engineers.ReplaceAll(func(f []string) bool {
		return len(f) == 0 || f[0] != username
	})
}

func (r *FileRepository) GetOrganization(username string) (Organization, error) {
	fields, err := r.organizations.FindFirst(func(f []string) bool {
		o, ok := parseOrganization(f)
		return ok && o.Username == username
	})
	if err != nil {
		return Organization{}, err
	}
	o, _ := parseOrganization(fields)
	return o, nil
}

func (r *FileRepository) ListOrganizations() ([]Organization, error) {
	var out []Organization
	err := r.organizations.Scan(func(rec store.Record) bool {
		if o, ok := parseOrganization(rec.Fields); ok {
			out = append(out, o)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FileRepository) AppendOrganization(o Organization) error {
	return r.organizations.Append(o.Username, o.Name, o.Industry, o.Description)
}

func (r *FileRepository) RemoveOrganization(username string) (int, error) {
	return r.organizations.ReplaceAll(func(f []string) bool {
		return len(f) == 0 || f[0] != username
	})
}
