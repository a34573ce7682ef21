package accounts

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/mkuznecovs/engdir/internal/server/store"
)

const (
	activeFileName  = "credentials.txt"
	pendingFileName = "pending.txt"
)

// FileRepository keeps accounts in two space-delimited flat files under a
// data directory.
type FileRepository struct {
	active  *store.Table
	pending *store.Table
}

var _ Repository = (*FileRepository)(nil)

// NewFileRepository returns a repository backed by credentials.txt and
// pending.txt inside dir.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{
		active:  store.NewTable(filepath.Join(dir, activeFileName), " "),
		pending: store.NewTable(filepath.Join(dir, pendingFileName), " "),
	}
}

func (r *FileRepository) EnsureFiles() error {
	if err := r.active.EnsureExists(); err != nil {
		return err
	}
	return r.pending.EnsureExists()
}

// parseAccount turns a record into an Account. ok is false for rows with the
// wrong field count or a non-numeric role; such rows are skipped, not fatal.
func parseAccount(fields []string) (Account, bool) {
	if len(fields) != 3 {
		return Account{}, false
	}
	role, ok := ParseRole(fields[2])
	if !ok {
		return Account{}, false
	}
	return Account{Username: fields[0], Password: fields[1], Role: role}, true
}

func findIn(t *store.Table, username string) (Account, error) {
	fields, err := t.FindFirst(func(f []string) bool {
		a, ok := parseAccount(f)
		return ok && a.Username == username
	})
	if err != nil {
		return Account{}, err
	}
	a, _ := parseAccount(fields)
	return a, nil
}

func listOf(t *store.Table) ([]Account, error) {
	var out []Account
	err := t.Scan(func(rec store.Record) bool {
		if a, ok := parseAccount(rec.Fields); ok {
			out = append(out, a)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func appendTo(t *store.Table, a Account) error {
	if err := t.Append(a.Username, a.Password, strconv.Itoa(int(a.Role))); err != nil {
		return fmt.Errorf("append account %q: %w", a.Username, err)
	}
	return nil
}

func removeFrom(t *store.Table, username string) (int, error) {
	return t.ReplaceAll(func(f []string) bool {
		// Malformed rows are kept as-is; only a well-formed row with the
		// matching username is dropped.
		a, ok := parseAccount(f)
		return !ok || a.Username != username
	})
}

func (r *FileRepository) FindActive(username string) (Account, error) {
	return findIn(r.active, username)
}

func (r *FileRepository) FindPending(username string) (Account, error) {
	return findIn(r.pending, username)
}

func (r *FileRepository) ListActive() ([]Account, error) {
	return listOf(r.active)
}

func (r *FileRepository) ListPending() ([]Account, error) {
	return listOf(r.pending)
}

func (r *FileRepository) AppendActive(a Account) error {
	return appendTo(r.active, a)
}

func (r *FileRepository) AppendPending(a Account) error {
	return appendTo(r.pending, a)
}

func (r *FileRepository) RemoveActive(username string) (int, error) {
	return removeFrom(r.active, username)
}

func (r *FileRepository) RemovePending(username string) (int, error) {
	return removeFrom(r.pending, username)
}
