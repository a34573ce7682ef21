// Package store implements a flat-file table of delimited, newline-terminated
// records. It is the only persistence layer in engdir: every higher-level
// repository is a specialization of Table.
//
// Writers are serialized per table with a mutex; readers never block and see
// either the pre- or post-image of a rewrite, because ReplaceAll publishes
// the new contents with a single rename.
package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mkuznecovs/engdir/internal/common"
)

// Record is one parsed line of a table: the raw line as stored and its
// delimiter-split fields.
type Record struct {
	Line   string
	Fields []string
}

// Table is a flat file of one record per line. The delimiter is fixed per
// table and must never occur inside a stored field; Append enforces this.
type Table struct {
	path  string
	delim string

	// mu serializes writers. The original design had no locking at all;
	// single-writer per table is a deliberate strengthening. Reads stay
	// lock-free.
	mu sync.Mutex
}

// NewTable returns a table stored at path with the given field delimiter.
// delim must be a single character; a space delimiter splits on any run of
// whitespace, matching the historical file format.
func NewTable(path, delim string) *Table {
	return &Table{path: path, delim: delim}
}

// Path returns the backing file path.
func (t *Table) Path() string {
	return t.path
}

// EnsureExists creates the backing file empty if it is absent.
func (t *Table) EnsureExists() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.OpenFile(t.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o660)
	if err != nil {
		return fmt.Errorf("create table %s: %w", t.path, err)
	}
	return f.Close()
}

func (t *Table) split(line string) []string {
	if t.delim == " " {
		return strings.Fields(line)
	}
	return strings.Split(line, t.delim)
}

// Scan streams records to fn in file order. Empty lines are skipped. A
// missing file reads as an empty table. fn returns false to stop early.
func (t *Table) Scan(fn func(rec Record) bool) error {
	f, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open table %s: %w", t.path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		if !fn(Record{Line: line, Fields: t.split(line)}) {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read table %s: %w", t.path, err)
	}
	return nil
}

// FindFirst returns the fields of the first record matching pred, or
// common.ErrorNotFound.
func (t *Table) FindFirst(pred func(fields []string) bool) ([]string, error) {
	var found []string
	err := t.Scan(func(rec Record) bool {
		if pred(rec.Fields) {
			found = rec.Fields
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, common.ErrorNotFound
	}
	return found, nil
}

// fieldUnsafe reports whether f would split into extra fields when read
// back. Space tables split on any whitespace run, so every whitespace
// character is a delimiter there, not just the literal space.
func (t *Table) fieldUnsafe(f string) bool {
	if t.delim == " " {
		return strings.ContainsAny(f, " \t\v\f\n\r")
	}
	return strings.ContainsAny(f, t.delim+"\n\r")
}

// Append writes one record to the end of the table. Fields may not contain
// the table delimiter, a newline or a carriage return; such input must be
// rejected upstream, so a violation here is a validation error, not data to
// escape.
func (t *Table) Append(fields ...string) error {
	for _, f := range fields {
		if t.fieldUnsafe(f) {
			return fmt.Errorf("field %q contains delimiter or newline: %w", f, common.ErrorValidation)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.OpenFile(t.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o660)
	if err != nil {
		return fmt.Errorf("open table %s: %w", t.path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(strings.Join(fields, t.delim) + "\n"); err != nil {
		return fmt.Errorf("append to table %s: %w", t.path, err)
	}
	return nil
}

// ReplaceAll rewrites the table keeping only records accepted by keep. The
// kept records are streamed into a sibling temp file which is then renamed
// over the original; the rename is the atomicity boundary. Readers that
// opened the file before the rename finish on the old image. Returns the
// number of records dropped.
func (t *Table) ReplaceAll(keep func(fields []string) bool) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(t.path), filepath.Base(t.path)+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("create temp for %s: %w", t.path, err)
	}
	tmpName := tmp.Name()

	// CreateTemp opens at 0600; the rename would otherwise tighten the
	// table's permissions on its first rewrite.
	mode := os.FileMode(0o660)
	if fi, serr := os.Stat(t.path); serr == nil {
		mode = fi.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("chmod temp for %s: %w", t.path, err)
	}

	dropped := 0
	var writeErr error
	err = t.Scan(func(rec Record) bool {
		if !keep(rec.Fields) {
			dropped++
			return true
		}
		if _, werr := tmp.WriteString(rec.Line + "\n"); werr != nil {
			writeErr = werr
			return false
		}
		return true
	})
	if err == nil {
		err = writeErr
	}
	if err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("rewrite table %s: %w", t.path, err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("sync temp for %s: %w", t.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("close temp for %s: %w", t.path, err)
	}

	if err := os.Rename(tmpName, t.path); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("swap table %s: %w", t.path, err)
	}
	return dropped, nil
}
