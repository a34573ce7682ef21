package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkuznecovs/engdir/internal/common"
)

func newTestTable(t *testing.T, delim string) *Table {
	t.Helper()
	return NewTable(filepath.Join(t.TempDir(), "table.txt"), delim)
}

func TestAppendScanRoundTrip(t *testing.T) {
	tbl := newTestTable(t, " ")

	require.NoError(t, tbl.Append("alice", "pass1", "1"))
	require.NoError(t, tbl.Append("bob", "pass2", "2"))

	var got [][]string
	require.NoError(t, tbl.Scan(func(rec Record) bool {
		got = append(got, rec.Fields)
		return true
	}))

	require.Len(t, got, 2)
	assert.Equal(t, []string{"alice", "pass1", "1"}, got[0])
	assert.Equal(t, []string{"bob", "pass2", "2"}, got[1])
}

func TestScanMissingFileIsEmpty(t *testing.T) {
	tbl := newTestTable(t, " ")

	calls := 0
	require.NoError(t, tbl.Scan(func(Record) bool {
		calls++
		return true
	}))
	assert.Zero(t, calls)
}

func TestAppendRejectsDelimiterInField(t *testing.T) {
	tests := []struct {
		name  string
		delim string
		field string
	}{
		{"space in space table", " ", "two words"},
		{"pipe in pipe table", "|", "a|b"},
		{"newline", "|", "a\nb"},
		{"carriage return", " ", "a\rb"},
		{"tab in space table", " ", "al\tice"},
		{"vertical tab in space table", " ", "al\vice"},
		{"form feed in space table", " ", "al\fice"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tbl := newTestTable(t, tc.delim)
			err := tbl.Append("u", tc.field)
			require.ErrorIs(t, err, common.ErrorValidation)

			// nothing may be written on rejection
			_, statErr := os.Stat(tbl.Path())
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestSpaceTableFieldsSurviveRereading(t *testing.T) {
	// a space table splits on whitespace runs, so a field that carries any
	// whitespace would come back as extra fields; Append must refuse it
	tbl := newTestTable(t, " ")
	require.ErrorIs(t, tbl.Append("al\tice", "pass1", "1"), common.ErrorValidation)

	require.NoError(t, tbl.Append("alice", "pass1", "1"))
	var got [][]string
	require.NoError(t, tbl.Scan(func(rec Record) bool {
		got = append(got, rec.Fields)
		return true
	}))
	require.Len(t, got, 1)
	assert.Len(t, got[0], 3)
}

func TestPipeDelimiterAllowsTabs(t *testing.T) {
	// only the pipe and line breaks are delimiters in a pipe table
	tbl := newTestTable(t, "|")
	require.NoError(t, tbl.Append("acme", "Acme\tCorp"))

	fields, err := tbl.FindFirst(func(f []string) bool { return f[0] == "acme" })
	require.NoError(t, err)
	assert.Equal(t, []string{"acme", "Acme\tCorp"}, fields)
}

func TestPipeDelimiterAllowsSpaces(t *testing.T) {
	tbl := newTestTable(t, "|")
	require.NoError(t, tbl.Append("acme", "Acme Corp", "heavy industry", "we make anvils"))

	fields, err := tbl.FindFirst(func(f []string) bool { return f[0] == "acme" })
	require.NoError(t, err)
	assert.Equal(t, []string{"acme", "Acme Corp", "heavy industry", "we make anvils"}, fields)
}

func TestFindFirstNotFound(t *testing.T) {
	tbl := newTestTable(t, " ")
	require.NoError(t, tbl.Append("alice", "pass1", "1"))

	_, err := tbl.FindFirst(func(f []string) bool { return f[0] == "bob" })
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestReplaceAllDropsMatching(t *testing.T) {
	tbl := newTestTable(t, " ")
	require.NoError(t, tbl.Append("alice", "pass1", "1"))
	require.NoError(t, tbl.Append("bob", "pass2", "2"))
	require.NoError(t, tbl.Append("carol", "pass3", "1"))

	dropped, err := tbl.ReplaceAll(func(f []string) bool { return f[0] != "bob" })
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)

	data, err := os.ReadFile(tbl.Path())
	require.NoError(t, err)
	assert.Equal(t, "alice pass1 1\ncarol pass3 1\n", string(data))
}

func TestReplaceAllLeavesNoTempFiles(t *testing.T) {
	tbl := newTestTable(t, " ")
	require.NoError(t, tbl.Append("alice", "pass1", "1"))

	_, err := tbl.ReplaceAll(func([]string) bool { return true })
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(tbl.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(tbl.Path()), entries[0].Name())
}

func TestReplaceAllPreservesFileMode(t *testing.T) {
	tbl := newTestTable(t, " ")
	require.NoError(t, tbl.Append("alice", "pass1", "1"))
	require.NoError(t, os.Chmod(tbl.Path(), 0o640))

	_, err := tbl.ReplaceAll(func([]string) bool { return true })
	require.NoError(t, err)

	info, err := os.Stat(tbl.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestReplaceAllOnMissingFileCreatesEmpty(t *testing.T) {
	tbl := newTestTable(t, " ")

	dropped, err := tbl.ReplaceAll(func([]string) bool { return true })
	require.NoError(t, err)
	assert.Zero(t, dropped)

	data, err := os.ReadFile(tbl.Path())
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestScanSkipsBlankLinesAndStripsCR(t *testing.T) {
	tbl := newTestTable(t, " ")
	require.NoError(t, os.WriteFile(tbl.Path(), []byte("alice pass1 1\r\n\nbob pass2 2\n"), 0o660))

	var users []string
	require.NoError(t, tbl.Scan(func(rec Record) bool {
		users = append(users, rec.Fields[0])
		assert.False(t, strings.Contains(rec.Line, "\r"))
		return true
	}))
	assert.Equal(t, []string{"alice", "bob"}, users)
}

func TestEnsureExists(t *testing.T) {
	tbl := newTestTable(t, " ")
	require.NoError(t, tbl.EnsureExists())

	info, err := os.Stat(tbl.Path())
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	// must not truncate existing data
	require.NoError(t, tbl.Append("alice", "pass1", "1"))
	require.NoError(t, tbl.EnsureExists())
	data, err := os.ReadFile(tbl.Path())
	require.NoError(t, err)
	assert.Equal(t, "alice pass1 1\n", string(data))
}
