package accounts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkuznecovs/engdir/internal/common"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	repo := NewFileRepository(dir)
	require.NoError(t, repo.EnsureFiles())
	return NewService(repo, "admin", "admin"), dir
}

func TestAuthenticateAdminWithoutFiles(t *testing.T) {
	// the admin credential must work even when no store file exists
	svc := NewService(NewFileRepository(t.TempDir()), "admin", "admin")

	role, err := svc.Authenticate("admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)
}

func TestRegisterLeavesAccountPending(t *testing.T) {
	svc, _ := newTestService(t)

	a := Account{Username: "alice", Password: "pass1", Role: RoleEngineer}
	require.NoError(t, svc.Register(a))

	pending, err := svc.IsPending("alice")
	require.NoError(t, err)
	assert.True(t, pending)

	taken, err := svc.Exists("alice")
	require.NoError(t, err)
	assert.True(t, taken)

	// pending accounts cannot authenticate, even with the right password
	_, err = svc.Authenticate("alice", "pass1")
	require.ErrorIs(t, err, common.ErrorPendingApproval)
}

func TestRegisterDuplicateRejected(t *testing.T) {
	svc, _ := newTestService(t)

	a := Account{Username: "alice", Password: "pass1", Role: RoleEngineer}
	require.NoError(t, svc.Register(a))
	require.ErrorIs(t, svc.Register(a), common.ErrorAlreadyExists)

	// also rejected once active
	require.NoError(t, svc.Promote(a))
	require.ErrorIs(t, svc.Register(a), common.ErrorAlreadyExists)
}

func TestRegisterAdminUsernameRejected(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Register(Account{Username: "admin", Password: "pass1", Role: RoleEngineer})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestRegisterAdminRoleRejected(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Register(Account{Username: "eve", Password: "pass1", Role: RoleAdmin})
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestPromote(t *testing.T) {
	svc, _ := newTestService(t)

	a := Account{Username: "alice", Password: "pass1", Role: RoleEngineer}
	require.NoError(t, svc.Register(a))
	require.NoError(t, svc.Promote(a))

	role, err := svc.Authenticate("alice", "pass1")
	require.NoError(t, err)
	assert.Equal(t, RoleEngineer, role)

	pending, err := svc.IsPending("alice")
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestRemove(t *testing.T) {
	svc, _ := newTestService(t)

	a := Account{Username: "acme", Password: "pass1", Role: RoleOrganization}
	require.NoError(t, svc.Register(a))
	require.NoError(t, svc.Promote(a))

	removed, err := svc.Remove("acme")
	require.NoError(t, err)
	assert.Equal(t, RoleOrganization, removed.Role)

	_, err = svc.Authenticate("acme", "pass1")
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = svc.Remove("acme")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRemoveAdminRefused(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Remove("admin")
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Authenticate("ghost", "whatever")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	a := Account{Username: "alice", Password: "pass1", Role: RoleEngineer}
	require.NoError(t, svc.Register(a))
	require.NoError(t, svc.Promote(a))

	_, err := svc.Authenticate("alice", "wrong")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestMalformedLinesAreSkipped(t *testing.T) {
	svc, dir := newTestService(t)

	// two broken rows around one good one
	path := filepath.Join(dir, activeFileName)
	content := "brokenline\nalice pass1 1\nbob pass2 notanumber\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o660))

	role, err := svc.Authenticate("alice", "pass1")
	require.NoError(t, err)
	assert.Equal(t, RoleEngineer, role)

	_, err = svc.Authenticate("bob", "pass2")
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	active, err := svc.ListActive()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "alice", active[0].Username)
}

func TestListPendingOrderAndIdempotence(t *testing.T) {
	svc, _ := newTestService(t)

	for _, u := range []string{"alice", "bob", "carol"} {
		require.NoError(t, svc.Register(Account{Username: u, Password: "pass1", Role: RoleEngineer}))
	}

	first, err := svc.ListPending()
	require.NoError(t, err)
	second, err := svc.ListPending()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first, 3)
	assert.Equal(t, "alice", first[0].Username)
	assert.Equal(t, "bob", first[1].Username)
	assert.Equal(t, "carol", first[2].Username)
}

func TestEnsureAdmin(t *testing.T) {
	svc, dir := newTestService(t)

	require.NoError(t, svc.EnsureAdmin())
	require.NoError(t, svc.EnsureAdmin())

	data, err := os.ReadFile(filepath.Join(dir, activeFileName))
	require.NoError(t, err)
	assert.Equal(t, "admin admin 3\n", string(data))

	// admin never appears in listings
	active, err := svc.ListActive()
	require.NoError(t, err)
	assert.Empty(t, active)
}

// stubRepo lets tests inject failures the file repository cannot produce.
type stubRepo struct {
	FileRepository
	removePendingErr error
}

func (s *stubRepo) RemovePending(username string) (int, error) {
	if s.removePendingErr != nil {
		return 0, s.removePendingErr
	}
	return s.FileRepository.RemovePending(username)
}

func TestPromoteIncompleteSurfaced(t *testing.T) {
	dir := t.TempDir()
	repo := &stubRepo{FileRepository: *NewFileRepository(dir), removePendingErr: errors.New("disk full")}
	require.NoError(t, repo.EnsureFiles())
	svc := NewService(repo, "admin", "admin")

	a := Account{Username: "alice", Password: "pass1", Role: RoleEngineer}
	require.NoError(t, repo.AppendPending(a))

	err := svc.Promote(a)
	require.ErrorIs(t, err, common.ErrorPromoteIncomplete)

	// the active append did land
	role, aerr := svc.Authenticate("alice", "pass1")
	require.NoError(t, aerr)
	assert.Equal(t, RoleEngineer, role)
}
