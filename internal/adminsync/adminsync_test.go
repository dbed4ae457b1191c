package adminsync

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dyno1404/Justredact/internal/adminapi"
)

type fakeRemote struct {
	blockCalls  []struct {
		id    int64
		block bool
	}
	deleteCalls []int64
	verifyCalls []int64
	fail        bool
}

func (f *fakeRemote) Stats(ctx context.Context) (adminapi.Stats, error) {
	if f.fail {
		return adminapi.Stats{}, errors.New("down")
	}
	return adminapi.Stats{Users: 1}, nil
}

func (f *fakeRemote) ListUsers(ctx context.Context) ([]adminapi.User, error) {
	return nil, errors.New("unused")
}

func (f *fakeRemote) BlockUser(ctx context.Context, id int64, block bool) error {
	f.blockCalls = append(f.blockCalls, struct {
		id    int64
		block bool
	}{id, block})
	if f.fail {
		return errors.New("down")
	}
	return nil
}

func (f *fakeRemote) DeleteUser(ctx context.Context, id int64) error {
	f.deleteCalls = append(f.deleteCalls, id)
	if f.fail {
		return errors.New("down")
	}
	return nil
}

func (f *fakeRemote) ListLogs(ctx context.Context) ([]adminapi.LogEntry, error) {
	return nil, errors.New("unused")
}

func (f *fakeRemote) VerifyLog(ctx context.Context, id int64) error {
	f.verifyCalls = append(f.verifyCalls, id)
	if f.fail {
		return errors.New("down")
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUsersFetchFailureInstallsPlaceholder(t *testing.T) {
	m := NewUsers(&fakeRemote{}, testLogger())
	m.ApplyFetch(nil, errors.New("connection refused"))

	require.Len(t, m.All(), 3)
	assert.True(t, m.Degraded())

	u, ok := m.Get(2)
	require.True(t, ok)
	assert.Equal(t, "Anita", u.Name)
	assert.True(t, u.Blocked)
}

func TestToggleBlockIsOptimistic(t *testing.T) {
	remote := &fakeRemote{fail: true}
	m := NewUsers(remote, testLogger())
	m.ApplyFetch(nil, errors.New("connection refused"))

	confirm, ok := m.ToggleBlock(2)
	require.True(t, ok)

	// Flipped locally before the remote call even runs.
	u, _ := m.Get(2)
	assert.False(t, u.Blocked)

	// Remote failure does not roll the mirror back.
	require.Error(t, confirm(context.Background()))
	u, _ = m.Get(2)
	assert.False(t, u.Blocked)

	require.Len(t, remote.blockCalls, 1)
	assert.Equal(t, int64(2), remote.blockCalls[0].id)
	assert.False(t, remote.blockCalls[0].block, "remote receives the new value")
}

func TestDeleteRemovesLocallyAndConfirms(t *testing.T) {
	remote := &fakeRemote{}
	m := NewUsers(remote, testLogger())
	m.ApplyFetch([]adminapi.User{{ID: 7, Name: "Dana"}, {ID: 8, Name: "Lee"}}, nil)

	confirm, ok := m.Delete(7)
	require.True(t, ok)
	require.Len(t, m.All(), 1)
	assert.Equal(t, int64(8), m.All()[0].ID)

	require.NoError(t, confirm(context.Background()))
	assert.Equal(t, []int64{7}, remote.deleteCalls)

	_, ok = m.Delete(7)
	assert.False(t, ok, "already gone")
}

func TestVerifyIsOneWay(t *testing.T) {
	remote := &fakeRemote{}
	m := NewLogs(remote, testLogger())
	m.ApplyFetch(nil, errors.New("connection refused"))

	require.Len(t, m.All(), 2)
	assert.True(t, m.Degraded())

	confirm, ok := m.Verify(1)
	require.True(t, ok)
	assert.Equal(t, StatusVerified, m.All()[0].Status)
	require.NoError(t, confirm(context.Background()))

	// Second verification of the same entry is a state no-op.
	_, ok = m.Verify(1)
	assert.False(t, ok)

	// Entry 2 is already Verified in the placeholder data.
	_, ok = m.Verify(2)
	assert.False(t, ok)

	assert.Equal(t, []int64{1}, remote.verifyCalls)
}

func TestLoadStatsFallback(t *testing.T) {
	st, degraded := LoadStats(context.Background(), &fakeRemote{fail: true}, testLogger())
	assert.True(t, degraded)
	assert.Equal(t, adminapi.Stats{Users: 24, Uploads: 52, RedactedDocs: 41, SharedDocs: 18}, st)

	st, degraded = LoadStats(context.Background(), &fakeRemote{}, testLogger())
	assert.False(t, degraded)
	assert.Equal(t, 1, st.Users)
}
