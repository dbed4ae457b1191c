package adminsync

import (
	"context"
	"log/slog"

	"github.com/Dyno1404/Justredact/internal/adminapi"
)

// Users mirrors the user collection for the manage-users view.
type Users struct {
	remote   Remote
	log      *slog.Logger
	users    []adminapi.User
	degraded bool
}

func NewUsers(remote Remote, log *slog.Logger) *Users {
	return &Users{remote: remote, log: log}
}

// ApplyFetch installs a fetch outcome. A failed fetch installs the
// placeholder dataset instead of leaving the mirror empty.
func (m *Users) ApplyFetch(list []adminapi.User, err error) {
	if err != nil {
		m.log.Warn("user fetch failed, using placeholder data", "error", err)
		m.users = degradedUsers()
		m.degraded = true
		return
	}
	m.users = list
	m.degraded = false
}

// All returns the current mirror contents.
func (m *Users) All() []adminapi.User { return m.users }

// Degraded reports whether the mirror holds placeholder data.
func (m *Users) Degraded() bool { return m.degraded }

// Get looks a user up by id.
func (m *Users) Get(id int64) (adminapi.User, bool) {
	for _, u := range m.users {
		if u.ID == id {
			return u, true
		}
	}
	return adminapi.User{}, false
}

// ToggleBlock flips a user's blocked flag in the mirror immediately and
// returns the remote confirmation for the caller to schedule.
func (m *Users) ToggleBlock(id int64) (Confirm, bool) {
	for i := range m.users {
		if m.users[i].ID != id {
			continue
		}
		m.users[i].Blocked = !m.users[i].Blocked
		blocked := m.users[i].Blocked
		return confirmLogged(m.log, "block user", func(ctx context.Context) error {
			return m.remote.BlockUser(ctx, id, blocked)
		}), true
	}
	return nil, false
}

// Delete removes a user from the mirror immediately and returns the
// remote confirmation. The interactive confirmation step happens before
// this is called.
func (m *Users) Delete(id int64) (Confirm, bool) {
	for i := range m.users {
		if m.users[i].ID != id {
			continue
		}
		m.users = append(m.users[:i], m.users[i+1:]...)
		return confirmLogged(m.log, "delete user", func(ctx context.Context) error {
			return m.remote.DeleteUser(ctx, id)
		}), true
	}
	return nil, false
}
