package adminsync

import (
	"context"
	"log/slog"

	"github.com/Dyno1404/Justredact/internal/adminapi"
)

// Logs mirrors the redaction audit log for the logs view.
type Logs struct {
	remote   Remote
	log      *slog.Logger
	entries  []adminapi.LogEntry
	degraded bool
}

func NewLogs(remote Remote, log *slog.Logger) *Logs {
	return &Logs{remote: remote, log: log}
}

// ApplyFetch installs a fetch outcome, substituting placeholder entries
// on failure.
func (m *Logs) ApplyFetch(list []adminapi.LogEntry, err error) {
	if err != nil {
		m.log.Warn("log fetch failed, using placeholder data", "error", err)
		m.entries = degradedLogs()
		m.degraded = true
		return
	}
	m.entries = list
	m.degraded = false
}

// All returns the current mirror contents.
func (m *Logs) All() []adminapi.LogEntry { return m.entries }

// Degraded reports whether the mirror holds placeholder data.
func (m *Logs) Degraded() bool { return m.degraded }

// Verify marks an entry Verified in the mirror and returns the remote
// confirmation. Verifying an entry that is already Verified is a no-op
// and returns no confirmation; the transition is one-way.
func (m *Logs) Verify(id int64) (Confirm, bool) {
	for i := range m.entries {
		if m.entries[i].ID != id {
			continue
		}
		if m.entries[i].Status == StatusVerified {
			return nil, false
		}
		m.entries[i].Status = StatusVerified
		return confirmLogged(m.log, "verify log", func(ctx context.Context) error {
			return m.remote.VerifyLog(ctx, id)
		}), true
	}
	return nil, false
}
