// Package adminsync keeps local mirrors of the admin collections. Reads
// fall back to a fixed placeholder dataset when the backend is
// unreachable so the views never render empty; writes are optimistic,
// applied locally first and confirmed remotely best-effort, with
// failures logged rather than rolled back.
package adminsync

import (
	"context"
	"log/slog"

	"github.com/Dyno1404/Justredact/internal/adminapi"
)

// Log entry statuses. Verification is one-way: Pending may become
// Verified, never the reverse.
const (
	StatusPending  = "Pending"
	StatusVerified = "Verified"
)

// Remote is the slice of the admin API the mirrors confirm against.
// *adminapi.Client satisfies it.
type Remote interface {
	Stats(ctx context.Context) (adminapi.Stats, error)
	ListUsers(ctx context.Context) ([]adminapi.User, error)
	BlockUser(ctx context.Context, id int64, block bool) error
	DeleteUser(ctx context.Context, id int64) error
	ListLogs(ctx context.Context) ([]adminapi.LogEntry, error)
	VerifyLog(ctx context.Context, id int64) error
}

// Confirm is the deferred remote half of an optimistic mutation. The
// caller schedules it however it likes; the local mirror is already
// updated by the time it runs.
type Confirm func(ctx context.Context) error

func confirmLogged(log *slog.Logger, op string, f func(ctx context.Context) error) Confirm {
	return func(ctx context.Context) error {
		if err := f(ctx); err != nil {
			log.Warn("remote confirmation failed, keeping optimistic state", "op", op, "error", err)
			return err
		}
		return nil
	}
}

// LoadStats fetches dashboard counters, substituting the placeholder
// figures when the backend is unreachable. The second return reports
// degraded mode.
func LoadStats(ctx context.Context, remote Remote, log *slog.Logger) (adminapi.Stats, bool) {
	st, err := remote.Stats(ctx)
	if err != nil {
		log.Warn("stats fetch failed, using placeholder data", "error", err)
		return degradedStats(), true
	}
	return st, false
}

func degradedStats() adminapi.Stats {
	return adminapi.Stats{Users: 24, Uploads: 52, RedactedDocs: 41, SharedDocs: 18}
}

func degradedUsers() []adminapi.User {
	return []adminapi.User{
		{ID: 1, Name: "Hridaya", Email: "hridya@example.com", Blocked: false},
		{ID: 2, Name: "Anita", Email: "anita@example.com", Blocked: true},
		{ID: 3, Name: "Ravi", Email: "ravi@example.com", Blocked: false},
	}
}

func degradedLogs() []adminapi.LogEntry {
	return []adminapi.LogEntry{
		{ID: 1, User: "Hridaya", Doc: "CaseStudy.pdf", Fields: []string{"Name", "Phone"}, Date: "2025-11-10", Status: StatusPending},
		{ID: 2, User: "Anita", Doc: "Report.docx", Fields: []string{"Address"}, Date: "2025-11-09", Status: StatusVerified},
	}
}
