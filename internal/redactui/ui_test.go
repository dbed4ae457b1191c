package redactui

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/Dyno1404/Justredact/internal/document"
)

func testModel(t *testing.T) Model {
	t.Helper()
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(nil, afero.NewMemMapFs(), "/out", 25, lg)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func apply(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestRedactWithoutDocument(t *testing.T) {
	m := testModel(t)
	m.st = stateTool
	m, _ = apply(t, m, key("r"))
	if m.err != "Upload a file first." {
		t.Fatalf("unexpected error: %q", m.err)
	}
}

func TestRedactWithoutFieldsNeverFiresCmd(t *testing.T) {
	m := testModel(t)
	m, _ = apply(t, m, uploadedMsg{name: "contract.pdf", data: []byte("body")})
	m, cmd := apply(t, m, key("r"))
	if cmd != nil {
		t.Fatalf("expected no network command")
	}
	if m.err != "Select at least one field." {
		t.Fatalf("unexpected error: %q", m.err)
	}
}

func TestRedactInFlightGuard(t *testing.T) {
	m := testModel(t)
	m, _ = apply(t, m, uploadedMsg{name: "contract.pdf", data: []byte("body")})
	m, _ = apply(t, m, key(" ")) // cursor on select-all
	m, cmd := apply(t, m, key("r"))
	if cmd == nil {
		t.Fatalf("expected a redaction command")
	}
	if !m.ws.InFlight() {
		t.Fatalf("expected in-flight state")
	}
	m, cmd = apply(t, m, key("r"))
	if cmd != nil {
		t.Fatalf("second redaction must not fire while one is outstanding")
	}
	if m.err != "Redaction already in progress." {
		t.Fatalf("unexpected error: %q", m.err)
	}
}

func TestResultIngestionAndToggle(t *testing.T) {
	m := testModel(t)
	m, _ = apply(t, m, uploadedMsg{name: "contract.pdf", data: []byte("body")})
	m, _ = apply(t, m, key(" "))
	m, _ = apply(t, m, key("r"))

	m, _ = apply(t, m, redactedMsg{gen: 1, data: []byte("R")})
	if !m.ws.HasResult() || m.ws.Display() != document.DisplayRedacted {
		t.Fatalf("result not ingested")
	}

	m, _ = apply(t, m, key("t"), key("t"))
	if m.ws.Display() != document.DisplayRedacted {
		t.Fatalf("double toggle should restore the display mode")
	}
}

func TestStaleResultDropped(t *testing.T) {
	m := testModel(t)
	m, _ = apply(t, m, uploadedMsg{name: "a.pdf", data: []byte("one")})
	m, _ = apply(t, m, key(" "))
	m, _ = apply(t, m, key("r"))

	// A new document arrives before the first call resolves.
	m, _ = apply(t, m, uploadedMsg{name: "b.pdf", data: []byte("two")})
	m, _ = apply(t, m, redactedMsg{gen: 1, data: []byte("stale")})

	if m.ws.HasResult() {
		t.Fatalf("stale result must be dropped")
	}
	if m.ws.Name() != "b.pdf" {
		t.Fatalf("unexpected document: %q", m.ws.Name())
	}
}

func TestFailureLeavesOriginalVisible(t *testing.T) {
	m := testModel(t)
	m, _ = apply(t, m, uploadedMsg{name: "a.pdf", data: []byte("one")})
	m, _ = apply(t, m, key(" "))
	m, _ = apply(t, m, key("r"))

	m, _ = apply(t, m, redactFailedMsg{gen: 1, err: "status 500"})
	if m.ws.HasResult() || m.ws.InFlight() {
		t.Fatalf("failure must leave the workspace idle with no result")
	}
	if !strings.Contains(m.err, "Redaction failed") {
		t.Fatalf("unexpected error: %q", m.err)
	}
	if m.ws.Display() != document.DisplayOriginal {
		t.Fatalf("original must remain visible")
	}
}

func TestExportWritesArtifact(t *testing.T) {
	m := testModel(t)
	m, _ = apply(t, m, uploadedMsg{name: "contract.pdf", data: []byte("body")})
	m, _ = apply(t, m, key(" "))
	m, _ = apply(t, m, key("r"))
	m, _ = apply(t, m, redactedMsg{gen: 1, data: []byte("R")})

	m, _ = apply(t, m, key("x"))
	got, err := afero.ReadFile(m.fsys, "/out/REDACTED_contract.pdf")
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	if string(got) != "R" {
		t.Fatalf("unexpected artifact contents: %q", got)
	}
}

func TestUploadCmdReadsFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/docs/contract.pdf", []byte("body"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg := uploadCmd(fsys, "/docs/contract.pdf", 1<<20)()
	up, ok := msg.(uploadedMsg)
	if !ok {
		t.Fatalf("expected uploadedMsg, got %T", msg)
	}
	if up.name != "contract.pdf" || string(up.data) != "body" {
		t.Fatalf("unexpected upload: %+v", up)
	}

	if _, ok := uploadCmd(fsys, "/docs/missing.pdf", 1<<20)().(errMsg); !ok {
		t.Fatalf("expected errMsg for missing file")
	}
	if _, ok := uploadCmd(fsys, "/docs/contract.pdf", 1)().(errMsg); !ok {
		t.Fatalf("expected errMsg for oversized file")
	}
}
