// Package redactui implements the interactive redaction workflow using
// Bubble Tea: upload, preview, field selection, redaction, and export.
package redactui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/Dyno1404/Justredact/internal/document"
	"github.com/Dyno1404/Justredact/internal/fields"
	"github.com/Dyno1404/Justredact/internal/redactapi"
)

// state represents the current screen.
type state int

const (
	stateUpload state = iota
	stateTool
)

// Model holds all UI state for the redaction workflow.
type Model struct {
	client *redactapi.Client
	fsys   afero.Fs
	log    *slog.Logger

	downloadDir string
	maxBytes    int64

	st     state
	err    string
	status string

	path textinput.Model

	ws     *document.Workspace
	sel    *fields.Selection
	cursor int // 0 = select-all row, 1..len(Keys) = field rows
}

// New constructs the workflow model starting on the upload screen.
func New(client *redactapi.Client, fsys afero.Fs, downloadDir string, maxUploadMB int, log *slog.Logger) Model {
	path := textinput.New()
	path.Placeholder = "/path/to/document.pdf"
	path.Prompt = "File: "
	path.Focus()

	return Model{
		client:      client,
		fsys:        fsys,
		log:         log,
		downloadDir: downloadDir,
		maxBytes:    int64(maxUploadMB) << 20,
		st:          stateUpload,
		path:        path,
		ws:          document.NewWorkspace(),
		sel:         fields.NewSelection(),
	}
}

// Init returns the initial command for the Bubble Tea runtime.
func (m Model) Init() tea.Cmd {
	return nil
}

type errMsg string

type uploadedMsg struct {
	name string
	data []byte
}

type redactedMsg struct {
	gen  uint64
	data []byte
}

type redactFailedMsg struct {
	gen uint64
	err string
}

// Update routes messages based on UI state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case errMsg:
		m.err = string(msg)
		m.status = ""
		return m, nil
	case uploadedMsg:
		m.ws.Upload(msg.name, msg.data)
		m.st = stateTool
		m.err = ""
		m.status = "Uploaded: " + msg.name
		return m, nil
	case redactedMsg:
		if !m.ws.IngestResult(msg.gen, msg.data) {
			m.log.Debug("dropping stale redaction result")
			return m, nil
		}
		m.err = ""
		m.status = "Redaction completed"
		return m, nil
	case redactFailedMsg:
		m.ws.FailRedaction(msg.gen)
		m.err = "Redaction failed: " + msg.err
		m.status = ""
		return m, nil
	}

	switch m.st {
	case stateUpload:
		return m.updateUpload(msg)
	case stateTool:
		return m.updateTool(msg)
	default:
		return m, nil
	}
}

// updateUpload handles input on the file picker screen.
func (m Model) updateUpload(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			p := strings.TrimSpace(m.path.Value())
			if p == "" {
				m.err = "Upload a file first."
				return m, cmd
			}
			return m, tea.Batch(cmd, uploadCmd(m.fsys, p, m.maxBytes))
		case "esc":
			if m.ws.HasDocument() {
				m.st = stateTool
			}
			return m, cmd
		case "ctrl+c":
			// Plain q stays usable inside the path input.
			return m, tea.Quit
		}
	}
	return m, cmd
}

// updateTool handles input on the main redaction screen.
func (m Model) updateTool(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "u":
		m.st = stateUpload
		m.path.SetValue("")
		m.path.Focus()
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(fields.Keys) {
			m.cursor++
		}
		return m, nil
	case " ", "space", "enter":
		if m.cursor == 0 {
			m.sel.ToggleAll()
			return m, nil
		}
		if err := m.sel.Toggle(fields.Keys[m.cursor-1]); err != nil {
			m.err = err.Error()
		}
		return m, nil
	case "r":
		return m.requestRedaction()
	case "t":
		if err := m.ws.ToggleDisplay(); err != nil {
			m.err = "Nothing to preview: redact the document first."
			return m, nil
		}
		m.err = ""
		return m, nil
	case "x":
		path, err := m.ws.ExportTo(m.fsys, m.downloadDir)
		if err != nil {
			if errors.Is(err, document.ErrNoResult) {
				m.err = "Nothing to download: redact the document first."
			} else {
				m.err = err.Error()
			}
			return m, nil
		}
		m.err = ""
		m.status = "Saved " + path
		return m, nil
	}
	return m, nil
}

// requestRedaction validates the preconditions and fires the service
// call. Validation failures never reach the network.
func (m Model) requestRedaction() (tea.Model, tea.Cmd) {
	if !m.ws.HasDocument() {
		m.err = "Upload a file first."
		return m, nil
	}
	cats, err := m.sel.ActiveCategories()
	if err != nil {
		if errors.Is(err, fields.ErrNoFields) {
			m.err = "Select at least one field."
		} else {
			m.err = err.Error()
		}
		return m, nil
	}
	gen, err := m.ws.BeginRedaction()
	if err != nil {
		if errors.Is(err, document.ErrBusy) {
			m.err = "Redaction already in progress."
		} else {
			m.err = err.Error()
		}
		return m, nil
	}
	m.err = ""
	m.status = "Redacting..."
	return m, redactCmd(m.client, m.ws.Name(), m.ws.Original(), cats, gen)
}

// View renders the current screen as a string.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString("Just Redact - Smart Redaction Tool\n")
	b.WriteString("Upload -> Preview -> Choose What to Redact -> Share Securely\n\n")

	switch m.st {
	case stateUpload:
		b.WriteString("Upload a document (.pdf .txt .doc .docx)\n")
		b.WriteString(m.path.View())
		b.WriteString("\n\nEnter to upload. esc=back q=quit\n")
	case stateTool:
		b.WriteString("Document: " + m.ws.Name())
		if m.ws.InFlight() {
			b.WriteString("  [redacting...]")
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Preview: %s (%d bytes shown)\n\n", displayName(m.ws.Display()), len(m.ws.Displayed())))

		b.WriteString("Select fields to redact:\n")
		b.WriteString(checkboxRow(m.cursor == 0, m.sel.AllSelected(), "Select All"))
		for i, key := range fields.Keys {
			b.WriteString(checkboxRow(m.cursor == i+1, m.sel.Selected(key), fields.Label(key)))
		}
		b.WriteString("\nKeys: space=toggle r=redact t=preview-toggle x=download u=upload q=quit\n")
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	if m.err != "" {
		b.WriteString("\nError: " + m.err + "\n")
	}
	return b.String()
}

func displayName(d document.Display) string {
	if d == document.DisplayRedacted {
		return "Redacted"
	}
	return "Original"
}

func checkboxRow(focused, checked bool, label string) string {
	cursor := "  "
	if focused {
		cursor = "> "
	}
	box := "[ ]"
	if checked {
		box = "[x]"
	}
	return cursor + box + " " + label + "\n"
}

func uploadCmd(fsys afero.Fs, path string, maxBytes int64) tea.Cmd {
	return func() tea.Msg {
		info, err := fsys.Stat(path)
		if err != nil {
			return errMsg(err.Error())
		}
		if info.IsDir() {
			return errMsg(path + " is a directory")
		}
		if maxBytes > 0 && info.Size() > maxBytes {
			return errMsg(fmt.Sprintf("file exceeds the %d MB upload limit", maxBytes>>20))
		}
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return errMsg(err.Error())
		}
		return uploadedMsg{name: filepath.Base(path), data: data}
	}
}

func redactCmd(c *redactapi.Client, name string, data []byte, cats []fields.Category, gen uint64) tea.Cmd {
	return func() tea.Msg {
		out, err := c.Redact(context.Background(), name, data, cats)
		if err != nil {
			return redactFailedMsg{gen: gen, err: err.Error()}
		}
		return redactedMsg{gen: gen, data: out}
	}
}
