// Package adminui implements the interactive admin TUI using Bubble Tea.
package adminui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dyno1404/Justredact/internal/adminapi"
	"github.com/Dyno1404/Justredact/internal/adminsync"
	"github.com/Dyno1404/Justredact/internal/session"
)

// state represents the current screen in the admin UI.
type state int

const (
	stateLogin state = iota
	stateDashboard
	stateUsers
	stateConfirmDelete
	stateLogs
)

// Model holds all UI state for the admin TUI.
type Model struct {
	gate   *session.Gate
	remote adminsync.Remote
	log    *slog.Logger

	st  state
	err string

	email    textinput.Model
	pass     textinput.Model
	remember bool

	stats         adminapi.Stats
	statsDegraded bool

	users   *adminsync.Users
	userLst list.Model

	logs   *adminsync.Logs
	logLst list.Model

	pendingDelete adminapi.User
}

// New constructs the admin model. A remembered, still-authenticated
// session skips the login screen entirely.
func New(gate *session.Gate, remote adminsync.Remote, log *slog.Logger) Model {
	email := textinput.New()
	email.Placeholder = "Admin Email"
	email.Prompt = "Email: "
	email.Focus()

	pass := textinput.New()
	pass.Placeholder = "Password"
	pass.EchoMode = textinput.EchoPassword
	pass.Prompt = "Password: "

	userLst := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	userLst.Title = "Users"

	logLst := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	logLst.Title = "Redaction Logs"

	m := Model{
		gate:    gate,
		remote:  remote,
		log:     log,
		st:      stateLogin,
		email:   email,
		pass:    pass,
		users:   adminsync.NewUsers(remote, log),
		userLst: userLst,
		logs:    adminsync.NewLogs(remote, log),
		logLst:  logLst,
	}
	if gate.AutoAdmit(context.Background()) {
		m.st = stateDashboard
	}
	return m
}

// Init fetches the dashboard when the login screen was skipped.
func (m Model) Init() tea.Cmd {
	if m.st == stateDashboard {
		return statsCmd(m.remote, m.log)
	}
	return nil
}

type errMsg string
type loginOKMsg struct{}
type loggedOutMsg struct{}
type confirmDoneMsg struct{}

type statsMsg struct {
	stats    adminapi.Stats
	degraded bool
}

type usersFetchedMsg struct {
	list []adminapi.User
	err  error
}

type logsFetchedMsg struct {
	list []adminapi.LogEntry
	err  error
}

// Update routes messages based on UI state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.userLst.SetSize(msg.Width-4, msg.Height-8)
		m.logLst.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	case errMsg:
		m.err = string(msg)
		return m, nil
	case loginOKMsg:
		m.err = ""
		m.pass.SetValue("")
		m.st = stateDashboard
		return m, statsCmd(m.remote, m.log)
	case loggedOutMsg:
		m.err = ""
		m.st = stateLogin
		m.email.Focus()
		return m, nil
	case statsMsg:
		m.stats = msg.stats
		m.statsDegraded = msg.degraded
		m.err = ""
		return m, nil
	case usersFetchedMsg:
		m.users.ApplyFetch(msg.list, msg.err)
		m.syncUserList()
		m.err = ""
		return m, nil
	case logsFetchedMsg:
		m.logs.ApplyFetch(msg.list, msg.err)
		m.syncLogList()
		m.err = ""
		return m, nil
	case confirmDoneMsg:
		// Optimistic state already applied; failures were logged.
		return m, nil
	}

	switch m.st {
	case stateLogin:
		return m.updateLogin(msg)
	case stateDashboard:
		return m.updateDashboard(msg)
	case stateUsers:
		return m.updateUsers(msg)
	case stateConfirmDelete:
		return m.updateConfirmDelete(msg)
	case stateLogs:
		return m.updateLogs(msg)
	default:
		return m, nil
	}
}

// updateLogin handles the credential form.
func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "alt+r":
			m.remember = !m.remember
			return m, nil
		case "tab":
			if m.email.Focused() {
				m.email.Blur()
				m.pass.Focus()
			} else {
				m.pass.Blur()
				m.email.Focus()
			}
			return m, nil
		case "enter":
			email := strings.TrimSpace(m.email.Value())
			pass := m.pass.Value()
			return m, loginCmd(m.gate, email, pass, m.remember)
		}
	}
	var cmd tea.Cmd
	if m.email.Focused() {
		m.email, cmd = m.email.Update(msg)
		return m, cmd
	}
	m.pass, cmd = m.pass.Update(msg)
	return m, cmd
}

// updateDashboard handles the stats screen.
func (m Model) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		return m, statsCmd(m.remote, m.log)
	case "u":
		return m.enter(stateUsers, usersCmd(m.remote))
	case "l":
		return m.enter(stateLogs, logsCmd(m.remote))
	case "o":
		return m, logoutCmd(m.gate)
	}
	return m, nil
}

// updateUsers handles the manage-users screen.
func (m Model) updateUsers(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.userLst, cmd = m.userLst.Update(msg)
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.st = stateDashboard
			return m, statsCmd(m.remote, m.log)
		case "r":
			return m, usersCmd(m.remote)
		case "b":
			u, ok := m.selectedUser()
			if !ok {
				return m, nil
			}
			confirm, ok := m.users.ToggleBlock(u.ID)
			if !ok {
				return m, nil
			}
			m.syncUserList()
			return m, confirmCmd(confirm)
		case "d":
			u, ok := m.selectedUser()
			if !ok {
				return m, nil
			}
			m.pendingDelete = u
			m.st = stateConfirmDelete
			return m, nil
		}
	}
	return m, cmd
}

// updateConfirmDelete handles the delete confirmation prompt. The
// optimistic removal only happens after an explicit yes.
func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "y", "Y":
		confirm, ok := m.users.Delete(m.pendingDelete.ID)
		m.pendingDelete = adminapi.User{}
		m.st = stateUsers
		if !ok {
			return m, nil
		}
		m.syncUserList()
		return m, confirmCmd(confirm)
	case "n", "N", "esc":
		m.pendingDelete = adminapi.User{}
		m.st = stateUsers
		return m, nil
	}
	return m, nil
}

// updateLogs handles the redaction log screen.
func (m Model) updateLogs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.logLst, cmd = m.logLst.Update(msg)
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.st = stateDashboard
			return m, statsCmd(m.remote, m.log)
		case "r":
			return m, logsCmd(m.remote)
		case "v":
			e, ok := m.selectedLog()
			if !ok {
				return m, nil
			}
			confirm, ok := m.logs.Verify(e.ID)
			if !ok {
				return m, nil
			}
			m.syncLogList()
			return m, confirmCmd(confirm)
		}
	}
	return m, cmd
}

// enter gates every admin screen on the persisted session, so a revoked
// session bounces to login at the next navigation.
func (m Model) enter(st state, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if !m.gate.Admitted(context.Background()) {
		m.st = stateLogin
		m.email.Focus()
		m.err = "Session expired. Please log in again."
		return m, nil
	}
	m.st = st
	return m, cmd
}

// View renders the current screen as a string.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString("Just Redact admin\n\n")

	switch m.st {
	case stateLogin:
		b.WriteString("Admin Login\n")
		b.WriteString(m.email.View() + "\n")
		b.WriteString(m.pass.View() + "\n")
		b.WriteString(fmt.Sprintf("Remember me: %v (toggle with alt+r)\n\n", m.remember))
		b.WriteString("Enter to login. tab=switch field ctrl+c=quit\n")
		b.WriteString("\nForgot password? Contact support@justredact.com\n")
	case stateDashboard:
		b.WriteString("System Overview")
		if m.statsDegraded {
			b.WriteString(" (offline placeholder data)")
		}
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("  Registered Users:    %d\n", m.stats.Users))
		b.WriteString(fmt.Sprintf("  Documents Uploaded:  %d\n", m.stats.Uploads))
		b.WriteString(fmt.Sprintf("  Redacted Documents:  %d\n", m.stats.RedactedDocs))
		b.WriteString(fmt.Sprintf("  Shared Links:        %d\n", m.stats.SharedDocs))
		b.WriteString("\nKeys: u=users l=logs r=refresh o=logout q=quit\n")
	case stateUsers:
		b.WriteString(m.userLst.View())
		if m.users.Degraded() {
			b.WriteString("\n(offline placeholder data)\n")
		}
		b.WriteString("\nKeys: b=block/unblock d=delete r=refresh esc=back q=quit\n")
	case stateConfirmDelete:
		b.WriteString("Delete " + m.pendingDelete.Name + "? (y/n)\n")
	case stateLogs:
		b.WriteString(m.logLst.View())
		if m.logs.Degraded() {
			b.WriteString("\n(offline placeholder data)\n")
		}
		b.WriteString("\nKeys: v=verify r=refresh esc=back q=quit\n")
	}

	if m.err != "" {
		b.WriteString("\nError: " + m.err + "\n")
	}
	return b.String()
}

type userItem adminapi.User

func (u userItem) Title() string { return u.Name }
func (u userItem) Description() string {
	status := "active"
	if u.Blocked {
		status = "blocked"
	}
	return u.Email + " (" + status + ")"
}
func (u userItem) FilterValue() string { return u.Name }

type logItem adminapi.LogEntry

func (l logItem) Title() string { return l.Doc + " - " + l.User }
func (l logItem) Description() string {
	return fmt.Sprintf("%s | %s | %s", strings.Join(l.Fields, ", "), l.Date, l.Status)
}
func (l logItem) FilterValue() string { return l.Doc }

// syncUserList refreshes the list widget from the mirror.
func (m *Model) syncUserList() {
	users := m.users.All()
	items := make([]list.Item, 0, len(users))
	for _, u := range users {
		items = append(items, userItem(u))
	}
	m.userLst.SetItems(items)
}

// syncLogList refreshes the list widget from the mirror.
func (m *Model) syncLogList() {
	entries := m.logs.All()
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, logItem(e))
	}
	m.logLst.SetItems(items)
}

// selectedUser returns the currently highlighted user list entry.
func (m *Model) selectedUser() (adminapi.User, bool) {
	if it, ok := m.userLst.SelectedItem().(userItem); ok {
		return adminapi.User(it), true
	}
	return adminapi.User{}, false
}

// selectedLog returns the currently highlighted log list entry.
func (m *Model) selectedLog() (adminapi.LogEntry, bool) {
	if it, ok := m.logLst.SelectedItem().(logItem); ok {
		return adminapi.LogEntry(it), true
	}
	return adminapi.LogEntry{}, false
}

func loginCmd(g *session.Gate, email, password string, remember bool) tea.Cmd {
	return func() tea.Msg {
		err := g.Login(context.Background(), email, password, remember)
		if errors.Is(err, session.ErrInvalidCredentials) {
			return errMsg("Invalid credentials. Please try again.")
		}
		if err != nil {
			return errMsg(err.Error())
		}
		return loginOKMsg{}
	}
}

func logoutCmd(g *session.Gate) tea.Cmd {
	return func() tea.Msg {
		if err := g.Logout(context.Background()); err != nil {
			return errMsg(err.Error())
		}
		return loggedOutMsg{}
	}
}

func statsCmd(remote adminsync.Remote, log *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		st, degraded := adminsync.LoadStats(context.Background(), remote, log)
		return statsMsg{stats: st, degraded: degraded}
	}
}

func usersCmd(remote adminsync.Remote) tea.Cmd {
	return func() tea.Msg {
		list, err := remote.ListUsers(context.Background())
		return usersFetchedMsg{list: list, err: err}
	}
}

func logsCmd(remote adminsync.Remote) tea.Cmd {
	return func() tea.Msg {
		list, err := remote.ListLogs(context.Background())
		return logsFetchedMsg{list: list, err: err}
	}
}

func confirmCmd(confirm adminsync.Confirm) tea.Cmd {
	return func() tea.Msg {
		_ = confirm(context.Background())
		return confirmDoneMsg{}
	}
}
