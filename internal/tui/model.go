package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/hay-kot/gab/internal/core/chat"
	"github.com/hay-kot/gab/internal/core/session"
)

const (
	defaultRefreshInterval = time.Second
	defaultSidebarWidth    = 20
	defaultTitle           = "Chat"

	// Rows used by the header, input, notice, and help lines.
	chromeHeight = 6
)

// Options configures the TUI behavior.
type Options struct {
	Store           chat.Store       // Message log backing every activation
	Session         *session.Session // Per-instance session state (a new one is created when nil)
	RefreshInterval time.Duration    // Period between timer-driven activations
	SidebarWidth    int              // Width of the users sidebar
	Title           string           // Header title
	Logger          zerolog.Logger
}

// Model is the main Bubble Tea model for the chat TUI.
type Model struct {
	store    chat.Store
	session  *session.Session
	interval time.Duration
	title    string
	log      zerolog.Logger
	keys     keyMap

	nameForm *NameForm
	input    textinput.Model
	chatView *ChatView

	// seq is the id of the most recent activation; applied is the id of the
	// newest activation whose result has been loaded into the session.
	seq     uint64
	applied uint64

	notice   string
	quitting bool
}

// New creates a new TUI model.
func New(opts Options) Model {
	if opts.Session == nil {
		opts.Session = session.New()
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = defaultRefreshInterval
	}
	if opts.SidebarWidth <= 0 {
		opts.SidebarWidth = defaultSidebarWidth
	}
	if opts.Title == "" {
		opts.Title = defaultTitle
	}

	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.Prompt = "> "
	ti.CharLimit = 4096
	if opts.Session.Identified() {
		ti.Focus()
	}

	return Model{
		store:    opts.Store,
		session:  opts.Session,
		interval: opts.RefreshInterval,
		title:    opts.Title,
		log:      opts.Logger,
		keys:     defaultKeyMap(),
		nameForm: NewNameForm(),
		input:    ti,
		chatView: NewChatView(opts.SidebarWidth),
		seq:      1, // reserved for the startup activation issued by Init
	}
}

// Session returns the session state driven by the model.
func (m Model) Session() *session.Session {
	return m.session
}

// Notice returns the current error notice, if any.
func (m Model) Notice() string {
	return m.notice
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		loadMessages(m.store, m.seq),
		scheduleRefresh(m.interval),
	}
	if m.session.Identified() {
		cmds = append(cmds, textinput.Blink)
	} else {
		cmds = append(cmds, m.nameForm.Form().Init())
	}
	return tea.Batch(cmds...)
}

// activate starts a new activation: a full reload of the message log.
func (m Model) activate() (Model, tea.Cmd) {
	m.seq++
	return m, loadMessages(m.store, m.seq)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 0)
		m.chatView.SetSize(msg.Width, max(msg.Height-chromeHeight, 0))
		if !m.session.Identified() {
			return m.updateNameForm(msg)
		}
		return m, nil

	case activatedMsg:
		return m.handleActivated(msg), nil

	case refreshTickMsg:
		var cmd tea.Cmd
		m, cmd = m.activate()
		return m, tea.Batch(cmd, scheduleRefresh(m.interval))

	case nameSubmittedMsg:
		return m.handleNameSubmitted(msg)

	case messageSubmittedMsg:
		return m.handleMessageSubmitted(msg)

	case appendedMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("failed to send message")
			m.notice = "could not send message: " + msg.err.Error()
		}
		return m.activate()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if !m.session.Identified() {
		return m.updateNameForm(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleActivated loads an activation result unless a newer one was already applied.
func (m Model) handleActivated(msg activatedMsg) Model {
	if msg.seq <= m.applied {
		m.log.Debug().Uint64("seq", msg.seq).Uint64("applied", m.applied).Msg("dropping stale activation")
		return m
	}
	m.applied = msg.seq

	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("failed to load messages")
		m.notice = "could not load messages: " + msg.err.Error()
		return m
	}

	m.notice = ""
	m.session.SetMessages(msg.messages)
	m.chatView.SetMessages(m.session.Messages())
	return m
}

func (m Model) handleNameSubmitted(msg nameSubmittedMsg) (tea.Model, tea.Cmd) {
	if err := m.session.Identify(msg.name); err != nil {
		m.log.Warn().Err(err).Msg("identify rejected")
		m.notice = err.Error()
		return m, nil
	}

	m.log.Info().Str("name", m.session.Name()).Msg("user identified")
	m.notice = ""

	focus := m.input.Focus()

	var cmd tea.Cmd
	m, cmd = m.activate()
	return m, tea.Batch(cmd, focus)
}

func (m Model) handleMessageSubmitted(msg messageSubmittedMsg) (tea.Model, tea.Cmd) {
	if !m.session.Identified() {
		return m, nil
	}
	if strings.TrimSpace(msg.body) == "" {
		return m, nil
	}
	return m, appendMessage(m.store, m.session.Name(), msg.body)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if !m.session.Identified() {
		return m.updateNameForm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		body := m.input.Value()
		m.input.Reset()
		return m, func() tea.Msg { return messageSubmittedMsg{body: body} }
	case key.Matches(msg, m.keys.PageUp):
		m.chatView.PageUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.chatView.PageDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateNameForm forwards msg to the name prompt and reports completion.
func (m Model) updateNameForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.nameForm.Form().State != huh.StateNormal {
		return m, nil
	}

	form, cmd := m.nameForm.Form().Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.nameForm.form = f
	}

	if m.nameForm.Submitted() {
		name := m.nameForm.Name()
		return m, tea.Batch(cmd, func() tea.Msg { return nameSubmittedMsg{name: name} })
	}
	return m, cmd
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := titleStyle.Render(m.title)
	if m.session.Identified() {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, welcomeStyle.Render("Welcome, "+m.session.Name()+"!"))
	}

	var body string
	if m.session.Identified() {
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.chatView.View(m.session.Users()),
			m.input.View(),
		)
	} else {
		body = m.nameForm.Form().View()
	}

	parts := []string{header, body}
	if m.notice != "" {
		parts = append(parts, noticeStyle.Render(m.notice))
	}
	parts = append(parts, helpStyle.Render(m.keys.HelpString()))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
