// Package app is the full-screen terminal front end of the shell.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/gitbash/internal/config"
	"github.com/chmouel/gitbash/internal/log"
	"github.com/chmouel/gitbash/internal/session"
	"github.com/chmouel/gitbash/internal/term"
	"github.com/chmouel/gitbash/internal/theme"
)

const (
	headerHeight = 1
	footerHeight = 1
)

// Model drives one session inside a bubbletea program. Key events are queued
// on a session.Runner so Update never waits for a command.
type Model struct {
	config  *config.AppConfig
	theme   *theme.Theme
	session *session.Session
	runner  *session.Runner
	screen  *term.Buffer
	watcher *config.Watcher

	viewport viewport.Model
	width    int
	height   int
	rev      uint64
	quitting bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewModel wires a model around sess, which must write to screen. watcher
// may be nil.
func NewModel(cfg *config.AppConfig, sess *session.Session, screen *term.Buffer, watcher *config.Watcher) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ctx, cancel := context.WithCancel(context.Background())
	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true
	return &Model{
		config:   cfg,
		theme:    theme.GetTheme(cfg.Theme),
		session:  sess,
		runner:   session.NewRunner(sess),
		screen:   screen,
		watcher:  watcher,
		viewport: vp,
		width:    80,
		height:   20 + headerHeight + footerHeight,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Init starts the session and begins listening for output.
func (m *Model) Init() tea.Cmd {
	m.runner.Start(m.ctx)
	m.session.Start()
	m.refreshContent()
	return tea.Batch(m.waitForOutput(), m.waitForConfig())
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setWindowSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case outputMsg:
		m.refreshContent()
		if m.session.Closed() {
			return m.quit()
		}
		return m, m.waitForOutput()

	case configReloadedMsg:
		m.applyConfig(msg.cfg)
		return m, m.waitForConfig()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+d":
		return m.quit()
	case "pgup", "pgdown", "shift+up", "shift+down":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(scrollKey(msg))
		return m, cmd
	}
	for _, k := range keysFor(msg) {
		m.runner.Send(k)
	}
	return m, nil
}

// scrollKey maps the shifted arrows onto the viewport's line keys.
func scrollKey(msg tea.KeyMsg) tea.KeyMsg {
	switch msg.Type {
	case tea.KeyShiftUp:
		return tea.KeyMsg{Type: tea.KeyUp}
	case tea.KeyShiftDown:
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return msg
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.cancel()
	return m, tea.Quit
}

// Close stops the background workers. Call it after the program exits.
func (m *Model) Close() {
	m.cancel()
	m.runner.Stop()
	if m.watcher != nil {
		m.watcher.Stop()
	}
}

// Session returns the driven session.
func (m *Model) Session() *session.Session {
	return m.session
}

func (m *Model) waitForOutput() tea.Cmd {
	updates := m.runner.Updates()
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case <-updates:
			return outputMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m *Model) waitForConfig() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	updates := m.watcher.Updates()
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case cfg := <-updates:
			return configReloadedMsg{cfg: cfg}
		case <-ctx.Done():
			return nil
		}
	}
}

// applyConfig takes the settings that can change at runtime. Home, store
// root and identity stay fixed for the life of the session.
func (m *Model) applyConfig(cfg *config.AppConfig) {
	if cfg == nil {
		return
	}
	next := cfg.Clone()
	next.Home = m.config.Home
	next.User = m.config.User
	next.Host = m.config.Host
	next.Root = m.config.Root
	log.Printf("config reloaded: theme=%s", next.Theme)
	m.config = next
	m.theme = theme.GetTheme(next.Theme)
	m.refreshContent()
}

func (m *Model) setWindowSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(1, width)
	m.viewport.Height = max(1, height-headerHeight-footerHeight)
	m.refreshContent()
}
