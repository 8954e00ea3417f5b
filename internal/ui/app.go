package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/logpeek/internal/config"
	"github.com/five82/logpeek/internal/logtail"
	"github.com/five82/logpeek/internal/prefs"
)

// lineStep is how far + and - move the requested line count.
const lineStep = 50

// Snapshot is one loaded tail as the viewer sees it.
type Snapshot struct {
	Path    string
	Lines   int
	Found   bool
	Raw     string
	Records []logtail.Record
	Err     error
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Config    config.Config
	ThemeName string
	PrefsPath string
	Load      func(config.Config) Snapshot
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	cfg       config.Config
	load      func(config.Config) Snapshot
	prefsPath string
	keys      keyMap

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	viewport viewport.Model

	// Data state
	snapshot Snapshot
	loadedAt time.Time
}

type snapshotMsg Snapshot

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	load := opts.Load
	if load == nil {
		load = func(config.Config) Snapshot { return Snapshot{} }
	}

	return Model{
		cfg:       opts.Config,
		load:      load,
		prefsPath: prefsPath,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.reloadCmd()
}

func (m Model) reloadCmd() tea.Cmd {
	load, cfg := m.load, m.cfg
	return func() tea.Msg {
		return snapshotMsg(load(cfg))
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		bodyHeight := max(m.height-2, 1)
		if !m.ready {
			m.viewport = viewport.New(m.width, bodyHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = bodyHeight
		}
		m.updateViewport()
		return m, nil

	case snapshotMsg:
		m.snapshot = Snapshot(msg)
		m.loadedAt = time.Now()
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.updateViewport()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadCmd()

	case key.Matches(msg, m.keys.More):
		m.cfg.LineCount += lineStep
		return m, m.reloadCmd()

	case key.Matches(msg, m.keys.Fewer):
		// Steps down to lineStep, but never raises a smaller count.
		m.cfg.LineCount = max(m.cfg.LineCount-lineStep, min(m.cfg.LineCount, lineStep))
		return m, m.reloadCmd()

	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		return m, nil
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
}

// Run starts the viewer and blocks until the user quits or the context in
// opts is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
