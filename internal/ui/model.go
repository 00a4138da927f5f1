package ui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/dashtrash/internal/config"
	"github.com/five82/dashtrash/internal/layout"
	"github.com/five82/dashtrash/internal/prefs"
	"github.com/five82/dashtrash/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Tree      *layout.Tree
	Banner    config.Banner
	Refresh   time.Duration
	ThemeName string
	PrefsPath string
	Logger    *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	store     *state.Store
	tree      *layout.Tree
	banner    Banner
	refresh   time.Duration
	prefsPath string
	logger    *slog.Logger

	keys     keyMap
	help     help.Model
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool

	snapshot state.Snapshot
	err      error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	return Model{
		ctx:       ctx,
		store:     store,
		tree:      opts.Tree,
		banner:    BuildBanner(ctx, opts.Banner),
		refresh:   refresh,
		prefsPath: opts.PrefsPath,
		logger:    logger,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     GetTheme(themeName),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.refresh),
		fetchSnapshotCmd(m.store),
		waitForUpdateCmd(m.ctx, m.store.Updates()),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		return m, tea.Batch(fetchSnapshotCmd(m.store), tickCmd(m.refresh))

	case updateMsg:
		return m, tea.Batch(fetchSnapshotCmd(m.store), waitForUpdateCmd(m.ctx, m.store.Updates()))

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		if m.snapshot.Stopped {
			m.err = m.snapshot.LastError
			return m, tea.Quit
		}
		return m, nil

	case doneMsg:
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	screen := Screen{
		Snapshot: m.snapshot,
		Tree:     m.tree,
		Banner:   m.banner,
		Theme:    m.theme,
		Width:    m.width,
		Height:   m.height,
	}
	if m.showHelp {
		screen.Help = m.help.View(m.keys)
	}
	return Render(screen)
}

// Err returns the refresh loop failure that ended the program, if any.
func (m Model) Err() error { return m.err }

// Theme returns the active theme.
func (m Model) Theme() Theme { return m.theme }

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
				m.logger.Warn("save theme preference failed", "path", m.prefsPath, "error", err)
			}
		}
		return m, nil
	}
	return m, nil
}

// Messages

type tickMsg time.Time

type updateMsg struct{}

type doneMsg struct{}

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// waitForUpdateCmd blocks until the store publishes or ctx is done.
func waitForUpdateCmd(ctx context.Context, updates <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return doneMsg{}
		case <-updates:
			return updateMsg{}
		}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits, ctx is
// done, or the refresh loop stops. A refresh loop failure is returned.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
