package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/paddock/ergast"
	"github.com/five82/paddock/internal/prefs"
	"github.com/five82/paddock/internal/query"
	"github.com/five82/paddock/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Source    ergast.Source
	Store     *state.Store
	Initial   query.Query
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
}

// chromeHeight is the number of lines around the table: header, tabs,
// podium, footer.
const chromeHeight = 4

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	source    ergast.Source
	store     *state.Store
	prefsPath string
	pollTick  time.Duration

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	width    int
	height   int
	ready    bool
	showHelp bool

	// Query state
	views   []query.View
	viewIdx int
	queries map[query.View]query.Query
	loading bool

	// Edit line
	input    textinput.Model
	editing  bool
	inputErr string

	// Data state
	table    table.Model
	snapshot state.Snapshot
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(opts.ThemeName)

	tbl := table.New(table.WithFocused(true))
	tbl.SetStyles(theme.TableStyles())

	input := textinput.New()
	input.CharLimit = 64

	m := Model{
		ctx:       ctx,
		source:    opts.Source,
		store:     store,
		prefsPath: prefsPath,
		pollTick:  pollTick,
		theme:     theme,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		views:     query.Views(),
		queries:   make(map[query.View]query.Query),
		input:     input,
		table:     tbl,
	}

	initial := opts.Initial
	m.viewIdx = m.indexOf(initial.View)
	if m.views[m.viewIdx] != initial.View {
		initial = query.Query{View: m.views[m.viewIdx]}
	}
	m.queries[initial.View] = initial

	if initial.Validate() != nil {
		m.startEditing()
	}
	return m
}

func (m Model) indexOf(v query.View) int {
	for i, candidate := range m.views {
		if candidate == v {
			return i
		}
	}
	return 0
}

// current returns the query for the selected view.
func (m Model) current() query.Query {
	v := m.views[m.viewIdx]
	if q, ok := m.queries[v]; ok {
		return q
	}
	return query.Query{View: v}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.editing {
		cmds = append(cmds, textinput.Blink)
	} else {
		cmds = append(cmds, runQueryCmd(m.ctx, m.source, m.store, m.current()))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(msg.Height-chromeHeight, 3))
		return m, nil

	case tickMsg:
		return m, tea.Batch(fetchSnapshotCmd(m.store), tickCmd(m.pollTick))

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// applySnapshot shows snap when it answers the selected query and is newer
// than what is on screen.
func (m *Model) applySnapshot(snap state.Snapshot) {
	if snap.Query.String() != m.current().String() {
		return
	}
	if !snap.LastUpdated.After(m.snapshot.LastUpdated) && snap.Query.String() == m.snapshot.Query.String() {
		return
	}
	m.loading = false
	m.snapshot = snap
	if snap.HasTable {
		setTable(&m.table, snap.Table)
	} else {
		setTable(&m.table, ergast.Table{})
	}
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

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.editing {
		return m.handleEditKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.table.SetStyles(m.theme.TableStyles())
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.NextView):
		return m.switchView(1)

	case key.Matches(msg, m.keys.PrevView):
		return m.switchView(-1)

	case key.Matches(msg, m.keys.Edit):
		cmd := m.startEditing()
		return m, cmd

	case key.Matches(msg, m.keys.Refresh):
		cmd := m.run(m.current())
		return m, cmd

	case key.Matches(msg, m.keys.PrevSeason):
		return m.stepSeason(-1)

	case key.Matches(msg, m.keys.NextSeason):
		return m.stepSeason(1)

	case key.Matches(msg, m.keys.Up):
		m.table.MoveUp(1)
	case key.Matches(msg, m.keys.Down):
		m.table.MoveDown(1)
	case key.Matches(msg, m.keys.Top):
		m.table.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.table.GotoBottom()
	case key.Matches(msg, m.keys.PageUp):
		m.table.MoveUp(m.table.Height())
	case key.Matches(msg, m.keys.PageDown):
		m.table.MoveDown(m.table.Height())
	}
	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		q, err := applyInput(m.current(), m.input.Value())
		if err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.stopEditing()
		cmd := m.run(q)
		return m, cmd

	case key.Matches(msg, m.keys.Cancel):
		m.stopEditing()
		return m, nil

	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.inputErr = ""
	return m, cmd
}

func (m *Model) startEditing() tea.Cmd {
	q := m.current()
	m.editing = true
	m.inputErr = ""
	m.input.Prompt = editPrompt(q.View)
	if query.Scoped(q.View) {
		m.input.SetValue(formatScope(q.Season, q.Round))
	} else {
		m.input.SetValue(joinArgs(q.Args))
	}
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) stopEditing() {
	m.editing = false
	m.inputErr = ""
	m.input.Blur()
}

// switchView moves the tab selection by delta and runs the view's query, or
// opens the edit line when the view still needs arguments.
func (m Model) switchView(delta int) (tea.Model, tea.Cmd) {
	n := len(m.views)
	m.viewIdx = ((m.viewIdx+delta)%n + n) % n
	m.snapshot = state.Snapshot{}
	setTable(&m.table, ergast.Table{})
	m.savePrefs()

	q := m.current()
	if q.Validate() != nil {
		m.loading = false
		cmd := m.startEditing()
		return m, cmd
	}
	cmd := m.run(q)
	return m, cmd
}

// stepSeason moves a scoped view's season by delta. An unset season stands
// for the current one, so it can only step back. The round is cleared.
func (m Model) stepSeason(delta int) (tea.Model, tea.Cmd) {
	q := m.current()
	if !query.Scoped(q.View) {
		return m, nil
	}
	if q.Season == 0 {
		if delta > 0 {
			return m, nil
		}
		q.Season = time.Now().Year()
	}
	q.Season = max(q.Season+delta, 1)
	q.Round = 0
	cmd := m.run(q)
	return m, cmd
}

// run records q as the selected view's query and starts it.
func (m *Model) run(q query.Query) tea.Cmd {
	m.queries[q.View] = q
	m.loading = true
	m.savePrefs()
	return runQueryCmd(m.ctx, m.source, m.store, q)
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	q := m.current()
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, View: string(q.View), Season: q.Season})
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	footer := m.renderFooter()
	return m.renderHeader() + "\n" +
		m.renderTabs() + "\n" +
		m.renderPodium() + "\n" +
		m.table.View() + "\n" +
		footer
}

// Messages

type tickMsg time.Time

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

func runQueryCmd(ctx context.Context, src ergast.Source, store *state.Store, q query.Query) tea.Cmd {
	return func() tea.Msg {
		table, err := query.Execute(ctx, src, q)
		store.Update(q, table, err)
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
