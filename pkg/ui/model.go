package ui

import (
	"context"
	"fmt"
	"image/color"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/glossgraph/internal/datasource"
	"github.com/vanderheijden86/glossgraph/pkg/config"
	"github.com/vanderheijden86/glossgraph/pkg/debug"
	"github.com/vanderheijden86/glossgraph/pkg/discovery"
	"github.com/vanderheijden86/glossgraph/pkg/graphview"
	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/render"
	"github.com/vanderheijden86/glossgraph/pkg/search"
	"github.com/vanderheijden86/glossgraph/pkg/tags"
	"github.com/vanderheijden86/glossgraph/pkg/watcher"
)

// Layout thresholds
const (
	SidebarWidth       = 44
	MinSidebarTotal    = 80 // hide the sidebar below this terminal width
	headerLines        = 2  // title bar and search line
	footerLines        = 1
	statusTimeout      = 4 * time.Second
	reloadTimeout      = 10 * time.Second
	defaultWidth       = 120
	defaultHeight      = 40
	graphTop           = headerLines
	maxStatusCharWidth = 200
)

// View identifies the main pane.
type View int

const (
	ViewGraph View = iota
	ViewList
)

func (v View) String() string {
	if v == ViewList {
		return "list"
	}
	return "graph"
}

// ParseView maps a config value to a View. Unknown values mean graph.
func ParseView(s string) View {
	if s == config.ViewList {
		return ViewList
	}
	return ViewGraph
}

// focus represents which UI element has keyboard focus
type focus int

const (
	focusMain focus = iota
	focusSearch
	focusTags
	focusHelp
)

// FileChangedMsg is sent when the glossary changes on disk
type FileChangedMsg struct{}

// GlossaryReloadedMsg carries the result of re-reading the glossary.
type GlossaryReloadedMsg struct {
	Glossary *model.Glossary
	Err      error
}

type statusClearMsg struct{ seq int }

// WatchFileCmd waits for the next change notification.
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// ReloadCmd re-reads source off the update loop.
func ReloadCmd(source datasource.DataSource) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()
		g, err := datasource.LoadFromSource(ctx, source)
		return GlossaryReloadedMsg{Glossary: g, Err: err}
	}
}

// palette resolves tag colors through the current catalog, which reloads
// replace.
type palette struct{ catalog *tags.Catalog }

func (p *palette) Color(tag string) color.NRGBA {
	if p.catalog == nil {
		return tags.Default().Color(tag)
	}
	return p.catalog.Color(tag)
}

// Options configures NewModel.
type Options struct {
	Config   config.Config
	Glossary *model.Glossary
	// Source is re-read on FileChangedMsg. A zero Source disables reloads.
	Source  datasource.DataSource
	Store   SessionStore
	Saved   datasource.Session
	Watcher *watcher.Watcher
	Rand    *rand.Rand
	// Renderer defaults to one on stdout.
	Renderer *lipgloss.Renderer
}

// EngineOptions maps the configured physics, zoom limits and drawing
// settings onto graph engine options.
func EngineOptions(cfg config.Config) []graphview.Option {
	return []graphview.Option{
		graphview.WithPhysics(cfg.Physics),
		graphview.WithZoomLimits(cfg.Viewport),
		graphview.WithNodeRadius(cfg.Render.NodeRadius),
		graphview.WithSpawnJitter(cfg.Render.SpawnJitter),
		graphview.WithHitMultiplier(cfg.Render.HitMultiplier),
		graphview.WithLabels(cfg.Render.LabelMode(), cfg.Render.LabelZoomThreshold),
	}
}

// Model is the glossary explorer.
type Model struct {
	cfg     config.Config
	theme   Theme
	keys    keyMap
	session *discovery.Session
	catalog *tags.Catalog
	colors  *palette

	graph     *GraphPane
	list      ListPane
	info      InfoPanel
	searchBox SearchBox
	tagPicker TagPickerModel
	tagFilter []string

	view          View
	focused       focus
	sidebarOpen   bool
	sidebarSet    bool
	showAllLabels bool
	hasSeenHelp   bool
	selectedID    string
	hoveredID     string

	store   SessionStore
	source  datasource.DataSource
	watcher *watcher.Watcher

	width, height int
	statusMsg     string
	statusIsError bool
	statusSeq     int
}

// NewModel builds the explorer over opts.Glossary, restoring opts.Saved.
func NewModel(opts Options) Model {
	cfg := opts.Config
	r := opts.Renderer
	if r == nil {
		r = lipgloss.NewRenderer(os.Stdout)
	}
	theme := DefaultTheme(r)
	g := opts.Glossary
	if g == nil {
		g = model.NewGlossary(nil, nil)
	}
	catalog := tags.NewCatalog(g.Tags)
	colors := &palette{catalog: catalog}

	sessOpts := []discovery.Option{
		discovery.WithMinConnections(cfg.Shuffle.MinConnections),
		discovery.WithPreferredStart(cfg.Shuffle.DefaultStart),
	}
	engineOpts := EngineOptions(cfg)
	if opts.Rand != nil {
		sessOpts = append(sessOpts, discovery.WithRand(opts.Rand))
		engineOpts = append(engineOpts, graphview.WithRand(opts.Rand))
	}
	sess := discovery.New(g, sessOpts...)
	sess.Restore(opts.Saved.Discovery)

	m := Model{
		cfg:           cfg,
		theme:         theme,
		keys:          defaultKeyMap(),
		session:       sess,
		catalog:       catalog,
		colors:        colors,
		graph:         NewGraphPane(colors, cfg.Render.FPS, engineOpts...),
		list:          NewListPane(theme, catalog, defaultWidth, defaultHeight),
		info:          NewInfoPanel(theme, catalog),
		searchBox:     NewSearchBox(theme),
		view:          ParseView(cfg.UI.DefaultView),
		sidebarOpen:   cfg.UI.Sidebar(),
		showAllLabels: cfg.Render.ShowAllLabels,
		hasSeenHelp:   opts.Saved.HasSeenHelp,
		store:         opts.Store,
		source:        opts.Source,
		watcher:       opts.Watcher,
	}
	if opts.Saved.SidebarOpen != nil {
		m.sidebarOpen = *opts.Saved.SidebarOpen
		m.sidebarSet = true
	}
	if !m.hasSeenHelp {
		m.focused = focusHelp
	}

	// Default dimensions so the first frame has a canvas before the
	// terminal reports its size.
	m.resize(defaultWidth, defaultHeight)
	m.refreshTerms()
	if sess.Mode() == discovery.ModeExplore {
		m.selectTerm(sess.StartingTerm())
	}
	if m.view == ViewGraph {
		m.graph.engine.Mount()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.graph.ensureTicking()}
	if m.watcher != nil {
		cmds = append(cmds, WatchFileCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case frameMsg:
		return m, m.graph.Tick(time.Time(msg), m.theme.Renderer)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case FileChangedMsg:
		debug.Log("glossary changed on disk")
		var cmds []tea.Cmd
		if m.source.Path != "" {
			cmds = append(cmds, ReloadCmd(m.source))
		}
		cmds = append(cmds, WatchFileCmd(m.watcher))
		return m, tea.Batch(cmds...)

	case GlossaryReloadedMsg:
		if msg.Err != nil {
			return m, m.setStatus(fmt.Sprintf("Reload failed: %v", msg.Err), true)
		}
		m.applyGlossary(msg.Glossary)
		return m, tea.Batch(
			m.setStatus(fmt.Sprintf("Reloaded %s", plural(msg.Glossary.Len(), "term")), false),
			m.save(),
		)

	case sessionSavedMsg:
		if msg.err != nil {
			return m, m.setStatus(fmt.Sprintf("Could not save session: %v", msg.err), true)
		}
		return m, nil

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
			m.statusIsError = false
		}
		return m, nil
	}
	return m, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// KEYBOARD
// ══════════════════════════════════════════════════════════════════════════════

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.focused {
	case focusHelp:
		return m.handleHelpKey(msg)
	case focusTags:
		return m.handleTagKey(msg)
	case focusSearch:
		return m.handleSearchKey(msg)
	}

	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.focused = focusHelp
		return m, nil

	case key.Matches(msg, k.Search):
		m.focused = focusSearch
		m.searchBox.Refresh(m.session.SearchPool())
		m.layout()
		return m, m.searchBox.Focus()

	case key.Matches(msg, k.Tags):
		m.tagPicker = NewTagPickerModel(search.AllTags(m.session.Glossary().Terms), m.tagFilter, m.catalog, m.theme)
		m.tagPicker.SetSize(m.width, m.height)
		m.focused = focusTags
		return m, nil

	case key.Matches(msg, k.SwitchView):
		return m, m.switchView()

	case key.Matches(msg, k.Mode):
		mode := m.session.ToggleMode()
		m.refreshTerms()
		label := "Explore: showing discovered terms"
		if mode == discovery.ModeViewAll {
			label = "View all: showing every term"
		}
		return m, tea.Batch(m.setStatus(label, false), m.save())

	case key.Matches(msg, k.Reroll):
		id := m.session.Reroll()
		m.refreshTerms()
		m.selectTerm(id)
		return m, tea.Batch(m.setStatus("New starting term: "+m.termName(id), false), m.save())

	case key.Matches(msg, k.Reset):
		m.session.Reset()
		m.refreshTerms()
		m.selectTerm(m.session.StartingTerm())
		return m, tea.Batch(m.setStatus("Discoveries reset", false), m.save())

	case key.Matches(msg, k.Labels):
		m.showAllLabels = !m.showAllLabels
		mode := m.cfg.Render.LabelMode()
		if m.showAllLabels {
			mode = render.LabelsAll
		}
		m.graph.engine.SetLabelMode(mode)
		return m, nil

	case key.Matches(msg, k.Sidebar):
		m.sidebarOpen = !m.sidebarOpen
		m.sidebarSet = true
		m.layout()
		return m, m.save()

	case key.Matches(msg, k.Copy):
		return m, m.copySelected()

	case key.Matches(msg, k.Follow):
		n := int(msg.String()[0] - '0')
		return m, m.follow(n)

	case key.Matches(msg, k.Back):
		if m.tagFilter != nil || m.searchBox.Query() != "" {
			m.tagFilter = nil
			m.searchBox.Clear()
			m.applyFilter()
			return m, m.setStatus("Filters cleared", false)
		}
		m.selectTerm("")
		return m, nil
	}

	if m.view == ViewGraph {
		switch {
		case key.Matches(msg, k.ZoomIn):
			m.graph.engine.ZoomIn()
		case key.Matches(msg, k.ZoomOut):
			m.graph.engine.ZoomOut()
		case key.Matches(msg, k.ResetView):
			m.graph.engine.ResetView()
		case key.Matches(msg, k.Next):
			m.cycleSelection(1)
		case key.Matches(msg, k.Prev):
			m.cycleSelection(-1)
		case msg.String() == "J" || msg.String() == "pgdown":
			m.info.ScrollDown()
		case msg.String() == "K" || msg.String() == "pgup":
			m.info.ScrollUp()
		}
		return m, nil
	}

	// List view: enter selects, everything else navigates.
	if msg.String() == "enter" {
		if t, ok := m.list.Selected(); ok {
			m.selectTerm(t.ID)
		}
		return m, nil
	}
	cmd := m.list.Update(msg)
	if t, ok := m.list.Selected(); ok && t.ID != m.selectedID {
		m.selectTerm(t.ID)
	}
	return m, cmd
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q", "enter":
		m.focused = focusMain
		if !m.hasSeenHelp {
			m.hasSeenHelp = true
			return m, m.save()
		}
	}
	return m, nil
}

func (m Model) handleTagKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focused = focusMain
	case "enter":
		m.tagFilter = m.tagPicker.Checked()
		m.focused = focusMain
		m.applyFilter()
		if len(m.tagFilter) == 0 {
			return m, m.setStatus("Tag filter cleared", false)
		}
		return m, m.setStatus("Showing terms tagged "+strings.Join(m.tagFilter, " + "), false)
	case "up", "ctrl+p":
		m.tagPicker.MoveUp()
	case "down", "ctrl+n":
		m.tagPicker.MoveDown()
	case " ":
		m.tagPicker.Toggle()
	case "ctrl+u":
		m.tagPicker.Clear()
	default:
		m.tagPicker.UpdateInput(msg)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchBox.Clear()
		m.searchBox.Blur()
		m.focused = focusMain
		m.applyFilter()
		m.layout()
		return m, nil
	case "enter":
		m.searchBox.Blur()
		m.focused = focusMain
		if r, ok := m.searchBox.Selected(); ok {
			cmd := m.goTo(r.Term.ID)
			if m.view == ViewGraph {
				m.searchBox.Clear()
			}
			m.applyFilter()
			m.layout()
			return m, cmd
		}
		m.applyFilter()
		m.layout()
		return m, nil
	case "up", "ctrl+p":
		m.searchBox.MoveUp()
		return m, nil
	case "down", "ctrl+n":
		m.searchBox.MoveDown()
		return m, nil
	}
	cmd := m.searchBox.Update(msg, m.session.SearchPool())
	m.applyFilter()
	return m, cmd
}

// ══════════════════════════════════════════════════════════════════════════════
// MOUSE
// ══════════════════════════════════════════════════════════════════════════════

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.view != ViewGraph || m.focused != focusMain {
		return m, nil
	}
	if !m.graph.Mouse(msg, msg.X, msg.Y-graphTop) {
		return m, nil
	}
	ev := m.graph.Events()
	if ev.hoverSeen {
		m.hoveredID = ev.hovered
	}
	if ev.background {
		m.selectedID = ""
		m.info.Clear()
	}
	if ev.clicked != "" {
		m.selectTerm(ev.clicked)
	}
	return m, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// STATE CHANGES
// ══════════════════════════════════════════════════════════════════════════════

// switchView unmounts the graph when leaving it and remounts it on return.
func (m *Model) switchView() tea.Cmd {
	if m.view == ViewGraph {
		m.graph.Unmount()
		m.view = ViewList
		m.refreshList()
		return nil
	}
	m.view = ViewGraph
	m.layout()
	return m.graph.Mount()
}

// refreshTerms pushes the visible term set to the engine and the list.
func (m *Model) refreshTerms() {
	m.graph.engine.SetTerms(m.session.VisibleViews())
	m.refreshList()
	if m.selectedID == "" {
		return
	}
	if _, ok := m.graph.engine.Term(m.selectedID); !ok {
		m.selectedID = ""
		m.info.Clear()
		return
	}
	if t, ok := m.session.Glossary().Lookup(m.selectedID); ok {
		m.info.Show(t, m.session)
	}
}

func (m *Model) refreshList() {
	m.list.SetTerms(m.session.VisibleTerms(), m.searchBox.Query(), m.tagFilter, m.selectedID)
}

// applyFilter pushes the search query and tag filter to both panes.
func (m *Model) applyFilter() {
	m.graph.engine.SetFilter(render.Filter{Query: m.searchBox.Query(), Tags: m.tagFilter})
	m.refreshList()
}

// selectTerm makes id the selection everywhere; "" clears it.
func (m *Model) selectTerm(id string) {
	m.selectedID = id
	m.graph.engine.SetSelectedNode(id)
	if id == "" {
		m.info.Clear()
		return
	}
	m.list.SelectID(id)
	if t, ok := m.session.Glossary().Lookup(id); ok {
		m.info.Show(t, m.session)
	}
}

// goTo discovers id if needed and selects it.
func (m *Model) goTo(id string) tea.Cmd {
	wasVisible := m.isVisible(id)
	if !m.session.Discover(id) {
		return nil
	}
	var cmds []tea.Cmd
	if !wasVisible {
		m.refreshTerms()
		done, total := m.session.Progress()
		cmds = append(cmds,
			m.setStatus(fmt.Sprintf("Discovered %s (%d/%d)", m.termName(id), done, total), false),
			m.save())
	}
	m.selectTerm(id)
	return tea.Batch(cmds...)
}

// follow goes to the n-th link of the selected term.
func (m *Model) follow(n int) tea.Cmd {
	if m.selectedID == "" {
		return nil
	}
	l, ok := m.info.Link(n)
	if !ok {
		return nil
	}
	return m.goTo(l.ID)
}

func (m *Model) isVisible(id string) bool {
	_, ok := m.graph.engine.Term(id)
	return ok
}

// cycleSelection steps through the nodes currently drawn.
func (m *Model) cycleSelection(step int) {
	ids := m.graph.engine.Visible()
	if len(ids) == 0 {
		return
	}
	next := 0
	for i, id := range ids {
		if id == m.selectedID {
			next = (i + step + len(ids)) % len(ids)
			break
		}
	}
	m.selectTerm(ids[next])
}

func (m *Model) copySelected() tea.Cmd {
	t, ok := m.session.Glossary().Lookup(m.selectedID)
	if !ok {
		return m.setStatus("Nothing selected", true)
	}
	text := t.Term + ": " + strings.TrimSpace(t.Definition)
	if err := clipboard.WriteAll(text); err != nil {
		return m.setStatus(fmt.Sprintf("Clipboard error: %v", err), true)
	}
	return m.setStatus("Copied "+t.Term, false)
}

// applyGlossary swaps in a reloaded glossary, keeping still-valid state.
func (m *Model) applyGlossary(g *model.Glossary) {
	m.session.Rebind(g)
	m.catalog = tags.NewCatalog(g.Tags)
	m.colors.catalog = m.catalog
	m.list.SetCatalog(m.catalog)
	m.info.catalog = m.catalog
	m.refreshTerms()
	if !g.Has(m.selectedID) {
		m.selectTerm("")
	}
}

func (m *Model) termName(id string) string {
	if t, ok := m.session.Glossary().Lookup(id); ok {
		return t.Term
	}
	return id
}

func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.statusMsg = msg
	m.statusIsError = isErr
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return statusClearMsg{seq: seq} })
}

// Session returns the preferences to persist.
func (m Model) Session() datasource.Session {
	s := datasource.Session{
		Discovery:   m.session.State(),
		HasSeenHelp: m.hasSeenHelp,
	}
	if m.sidebarSet {
		open := m.sidebarOpen
		s.SidebarOpen = &open
	}
	return s
}

func (m *Model) save() tea.Cmd {
	return saveSessionCmd(m.store, m.Session())
}

// ══════════════════════════════════════════════════════════════════════════════
// LAYOUT
// ══════════════════════════════════════════════════════════════════════════════

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.layout()
}

func (m *Model) showSidebar() bool {
	return (m.sidebarOpen || m.focused == focusSearch) && m.width >= MinSidebarTotal
}

func (m *Model) mainWidth() int {
	if m.showSidebar() {
		return m.width - SidebarWidth
	}
	return m.width
}

func (m *Model) bodyHeight() int {
	return max(m.height-headerLines-footerLines, 1)
}

// layout sizes every pane for the current terminal and sidebar state.
func (m *Model) layout() {
	mw, bh := m.mainWidth(), m.bodyHeight()
	m.graph.SetSize(mw, bh)
	m.list.SetSize(mw, bh)
	m.info.SetSize(SidebarWidth-4, bh-2)
	m.searchBox.SetWidth(mw)
	m.tagPicker.SetSize(m.width, m.height)
}

// ══════════════════════════════════════════════════════════════════════════════
// ACCESSORS
// ══════════════════════════════════════════════════════════════════════════════

// ActiveView returns the pane shown.
func (m Model) ActiveView() View { return m.view }

// SelectedID returns the selected term, empty when none.
func (m Model) SelectedID() string { return m.selectedID }

// Discovery exposes the discovery session.
func (m Model) Discovery() *discovery.Session { return m.session }

// Graph exposes the graph pane.
func (m Model) Graph() *GraphPane { return m.graph }

// TagFilter returns the active tags.
func (m Model) TagFilter() []string { return m.tagFilter }

// SearchQuery returns the typed query.
func (m Model) SearchQuery() string { return m.searchBox.Query() }

// StatusMessage returns the footer message and whether it is an error.
func (m Model) StatusMessage() (string, bool) { return m.statusMsg, m.statusIsError }

// HelpVisible reports whether the help modal is open.
func (m Model) HelpVisible() bool { return m.focused == focusHelp }

// ══════════════════════════════════════════════════════════════════════════════
// VIEW
// ══════════════════════════════════════════════════════════════════════════════

func (m Model) View() string {
	header := m.renderHeader()
	searchLine := padRight(m.searchBox.View(m.mainWidth()), m.mainWidth())

	var body string
	switch m.focused {
	case focusHelp:
		body = lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center,
			RenderHelp(m.theme, m.keys, m.width))
	case focusTags:
		body = lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center,
			m.tagPicker.View())
	default:
		main := m.graph.View()
		if m.view == ViewList {
			main = m.list.View()
		}
		main = lipgloss.NewStyle().Width(m.mainWidth()).Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(main)
		if m.showSidebar() {
			body = lipgloss.JoinHorizontal(lipgloss.Top, main, m.renderSidebar())
		} else {
			body = main
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, searchLine, body, m.renderFooter())
}

func (m Model) renderSidebar() string {
	content := m.info.View()
	style := PanelStyle
	if m.focused == focusSearch {
		content = m.searchBox.ResultsView(SidebarWidth - 4)
		style = FocusedPanelStyle
	}
	return style.
		Width(SidebarWidth - 2).
		Height(m.bodyHeight() - 2).
		MaxHeight(m.bodyHeight()).
		Padding(0, 1).
		Render(content)
}

func (m Model) renderHeader() string {
	t := m.theme
	title := t.Header.Render("glossgraph")

	var mode string
	if m.session.Mode() == discovery.ModeExplore {
		done, total := m.session.Progress()
		mode = t.PrimaryBold.Render(" explore ") + RenderProgress(t, done, total, 10)
	} else {
		mode = t.PrimaryBold.Render(" view all ") + t.MutedText.Render(plural(m.session.Glossary().Len(), "term"))
	}

	parts := []string{title, mode, t.SecondaryText.Render("· " + m.view.String())}
	if len(m.tagFilter) > 0 {
		parts = append(parts, t.SecondaryText.Render("· tags:")+" "+RenderTagBadges(t.Renderer, m.catalog, m.tagFilter))
	}
	if m.view == ViewGraph {
		parts = append(parts, t.MutedText.Render(fmt.Sprintf("· zoom %.1fx", m.graph.engine.Zoom())))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(parts, " "))
}

func (m Model) renderFooter() string {
	t := m.theme
	var left string
	switch {
	case m.statusMsg != "":
		style := t.Renderer.NewStyle().Foreground(ColorSuccess)
		if m.statusIsError {
			style = t.Renderer.NewStyle().Foreground(t.Danger)
		}
		left = style.Render(truncate(m.statusMsg, maxStatusCharWidth))
	case m.hoveredID != "" && m.hoveredID != m.selectedID:
		left = t.SecondaryText.Render("→ " + m.termName(m.hoveredID))
	case m.selectedID != "":
		left = t.Renderer.NewStyle().Foreground(t.Accent).Render("● " + m.termName(m.selectedID))
		if n := len(m.info.Links()); n > 0 {
			left += t.MutedText.Render(" · " + plural(n, "link") + " (1-9 to follow)")
		}
	default:
		left = t.MutedText.Render("click a node or press / to search")
	}

	right := t.MutedText.Render("? help · q quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(left)
	}
	return left + strings.Repeat(" ", gap) + right
}
