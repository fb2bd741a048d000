package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodboard/internal/dispatch"
	"github.com/desertthunder/moodboard/internal/lifecycle"
	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/players"
	"github.com/desertthunder/moodboard/internal/shared"
	"github.com/desertthunder/moodboard/internal/tasks"
	"github.com/desertthunder/moodboard/internal/visibility"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BoardView ViewState = iota
	CategoryView
)

// Config tunes the browser's frame loop and simulated players.
type Config struct {
	FrameInterval time.Duration
	PollInterval  time.Duration
	PollAttempts  int
	// LoadDelay is how long a provider script takes to load; ReadyDelay how
	// long a new player takes to report ready.
	LoadDelay  time.Duration
	ReadyDelay time.Duration
	Logger     *log.Logger
	// OpenURL opens an item in the system browser. Defaults to [shared.OpenBrowser].
	OpenURL func(string) error
}

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	view   ViewState
	engine *tasks.BoardEngine
	logger *log.Logger

	queue    *dispatch.Queue
	tracker  *visibility.Tracker
	coord    *lifecycle.Coordinator
	previews *Previews

	frameInterval time.Duration
	openURL       func(string) error

	categories   []string
	counts       map[string]int
	active       string
	items        []*models.Item
	mounts       map[string]models.MountPoint
	categoryList list.Model

	offset int
	width  int
	height int
	status string
	err    error
	closed bool
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model browsing the board in engine.
func NewModel(ctx context.Context, engine *tasks.BoardEngine, cfg Config) *Model {
	if cfg.Logger == nil {
		cfg.Logger = shared.NewLogger(nil)
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = 50 * time.Millisecond
	}
	if cfg.OpenURL == nil {
		cfg.OpenURL = shared.OpenBrowser
	}

	queue := dispatch.NewQueue()
	tracker := visibility.NewTracker(queue, cfg.Logger)
	previews := NewPreviews(cfg.LoadDelay, cfg.ReadyDelay)
	adapters := lifecycle.NewAdapters(previews.Backends(), players.Options{
		Queue:        queue,
		Scripts:      players.NewScriptRegistry(),
		Injector:     previews.Injector(),
		Logger:       cfg.Logger,
		PollInterval: cfg.PollInterval,
		PollAttempts: cfg.PollAttempts,
	})

	return &Model{
		ctx:           ctx,
		view:          BoardView,
		engine:        engine,
		logger:        shared.WithLogger(cfg.Logger, "component", "tui"),
		queue:         queue,
		tracker:       tracker,
		coord:         lifecycle.New(tracker, adapters, cfg.Logger),
		previews:      previews,
		frameInterval: cfg.FrameInterval,
		openURL:       cfg.OpenURL,
		mounts:        make(map[string]models.MountPoint),
		help:          help.New(),
		keys:          newKeyMap(),
	}
}

// Init loads the board and starts the frame loop.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadBoard(), m.tick())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.view == CategoryView {
			m.categoryList.SetSize(msg.Width-4, msg.Height-4)
		}
		m.clampOffset()
		m.reportVisibility()
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case BoardView:
			return m.handleBoardKeys(msg)
		case CategoryView:
			return m.handleCategoryKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	if m.view == CategoryView {
		var cmd tea.Cmd
		m.categoryList, cmd = m.categoryList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgBoardLoaded:
		loaded := msg.data.(boardLoaded)
		if loaded.err != nil {
			m.err = loaded.err
			return m, nil
		}
		m.err = nil
		m.categories = loaded.categories
		m.counts = loaded.counts
		m.setItems(loaded.items)
		return m, nil

	case MsgItemRemoved:
		data := msg.data.(struct {
			id  string
			err error
		})
		if data.err != nil {
			m.status = fmt.Sprintf("delete failed: %v", data.err)
			return m, nil
		}
		m.status = "item deleted"
		return m, m.loadBoard()

	case MsgFrame:
		if m.closed {
			return m, nil
		}
		m.queue.Drain()
		return m, m.tick()
	}
	return m, nil
}

// setItems mounts the new item set, keeping mount points stable per item.
func (m *Model) setItems(items []*models.Item) {
	m.items = items
	m.coord.Sync(items, m.mountFor)

	keep := make(map[string]bool, len(items))
	for _, item := range items {
		keep[item.ID()] = true
	}
	for id := range m.mounts {
		if !keep[id] {
			delete(m.mounts, id)
		}
	}

	m.clampOffset()
	m.reportVisibility()
}

func (m *Model) mountFor(item *models.Item) models.MountPoint {
	mp, ok := m.mounts[item.ID()]
	if !ok {
		mp = models.NewMountPoint()
		m.mounts[item.ID()] = mp
	}
	return mp
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress r to reload, q to quit", m.err))
	}

	switch m.view {
	case BoardView:
		return m.renderBoard()
	case CategoryView:
		return m.renderCategories()
	default:
		return ""
	}
}

func (m *Model) handleBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.shutdown()
		return m, tea.Quit
	case key.Matches(msg, m.keys.up):
		m.scroll(-1)
	case key.Matches(msg, m.keys.down):
		m.scroll(1)
	case key.Matches(msg, m.keys.pageUp):
		m.scroll(-cardHeight)
	case key.Matches(msg, m.keys.pageDown):
		m.scroll(cardHeight)
	case key.Matches(msg, m.keys.reload):
		m.status = ""
		return m, m.loadBoard()
	case key.Matches(msg, m.keys.category):
		m.openCategories()
	case key.Matches(msg, m.keys.remove):
		if item := m.focused(); item != nil {
			return m, m.removeItem(item.ID())
		}
	case key.Matches(msg, m.keys.open):
		if item := m.focused(); item != nil {
			if err := m.openURL(item.URL()); err != nil {
				m.status = fmt.Sprintf("open failed: %v", err)
			}
		}
	}
	return m, nil
}

func (m *Model) handleCategoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.categoryList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.categoryList, cmd = m.categoryList.Update(msg)
		return m, cmd
	}

	switch {
	case msg.String() == "ctrl+c":
		m.shutdown()
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = BoardView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if selected, ok := m.categoryList.SelectedItem().(categoryItem); ok {
			m.active = selected.name
			if m.active == models.AllCategories {
				m.active = ""
			}
			m.offset = 0
		}
		m.view = BoardView
		return m, m.loadBoard()
	}

	var cmd tea.Cmd
	m.categoryList, cmd = m.categoryList.Update(msg)
	return m, cmd
}

func (m *Model) openCategories() {
	filters := append([]string{models.AllCategories}, m.categories...)
	items := make([]list.Item, len(filters))
	selected := 0
	for i, name := range filters {
		count := m.counts[name]
		if name == models.AllCategories {
			count = m.counts[""]
		}
		items[i] = categoryItem{name: name, count: count}
		if name == m.active {
			selected = i
		}
	}
	m.categoryList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-4)
	m.categoryList.Title = "Categories"
	m.categoryList.Select(selected)
	m.view = CategoryView
}

func (m *Model) viewportHeight() int {
	return max(m.height-headerHeight-footerHeight, 1)
}

func (m *Model) scroll(delta int) {
	m.offset += delta
	m.clampOffset()
	m.reportVisibility()
}

func (m *Model) clampOffset() {
	limit := max(len(m.items)*cardHeight-m.viewportHeight(), 0)
	m.offset = min(max(m.offset, 0), limit)
}

// reportVisibility sends every card's current intersection ratio to the tracker.
func (m *Model) reportVisibility() {
	if m.height == 0 {
		return
	}
	vh := m.viewportHeight()
	for i, item := range m.items {
		mp, ok := m.mounts[item.ID()]
		if !ok {
			continue
		}
		m.tracker.Report(mp, intersection(i*cardHeight, cardHeight, m.offset, vh))
	}
}

// focused returns the card with the largest visible share, the topmost on ties.
func (m *Model) focused() *models.Item {
	var best *models.Item
	bestRatio := 0.0
	vh := m.viewportHeight()
	for i, item := range m.items {
		if r := intersection(i*cardHeight, cardHeight, m.offset, vh); r > bestRatio {
			best, bestRatio = item, r
		}
	}
	return best
}

// shutdown disposes every embed and stops the queue.
func (m *Model) shutdown() {
	if m.closed {
		return
	}
	m.closed = true
	m.coord.Close()
	m.queue.Drain()
	m.queue.Close()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) loadBoard() tea.Cmd {
	active := m.active
	return func() tea.Msg {
		if err := m.ctx.Err(); err != nil {
			return boardLoadedMsg(boardLoaded{err: err})
		}
		categories, err := m.engine.Categories()
		if err != nil {
			return boardLoadedMsg(boardLoaded{err: err})
		}
		all, err := m.engine.ListItems(tasks.ListOptions{})
		if err != nil {
			return boardLoadedMsg(boardLoaded{err: err})
		}

		counts := map[string]int{"": len(all)}
		items := make([]*models.Item, 0, len(all))
		for _, item := range all {
			counts[item.Category()]++
			if item.Matches(active, "") {
				items = append(items, item)
			}
		}
		return boardLoadedMsg(boardLoaded{categories: categories, items: items, counts: counts})
	}
}

func (m *Model) removeItem(id string) tea.Cmd {
	return func() tea.Msg {
		return itemRemovedMsg(id, m.engine.RemoveItem(id))
	}
}

func (m *Model) renderTabs() string {
	filters := append([]string{models.AllCategories}, m.categories...)
	tabs := make([]string, len(filters))
	for i, name := range filters {
		if name == m.active || (m.active == "" && name == models.AllCategories) {
			tabs[i] = styles.active.Render(name)
		} else {
			tabs[i] = styles.tab.Render(name)
		}
	}
	return truncateLine(strings.Join(tabs, ""), m.width)
}

func (m *Model) renderBoard() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Moodboard"))
	b.WriteString(styles.help.Render(fmt.Sprintf("  %d items", len(m.items))))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	vh := m.viewportHeight()
	if len(m.items) == 0 {
		body := "No items yet. Add one with `moodboard item add <url>`."
		if m.active != "" {
			body = fmt.Sprintf("No items in %s.", m.active)
		}
		b.WriteString(styles.help.Render(body))
		b.WriteString(strings.Repeat("\n", vh))
	} else {
		b.WriteString(strings.Join(m.visibleLines(vh), "\n"))
		b.WriteString("\n")
	}

	footer := m.help.ShortHelpView([]key.Binding{m.keys.down, m.keys.pageDown, m.keys.category, m.keys.open, m.keys.remove, m.keys.quit})
	if m.status != "" {
		footer = styles.warn.Render(m.status) + "  " + footer
	}
	b.WriteString("\n")
	b.WriteString(footer)
	return b.String()
}

// visibleLines renders every card and slices out the viewport.
func (m *Model) visibleLines(vh int) []string {
	statuses := make(map[string]lifecycle.Status, m.coord.Len())
	for _, st := range m.coord.Statuses() {
		statuses[st.ItemID] = st
	}
	focus := m.focused()

	lines := make([]string, 0, len(m.items)*cardHeight)
	for _, item := range m.items {
		st, mounted := statuses[item.ID()]
		card := renderCard(item, st, mounted, item == focus, m.width)
		lines = append(lines, strings.Split(card, "\n")...)
	}

	end := min(m.offset+vh, len(lines))
	if m.offset >= end {
		return nil
	}
	return lines[m.offset:end]
}

func (m *Model) renderCategories() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back})
	return fmt.Sprintf("%s\n\n%s", m.categoryList.View(), helpView)
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
