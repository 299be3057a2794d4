package ui

import (
	"context"
	"errors"
	"fmt"

	"genesis-tui/internal/bible"
	"genesis-tui/internal/favorites"
	"genesis-tui/internal/render"
	"genesis-tui/internal/session"
	"genesis-tui/internal/theme"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type viewMode int

const (
	modeLoading viewMode = iota
	modeUnavailable
	modeReader
	modeChapterSelect
	modeVerse
	modeFavorites
	modeHelp
)

// pickerColumns is the width of the chapter button grid.
const pickerColumns = 10

type Options struct {
	Session *session.Session
	Theme   string
	// SaveTheme persists the theme slug after the user cycles themes.
	SaveTheme func(slug string) error
	Logger    *zap.Logger
}

type Model struct {
	session   *session.Session
	saveTheme func(string) error
	logger    *zap.Logger

	theme  theme.Theme
	styles theme.Styles
	keys   keyMap
	help   help.Model

	viewport viewport.Model
	feed     *chapterFeed

	mode     viewMode
	prevMode viewMode
	display  render.DisplayModel
	cursor   int // index into display.Verses
	offsets  []int

	pick      int // zero-based chapter index in the picker
	favCursor int
	modalRef  bible.VerseRef
	helpText  string

	width  int
	height int
	ready  bool
	err    error
	status string
}

// chapterFeed receives rendered chapters from the session's chapter-change
// subscription. It is shared by every copy of the Model.
type chapterFeed struct {
	latest  render.DisplayModel
	pending bool
}

func (f *chapterFeed) set(dm render.DisplayModel) {
	f.latest = dm
	f.pending = true
}

func (f *chapterFeed) take() (render.DisplayModel, bool) {
	if !f.pending {
		return render.DisplayModel{}, false
	}
	f.pending = false
	return f.latest, true
}

type errMsg struct{ err error }
type datasetLoadedMsg struct{}

func (e errMsg) Error() string { return e.err.Error() }

func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	t := theme.Get(opts.Theme)

	return Model{
		session:   opts.Session,
		saveTheme: opts.SaveTheme,
		logger:    logger,
		theme:     t,
		styles:    t.Styles(),
		keys:      defaultKeyMap(),
		help:      help.New(),
		feed:      &chapterFeed{},
		mode:      modeLoading,
	}
}

func (m Model) Init() tea.Cmd {
	return loadDataset(m.session)
}

func loadDataset(s *session.Session) tea.Cmd {
	return func() tea.Msg {
		if err := s.LoadDataset(context.Background()); err != nil {
			return errMsg{err}
		}
		return datasetLoadedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		bodyHeight := max(msg.Height-5, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, bodyHeight)
			m.viewport.YPosition = 2
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = bodyHeight
		}
		if m.mode == modeHelp {
			m.helpText = renderHelp(m.width)
		}
		m.refreshContent()

	case datasetLoadedMsg:
		m.session.OnChapterChange(m.feed.set)
		m.mode = modeReader
		m.err = nil
		m.showChapter(m.session.RenderCurrent())

	case errMsg:
		m.err = msg.err
		if errors.Is(msg.err, bible.ErrDataUnavailable) {
			m.mode = modeUnavailable
		}

	case tea.MouseMsg:
		if m.mode == modeReader || m.mode == modeFavorites {
			m.viewport, cmd = m.viewport.Update(msg)
		}
	}

	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.mode {
	case modeReader:
		m.updateReader(msg)
	case modeChapterSelect:
		m.updatePicker(msg)
	case modeVerse:
		m.updateVerse(msg)
	case modeFavorites:
		m.updateFavorites(msg)
	case modeHelp:
		if key.Matches(msg, m.keys.Back, m.keys.Help) {
			m.mode = m.prevMode
			m.refreshContent()
		}
	}
	// Loading and unavailable accept nothing but quit.
	return m, nil
}

func (m *Model) updateReader(msg tea.KeyMsg) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Next):
		if m.session.Next() {
			m.syncChapter()
		}
	case key.Matches(msg, m.keys.Prev):
		if m.session.Prev() {
			m.syncChapter()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.display.Verses)-1 {
			m.cursor++
			m.refreshContent()
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.refreshContent()
		}
	case key.Matches(msg, m.keys.Toggle):
		if ref, ok := m.selected(); ok {
			m.toggle(ref)
		}
	case key.Matches(msg, m.keys.Open):
		if ref, ok := m.selected(); ok {
			m.openVerse(ref)
		}
	case key.Matches(msg, m.keys.Chapters):
		m.pick = m.session.Current() - 1
		m.mode = modeChapterSelect
	case key.Matches(msg, m.keys.Favorites):
		m.favCursor = 0
		m.mode = modeFavorites
		m.refreshContent()
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Theme):
		m.cycleTheme()
	case key.Matches(msg, m.keys.Help):
		m.prevMode = m.mode
		m.mode = modeHelp
		m.helpText = renderHelp(m.width)
	}
}

func (m *Model) updatePicker(msg tea.KeyMsg) {
	total := m.session.TotalChapters()

	switch {
	case key.Matches(msg, m.keys.Right):
		m.pick = min(m.pick+1, total-1)
	case key.Matches(msg, m.keys.Left):
		m.pick = max(m.pick-1, 0)
	case key.Matches(msg, m.keys.Down):
		if m.pick+pickerColumns < total {
			m.pick += pickerColumns
		}
	case key.Matches(msg, m.keys.Up):
		if m.pick-pickerColumns >= 0 {
			m.pick -= pickerColumns
		}
	case key.Matches(msg, m.keys.Open):
		// Buttons only exist for [1, total], so GoTo cannot fail here.
		if err := m.session.GoTo(m.pick + 1); err != nil {
			m.logger.Warn("Chapter selection rejected", zap.Int("chapter", m.pick+1), zap.Error(err))
			return
		}
		m.mode = modeReader
		m.syncChapter()
	case key.Matches(msg, m.keys.Back):
		m.mode = modeReader
	}
}

func (m *Model) updateVerse(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Back, m.keys.Open):
		m.mode = m.prevMode
		m.refreshContent()
	case key.Matches(msg, m.keys.Toggle):
		m.toggle(m.modalRef)
	}
}

func (m *Model) updateFavorites(msg tea.KeyMsg) {
	entries := m.session.Favorites()

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.favCursor < len(entries)-1 {
			m.favCursor++
			m.refreshContent()
		}
	case key.Matches(msg, m.keys.Up):
		if m.favCursor > 0 {
			m.favCursor--
			m.refreshContent()
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.favCursor < len(entries) {
			m.toggle(entries[m.favCursor].Ref)
			m.favCursor = max(min(m.favCursor, len(entries)-2), 0)
			m.refreshContent()
		}
	case key.Matches(msg, m.keys.Open):
		if m.favCursor < len(entries) {
			m.jumpTo(entries[m.favCursor])
		}
	case key.Matches(msg, m.keys.Back, m.keys.Favorites):
		m.mode = modeReader
		m.refreshContent()
	}
}

func (m *Model) jumpTo(entry favorites.Entry) {
	ref := entry.Ref
	if ref.Chapter != m.session.Current() {
		if err := m.session.GoTo(ref.Chapter); err != nil {
			m.status = fmt.Sprintf("Chapter %d not found.", ref.Chapter)
			return
		}
		m.syncChapter()
	}
	m.mode = modeReader
	for i, line := range m.display.Verses {
		if line.Number == ref.Verse {
			m.cursor = i
			break
		}
	}
	m.refreshContent()
}

func (m *Model) selected() (bible.VerseRef, bool) {
	if m.display.Empty || m.cursor >= len(m.display.Verses) {
		return bible.VerseRef{}, false
	}
	return bible.VerseRef{Chapter: m.display.Chapter, Verse: m.display.Verses[m.cursor].Number}, true
}

func (m *Model) toggle(ref bible.VerseRef) {
	on, err := m.session.ToggleFavorite(ref.Chapter, ref.Verse)
	if err != nil {
		m.status = err.Error()
		return
	}
	if on {
		m.status = fmt.Sprintf("★ %s added to favorites", ref)
	} else {
		m.status = fmt.Sprintf("%s removed from favorites", ref)
	}

	// Favorites changed, the chapter did not.
	m.display = m.session.RenderCurrent()
	m.refreshContent()
}

func (m *Model) openVerse(ref bible.VerseRef) {
	m.modalRef = ref
	m.prevMode = m.mode
	m.mode = modeVerse
}

func (m *Model) cycleTheme() {
	m.theme = theme.Next(m.theme.Slug)
	m.styles = m.theme.Styles()
	m.status = "Theme: " + m.theme.Name
	if m.saveTheme != nil {
		if err := m.saveTheme(m.theme.Slug); err != nil {
			m.logger.Warn("Failed to save theme", zap.String("theme", m.theme.Slug), zap.Error(err))
		}
	}
	m.refreshContent()
}

// syncChapter adopts the chapter published through the session
// subscription and resets the cursor.
func (m *Model) syncChapter() {
	dm, ok := m.feed.take()
	if !ok {
		dm = m.session.RenderCurrent()
	}
	m.showChapter(dm)
}

func (m *Model) showChapter(dm render.DisplayModel) {
	m.display = dm
	m.cursor = 0
	m.refreshContent()
	m.viewport.GotoTop()
}

// refreshContent re-renders the viewport body for the current mode and
// keeps the cursor row visible.
func (m *Model) refreshContent() {
	if !m.ready {
		return
	}

	var row int
	switch m.mode {
	case modeFavorites:
		var content string
		content, row = formatFavorites(m.session.Favorites(), m.favCursor, m.styles, m.textWidth())
		m.viewport.SetContent(content)
	default:
		var content string
		content, m.offsets = formatChapter(m.display, m.cursor, m.styles, m.textWidth())
		m.viewport.SetContent(content)
		if m.cursor < len(m.offsets) {
			row = m.offsets[m.cursor]
		}
	}

	if row < m.viewport.YOffset {
		m.viewport.SetYOffset(row)
	} else if row >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(row - m.viewport.Height + 2)
	}
}

func (m Model) textWidth() int {
	return max(min(80, m.width-8), 20)
}
