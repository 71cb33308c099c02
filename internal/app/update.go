package app

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abertrand/fable/internal/session"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case StateMsg:
		m.state = session.State(msg)
		m.clampCursor()
		return m, waitForState(m.sub)

	case SubscriptionClosedMsg:
		return m, tea.Quit

	case TickMsg:
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.ctrl.Close()
		return m, tea.Quit

	case "/":
		if m.state.SelectedBook() == nil {
			m.search.Focus()
			return m, textinput.Blink
		}

	case "esc":
		if m.state.SelectedBook() != nil {
			m.ctrl.BackToLibrary()
		}

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < m.visibleCount()-1 {
			m.cursor++
		}

	case "enter":
		m.activateCursor()

	case " ":
		m.ctrl.TogglePlay()

	case "left":
		m.ctrl.SkipBack()

	case "right":
		m.ctrl.SkipForward()

	case "n":
		m.ctrl.NextChapter()

	case "p":
		m.ctrl.PrevChapter()

	case "r":
		m.ctrl.CyclePlaybackRate()

	case "+", "=":
		m.ctrl.SetVolume(m.state.Volume + 0.1)

	case "-":
		m.ctrl.SetVolume(m.state.Volume - 0.1)

	case "c":
		m.ctrl.ToggleChapterList()

	case "b":
		m.ctrl.AddBookmark()

	case "s":
		m.ctrl.SetSleepTimer(nextSleepTimer(m.state.SleepTimer))

	case "x":
		if m.state.SelectedBook() != nil {
			if bm := m.bookmarkAt(m.cursor); bm != nil {
				m.ctrl.DeleteBookmark(bm.ID)
			}
		}

	case "g":
		if bm := m.bookmarkAt(m.cursor); bm != nil {
			m.ctrl.JumpToBookmark(bm.ID)
		}
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.ctrl.SetSearchQuery(m.search.Value())
	return m, cmd
}

// activateCursor opens the book under the cursor in the library view,
// or plays the chapter under the cursor in the book view.
func (m *Model) activateCursor() {
	if book := m.state.SelectedBook(); book != nil {
		if m.cursor < len(book.Chapters) {
			m.ctrl.SelectChapter(*book, book.Chapters[m.cursor])
		}
		return
	}
	if m.cursor < len(m.state.FilteredBooks) {
		m.ctrl.SelectBook(m.state.FilteredBooks[m.cursor])
		m.cursor = 0
	}
}

func (m Model) visibleCount() int {
	if book := m.state.SelectedBook(); book != nil {
		return len(book.Chapters) + len(m.bookBookmarks())
	}
	return len(m.state.FilteredBooks)
}

func (m *Model) clampCursor() {
	if max := m.visibleCount() - 1; m.cursor > max {
		if max < 0 {
			max = 0
		}
		m.cursor = max
	}
}

// bookmarkAt maps a book-view cursor position past the chapter rows to
// the bookmark list, or nil if the cursor is on a chapter.
func (m Model) bookmarkAt(cursor int) *session.Bookmark {
	book := m.state.SelectedBook()
	if book == nil {
		return nil
	}
	bookmarks := m.bookBookmarks()
	i := cursor - len(book.Chapters)
	if i < 0 || i >= len(bookmarks) {
		return nil
	}
	return &bookmarks[i]
}

// nextSleepTimer cycles off -> end of chapter -> 15m -> 30m -> 60m -> off.
func nextSleepTimer(t session.SleepTimer) session.SleepTimer {
	switch {
	case t.Kind == session.SleepOff:
		return session.SleepTimer{Kind: session.SleepEndOfChapter}
	case t.Kind == session.SleepEndOfChapter:
		return session.SleepTimer{Kind: session.SleepCountdown, Minutes: 15}
	case t.Kind == session.SleepCountdown && t.Minutes == 15:
		return session.SleepTimer{Kind: session.SleepCountdown, Minutes: 30}
	case t.Kind == session.SleepCountdown && t.Minutes == 30:
		return session.SleepTimer{Kind: session.SleepCountdown, Minutes: 60}
	default:
		return session.SleepTimer{Kind: session.SleepOff}
	}
}
