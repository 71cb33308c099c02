package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/abertrand/fable/internal/session"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	playingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	barStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	toastSuccessStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42"))

	toastErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// View renders the library or book screen plus the player bar and any
// toasts.
func (m Model) View() string {
	var b strings.Builder

	if book := m.state.SelectedBook(); book != nil {
		b.WriteString(m.renderBook())
	} else {
		b.WriteString(m.renderLibrary())
	}

	if bar := m.renderPlayerBar(); bar != "" {
		b.WriteString("\n")
		b.WriteString(bar)
	}

	for _, toast := range m.state.Toasts {
		b.WriteString("\n")
		b.WriteString(renderToast(toast))
	}

	return b.String()
}

func (m Model) renderLibrary() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("fable"))
	b.WriteString("\n\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	switch {
	case m.state.IsLoading:
		b.WriteString(dimStyle.Render("Loading library..."))
	case len(m.state.FilteredBooks) == 0 && m.state.SearchQuery != "":
		b.WriteString(dimStyle.Render("No books match your search."))
	case len(m.state.FilteredBooks) == 0:
		b.WriteString(dimStyle.Render("No books in the library."))
	default:
		for i, book := range m.state.FilteredBooks {
			line := fmt.Sprintf("%s · %s", book.Title, book.Author)
			if i == m.cursor {
				line = cursorStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter: open  /: search  q: quit"))
	return b.String()
}

func (m Model) renderBook() string {
	book := m.state.SelectedBook()
	var b strings.Builder

	b.WriteString(titleStyle.Render(book.Title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(book.Author))
	b.WriteString("\n\n")

	for i, ch := range book.Chapters {
		marker := "  "
		if m.state.CurrentTrack != nil &&
			m.state.CurrentTrack.Book.ID == book.ID &&
			m.state.CurrentTrack.Chapter.Num == ch.Num {
			if m.state.IsPlaying {
				marker = playingStyle.Render("▶ ")
			} else {
				marker = playingStyle.Render("⏸ ")
			}
		}
		line := fmt.Sprintf("%s%d. %s", marker, ch.Num, ch.Title)
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if bookmarks := m.bookBookmarks(); len(bookmarks) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Bookmarks"))
		b.WriteString("\n")
		for i, bm := range bookmarks {
			line := fmt.Sprintf("  %s at %s · %s",
				bm.ChapterTitle,
				formatDuration(bm.Position),
				humanize.Time(bm.CreatedAt))
			if i+len(book.Chapters) == m.cursor {
				line = cursorStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if m.state.SleepTimer.Kind != session.SleepOff {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Sleep timer: " + m.state.SleepTimer.String()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("space: play/pause  n/p: chapter  b: bookmark  g: jump  s: sleep  esc: back"))
	return b.String()
}

// renderPlayerBar returns a single-line transport bar, or empty when no
// track is loaded.
func (m Model) renderPlayerBar() string {
	track := m.state.CurrentTrack
	if track == nil {
		return ""
	}

	status := "▶"
	if !m.state.IsPlaying {
		status = "⏸"
	}

	timeStr := fmt.Sprintf("%s / %s",
		formatDuration(m.state.Position),
		formatDuration(m.state.Duration))

	label := fmt.Sprintf("%s · %s", track.Book.Title, track.Chapter.Title)

	barWidth := m.width - lipgloss.Width(label) - lipgloss.Width(timeStr) - 24
	if barWidth < 10 {
		barWidth = 10
	}
	var ratio float64
	if m.state.Duration > 0 {
		ratio = m.state.Position / m.state.Duration
	}
	filled := int(float64(barWidth) * ratio)
	if filled > barWidth {
		filled = barWidth
	}
	progress := strings.Repeat("━", filled) + strings.Repeat("─", barWidth-filled)

	content := fmt.Sprintf("%s  %s  %s  %s  %.2fx  vol %d%%",
		status, label, progress, timeStr,
		m.state.PlaybackRate, int(m.state.Volume*100+0.5))

	if m.width > 4 {
		return barStyle.Width(m.width - 2).Render(content)
	}
	return barStyle.Render(content)
}

func renderToast(t session.Toast) string {
	switch t.Severity {
	case session.SeverityError:
		return toastErrorStyle.Render("✗ " + t.Message)
	default:
		return toastSuccessStyle.Render("✓ " + t.Message)
	}
}

// bookBookmarks returns the bookmarks belonging to the selected book,
// newest first.
func (m Model) bookBookmarks() []session.Bookmark {
	book := m.state.SelectedBook()
	if book == nil {
		return nil
	}
	var out []session.Bookmark
	for _, bm := range m.state.Bookmarks {
		if bm.BookID == book.ID {
			out = append(out, bm)
		}
	}
	return out
}

// formatDuration renders seconds as m:ss or h:mm:ss.
func formatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	h := total / 3600
	mm := (total % 3600) / 60
	ss := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mm, ss)
	}
	return fmt.Sprintf("%d:%02d", mm, ss)
}
