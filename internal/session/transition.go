package session

import (
	"sort"

	"github.com/abertrand/fable/internal/catalog"
)

// Transition applies an action to a state and returns the resulting
// state. It is total: unknown or inapplicable actions return the input
// unchanged, and it never panics.
func Transition(s State, a Action) State {
	switch a := a.(type) {
	case SetCatalog:
		s.Books = a.Books
		s.FilteredBooks = catalog.Filter(a.Books, s.SearchQuery)
		s.IsLoading = false
		return s

	case SetSearchQuery:
		s.SearchQuery = a.Query
		s.FilteredBooks = catalog.Filter(s.Books, a.Query)
		return s

	case SelectBook:
		s.SelectedBookID = a.Book.ID
		if s.CurrentTrack != nil && s.CurrentTrack.Book.ID == a.Book.ID {
			return s
		}
		first := a.Book.FirstChapter()
		if first == nil {
			return s
		}
		s.CurrentTrack = &Track{Book: a.Book, Chapter: *first}
		s.IsPlaying = false
		s.Position = 0
		s.Duration = 0
		return s

	case ClearSelectedBook:
		s.SelectedBookID = ""
		return s

	case SelectTrack:
		s.CurrentTrack = &Track{Book: a.Book, Chapter: a.Chapter}
		s.Position = 0
		s.Duration = 0
		return s

	case SetPlaying:
		s.IsPlaying = a.Playing
		return s

	case SetPosition:
		if a.Seconds < 0 {
			return s
		}
		s.Position = a.Seconds
		return s

	case SetDuration:
		if a.Seconds < 0 {
			return s
		}
		s.Duration = a.Seconds
		return s

	case SetRate:
		if a.Rate <= 0 {
			return s
		}
		s.PlaybackRate = a.Rate
		return s

	case CyclePlaybackRate:
		s.PlaybackRate = NextRate(s.PlaybackRate)
		return s

	case SetVolume:
		s.Volume = clamp01(a.Volume)
		return s

	case ToggleChapterList:
		s.ChapterListVisible = !s.ChapterListVisible
		return s

	case SetBookmarks:
		s.Bookmarks = a.Bookmarks
		return s

	case AddBookmark:
		return addBookmark(s, a)

	case DeleteBookmark:
		return deleteBookmark(s, a.ID)

	case SetSleepTimer:
		s.SleepTimer = a.Timer
		return s

	case AddToast:
		toasts := make([]Toast, 0, len(s.Toasts)+1)
		toasts = append(toasts, s.Toasts...)
		toasts = append(toasts, Toast{ID: a.ID, Message: a.Message, Severity: a.Severity})
		s.Toasts = toasts
		return s

	case RemoveToast:
		return removeToast(s, a.ID)

	default:
		return s
	}
}

func addBookmark(s State, a AddBookmark) State {
	if s.CurrentTrack == nil {
		return s
	}
	book := s.CurrentTrack.Book
	chapter := s.CurrentTrack.Chapter

	// Only the most recent bookmark is checked: a rapid double-tap is a
	// near-duplicate, repeated pauses over time are distinct bookmarks.
	if len(s.Bookmarks) > 0 {
		head := s.Bookmarks[0]
		if head.BookID == book.ID && head.ChapterNum == chapter.Num &&
			abs(head.Position-s.Position) <= bookmarkDedupWindow {
			return s
		}
	}

	bm := Bookmark{
		ID:           a.ID,
		BookID:       book.ID,
		BookTitle:    book.Title,
		ChapterNum:   chapter.Num,
		ChapterTitle: chapter.Title,
		Position:     s.Position,
		CreatedAt:    a.Now,
	}
	bookmarks := make([]Bookmark, 0, len(s.Bookmarks)+1)
	bookmarks = append(bookmarks, bm)
	bookmarks = append(bookmarks, s.Bookmarks...)
	sort.SliceStable(bookmarks, func(i, j int) bool {
		return bookmarks[i].CreatedAt.After(bookmarks[j].CreatedAt)
	})
	s.Bookmarks = bookmarks
	return s
}

func deleteBookmark(s State, id string) State {
	found := false
	for _, b := range s.Bookmarks {
		if b.ID == id {
			found = true
			break
		}
	}
	if !found {
		return s
	}
	bookmarks := make([]Bookmark, 0, len(s.Bookmarks)-1)
	for _, b := range s.Bookmarks {
		if b.ID != id {
			bookmarks = append(bookmarks, b)
		}
	}
	s.Bookmarks = bookmarks
	return s
}

func removeToast(s State, id string) State {
	found := false
	for _, t := range s.Toasts {
		if t.ID == id {
			found = true
			break
		}
	}
	if !found {
		return s
	}
	toasts := make([]Toast, 0, len(s.Toasts)-1)
	for _, t := range s.Toasts {
		if t.ID != id {
			toasts = append(toasts, t)
		}
	}
	s.Toasts = toasts
	return s
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
