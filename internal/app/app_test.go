package app

import (
	"testing"

	"github.com/abertrand/fable/internal/catalog"
	"github.com/abertrand/fable/internal/session"
)

func testBooks() []catalog.Book {
	return []catalog.Book{
		{
			ID:     "b1",
			Title:  "First Book",
			Author: "Author One",
			Chapters: []catalog.Chapter{
				{Num: 1, Title: "Chapter 1", MediaRef: "b1c1.mp3"},
				{Num: 2, Title: "Chapter 2", MediaRef: "b1c2.mp3"},
			},
		},
		{
			ID:     "b2",
			Title:  "Second Book",
			Author: "Author Two",
			Chapters: []catalog.Chapter{
				{Num: 1, Title: "Chapter 1", MediaRef: "b2c1.mp3"},
			},
		},
	}
}

func TestNextSleepTimerCyclesThroughAllVariants(t *testing.T) {
	order := []session.SleepTimer{
		{Kind: session.SleepEndOfChapter},
		{Kind: session.SleepCountdown, Minutes: 15},
		{Kind: session.SleepCountdown, Minutes: 30},
		{Kind: session.SleepCountdown, Minutes: 60},
		{Kind: session.SleepOff},
	}

	cur := session.SleepTimer{Kind: session.SleepOff}
	for i, want := range order {
		cur = nextSleepTimer(cur)
		if cur != want {
			t.Fatalf("step %d: nextSleepTimer = %+v, want %+v", i, cur, want)
		}
	}
}

func TestNextSleepTimerUnknownCountdownResetsToOff(t *testing.T) {
	got := nextSleepTimer(session.SleepTimer{Kind: session.SleepCountdown, Minutes: 45})
	if got.Kind != session.SleepOff {
		t.Errorf("nextSleepTimer(45m) = %+v, want off", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{61.4, "1:01"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{-5, "0:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.seconds); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestBookBookmarksFiltersBySelectedBook(t *testing.T) {
	m := Model{}
	m.state = session.New()
	m.state.Books = testBooks()
	m.state.FilteredBooks = m.state.Books
	m.state.SelectedBookID = "b1"
	m.state.Bookmarks = []session.Bookmark{
		{ID: "bm1", BookID: "b1"},
		{ID: "bm2", BookID: "b2"},
		{ID: "bm3", BookID: "b1"},
	}

	got := m.bookBookmarks()
	if len(got) != 2 {
		t.Fatalf("bookBookmarks() returned %d bookmarks, want 2", len(got))
	}
	if got[0].ID != "bm1" || got[1].ID != "bm3" {
		t.Errorf("bookBookmarks() = %v, want bm1 then bm3", got)
	}
}

func TestVisibleCountLibraryAndBookViews(t *testing.T) {
	m := Model{}
	m.state = session.New()
	m.state.Books = testBooks()
	m.state.FilteredBooks = m.state.Books

	if got := m.visibleCount(); got != 2 {
		t.Errorf("library visibleCount() = %d, want 2", got)
	}

	m.state.SelectedBookID = "b1"
	m.state.Bookmarks = []session.Bookmark{{ID: "bm1", BookID: "b1"}}
	if got := m.visibleCount(); got != 3 {
		t.Errorf("book visibleCount() = %d, want 3 (2 chapters + 1 bookmark)", got)
	}
}
