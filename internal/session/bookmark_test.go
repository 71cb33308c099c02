package session

import (
	"testing"
	"time"
)

func stateWithTrack(t *testing.T) State {
	t.Helper()
	book := testBook("B", 3)
	s := New()
	s = Transition(s, SelectTrack{Book: book, Chapter: book.Chapters[2]})
	return s
}

func TestAddBookmark_NoCurrentTrack_NoOp(t *testing.T) {
	s := New()

	got := Transition(s, AddBookmark{ID: "x", Now: time.Now()})

	if len(got.Bookmarks) != 0 {
		t.Errorf("len(Bookmarks) = %d, want 0", len(got.Bookmarks))
	}
}

func TestAddBookmark_SnapshotsTrackAndPosition(t *testing.T) {
	s := stateWithTrack(t)
	s = Transition(s, SetPosition{Seconds: 100})
	now := time.Now()

	got := Transition(s, AddBookmark{ID: "bm1", Now: now})

	if len(got.Bookmarks) != 1 {
		t.Fatalf("len(Bookmarks) = %d, want 1", len(got.Bookmarks))
	}
	bm := got.Bookmarks[0]
	if bm.BookID != "B" || bm.ChapterNum != 3 || bm.Position != 100 {
		t.Errorf("bookmark = %+v, want B/3 at 100", bm)
	}
	if bm.BookTitle != "Book B" {
		t.Errorf("BookTitle = %q, want denormalized title", bm.BookTitle)
	}
}

func TestAddBookmark_DedupWithinOneSecondOfHead(t *testing.T) {
	s := stateWithTrack(t)
	s = Transition(s, SetPosition{Seconds: 100})
	base := time.Now()
	s = Transition(s, AddBookmark{ID: "bm1", Now: base})

	// Within 1.0s of the head bookmark: suppressed.
	s = Transition(s, SetPosition{Seconds: 100.8})
	got := Transition(s, AddBookmark{ID: "bm2", Now: base.Add(time.Second)})
	if len(got.Bookmarks) != 1 {
		t.Errorf("len(Bookmarks) = %d, want 1 (near-duplicate suppressed)", len(got.Bookmarks))
	}

	// Beyond the window: recorded.
	s = Transition(s, SetPosition{Seconds: 105})
	got = Transition(s, AddBookmark{ID: "bm3", Now: base.Add(2 * time.Second)})
	if len(got.Bookmarks) != 2 {
		t.Errorf("len(Bookmarks) = %d, want 2", len(got.Bookmarks))
	}
}

func TestAddBookmark_OnlyHeadIsChecked(t *testing.T) {
	s := stateWithTrack(t)
	base := time.Now()

	// Bookmark at 100, then a later one at 200.
	s = Transition(s, SetPosition{Seconds: 100})
	s = Transition(s, AddBookmark{ID: "bm1", Now: base})
	s = Transition(s, SetPosition{Seconds: 200})
	s = Transition(s, AddBookmark{ID: "bm2", Now: base.Add(time.Minute)})

	// Back at 100: an older duplicate exists but only the head counts.
	s = Transition(s, SetPosition{Seconds: 100})
	got := Transition(s, AddBookmark{ID: "bm3", Now: base.Add(2 * time.Minute)})

	if len(got.Bookmarks) != 3 {
		t.Errorf("len(Bookmarks) = %d, want 3 (older duplicates not scanned)", len(got.Bookmarks))
	}
}

func TestAddBookmark_SortedByCreatedAtDescending(t *testing.T) {
	s := stateWithTrack(t)
	base := time.Now()

	positions := []float64{10, 50, 90}
	for i, pos := range positions {
		s = Transition(s, SetPosition{Seconds: pos})
		s = Transition(s, AddBookmark{ID: string(rune('a' + i)), Now: base.Add(time.Duration(i) * time.Minute)})
	}

	for i := 1; i < len(s.Bookmarks); i++ {
		if s.Bookmarks[i].CreatedAt.After(s.Bookmarks[i-1].CreatedAt) {
			t.Fatalf("bookmarks not sorted newest-first at index %d", i)
		}
	}
	if s.Bookmarks[0].Position != 90 {
		t.Errorf("head position = %v, want 90 (newest)", s.Bookmarks[0].Position)
	}
}

func TestDeleteBookmark_RemovesByID(t *testing.T) {
	s := stateWithTrack(t)
	s = Transition(s, SetPosition{Seconds: 10})
	s = Transition(s, AddBookmark{ID: "bm1", Now: time.Now()})

	got := Transition(s, DeleteBookmark{ID: "bm1"})

	if len(got.Bookmarks) != 0 {
		t.Errorf("len(Bookmarks) = %d, want 0", len(got.Bookmarks))
	}
}

func TestDeleteBookmark_AbsentID_NoOp(t *testing.T) {
	s := stateWithTrack(t)
	s = Transition(s, AddBookmark{ID: "bm1", Now: time.Now()})

	got := Transition(s, DeleteBookmark{ID: "nope"})

	if len(got.Bookmarks) != 1 {
		t.Errorf("len(Bookmarks) = %d, want 1", len(got.Bookmarks))
	}
}
