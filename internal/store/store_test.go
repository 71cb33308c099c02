package store

import (
	"testing"
	"time"

	"github.com/abertrand/fable/internal/session"
)

// setupTestStore opens an in-memory store with the schema initialized.
func setupTestStore(t *testing.T) *Manager {
	t.Helper()

	m, err := OpenPath(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestGetPlayer_Empty(t *testing.T) {
	m := setupTestStore(t)

	snap, err := m.GetPlayer()
	if err != nil {
		t.Fatalf("GetPlayer failed: %v", err)
	}
	if snap != nil {
		t.Errorf("expected nil snapshot on empty store, got %+v", snap)
	}
}

func TestSaveAndGetPlayer(t *testing.T) {
	m := setupTestStore(t)

	saved := PlayerSnapshot{
		BookID:       "hp1",
		ChapterNum:   3,
		Position:     127.5,
		PlaybackRate: 1.5,
		Volume:       0.8,
	}
	if err := m.SavePlayer(saved); err != nil {
		t.Fatalf("SavePlayer failed: %v", err)
	}

	got, err := m.GetPlayer()
	if err != nil {
		t.Fatalf("GetPlayer failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetPlayer returned nil after save")
	}
	if *got != saved {
		t.Errorf("snapshot = %+v, want %+v", *got, saved)
	}
}

func TestSavePlayer_Overwrites(t *testing.T) {
	m := setupTestStore(t)

	_ = m.SavePlayer(PlayerSnapshot{BookID: "a", ChapterNum: 1, Position: 10})
	if err := m.SavePlayer(PlayerSnapshot{BookID: "b", ChapterNum: 2, Position: 20}); err != nil {
		t.Fatalf("SavePlayer failed: %v", err)
	}

	got, err := m.GetPlayer()
	if err != nil {
		t.Fatalf("GetPlayer failed: %v", err)
	}
	if got.BookID != "b" || got.ChapterNum != 2 {
		t.Errorf("snapshot = %+v, want latest record", got)
	}
}

func TestGetBookmarks_Empty(t *testing.T) {
	m := setupTestStore(t)

	bookmarks, err := m.GetBookmarks()
	if err != nil {
		t.Fatalf("GetBookmarks failed: %v", err)
	}
	if bookmarks != nil {
		t.Errorf("expected nil bookmarks on empty store, got %v", bookmarks)
	}
}

func TestSaveAndGetBookmarks(t *testing.T) {
	m := setupTestStore(t)

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	saved := []session.Bookmark{
		{ID: "bm2", BookID: "hp1", BookTitle: "The Philosopher's Stone", ChapterNum: 2, ChapterTitle: "The Vanishing Glass", Position: 88.25, CreatedAt: created.Add(time.Hour)},
		{ID: "bm1", BookID: "hp1", BookTitle: "The Philosopher's Stone", ChapterNum: 1, ChapterTitle: "The Boy Who Lived", Position: 10, CreatedAt: created},
	}
	if err := m.SaveBookmarks(saved); err != nil {
		t.Fatalf("SaveBookmarks failed: %v", err)
	}

	got, err := m.GetBookmarks()
	if err != nil {
		t.Fatalf("GetBookmarks failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(bookmarks) = %d, want 2", len(got))
	}
	if got[0].ID != "bm2" || got[1].ID != "bm1" {
		t.Error("bookmark order should survive the round trip")
	}
	if !got[1].CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got[1].CreatedAt, created)
	}
}

func TestOpenPath_CreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	m, err := OpenPath(dir + "/nested/fable.db")
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	defer m.Close()

	if err := m.SavePlayer(PlayerSnapshot{BookID: "a", ChapterNum: 1}); err != nil {
		t.Errorf("SavePlayer on fresh db failed: %v", err)
	}
}
