package store

import "github.com/abertrand/fable/internal/session"

// Mock is a test double for the store.
type Mock struct {
	player    *PlayerSnapshot
	bookmarks []session.Bookmark

	getErr  error
	saveErr error

	savePlayerCalls    int
	saveBookmarksCalls int
	closed             bool
}

// NewMock creates a new mock store for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) GetPlayer() (*PlayerSnapshot, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.player, nil
}

func (m *Mock) SavePlayer(snapshot PlayerSnapshot) error {
	m.savePlayerCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.player = &snapshot
	return nil
}

func (m *Mock) GetBookmarks() ([]session.Bookmark, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.bookmarks, nil
}

func (m *Mock) SaveBookmarks(bookmarks []session.Bookmark) error {
	m.saveBookmarksCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.bookmarks = bookmarks
	return nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetPlayer(snapshot *PlayerSnapshot) { m.player = snapshot }

func (m *Mock) SetBookmarks(bookmarks []session.Bookmark) { m.bookmarks = bookmarks }

func (m *Mock) SetGetError(err error) { m.getErr = err }

func (m *Mock) SetSaveError(err error) { m.saveErr = err }

func (m *Mock) Player() *PlayerSnapshot { return m.player }

func (m *Mock) Bookmarks() []session.Bookmark { return m.bookmarks }

func (m *Mock) SavePlayerCalls() int { return m.savePlayerCalls }

func (m *Mock) SaveBookmarksCalls() int { return m.saveBookmarksCalls }

func (m *Mock) Closed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
