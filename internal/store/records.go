package store

import (
	"encoding/json"

	"github.com/abertrand/fable/internal/session"
)

// GetPlayer returns the saved player snapshot, or nil if none exists.
func (m *Manager) GetPlayer() (*PlayerSnapshot, error) {
	raw, err := getRecord(m.db, keyPlayer)
	if err != nil || raw == nil {
		return nil, err
	}
	var snap PlayerSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// SavePlayer persists the player snapshot.
func (m *Manager) SavePlayer(snapshot PlayerSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return setRecord(m.db, keyPlayer, raw)
}

// GetBookmarks returns the saved bookmark list, or nil if none exists.
func (m *Manager) GetBookmarks() ([]session.Bookmark, error) {
	raw, err := getRecord(m.db, keyBookmarks)
	if err != nil || raw == nil {
		return nil, err
	}
	var bookmarks []session.Bookmark
	if err := json.Unmarshal(raw, &bookmarks); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// SaveBookmarks persists the full bookmark list.
func (m *Manager) SaveBookmarks(bookmarks []session.Bookmark) error {
	raw, err := json.Marshal(bookmarks)
	if err != nil {
		return err
	}
	return setRecord(m.db, keyBookmarks, raw)
}
