package store

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "fable"
	dbFileName = "fable.db"

	keyPlayer    = "player"
	keyBookmarks = "bookmarks"
)

// Manager is the sqlite-backed store.
type Manager struct {
	db *sql.DB
}

// Open opens the store at the default xdg data path.
func Open() (*Manager, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the store at an explicit path.
func OpenPath(dbPath string) (*Manager, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL
		)
	`)
	return err
}

// Close closes the underlying database.
func (m *Manager) Close() error {
	return m.db.Close()
}

// getRecord returns the raw payload for key. Absence is (nil, nil), not
// an error.
func getRecord(db *sql.DB, key string) ([]byte, error) {
	var value []byte
	row := db.QueryRow(`SELECT value FROM records WHERE key = ?`, key)
	err := row.Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func setRecord(db *sql.DB, key string, value []byte) error {
	_, err := db.Exec(`
		INSERT INTO records (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
