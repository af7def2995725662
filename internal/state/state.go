// Package state persists a player snapshot (playlist, position,
// modes) across sessions in a small sqlite database.
package state

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	dbutil "github.com/llehouerou/reel/internal/db"
	"github.com/llehouerou/reel/internal/playlist"
	"github.com/llehouerou/reel/internal/timeline"
)

const (
	appName    = "reel"
	dbFileName = "reel.db"
)

// Manager owns the database handle.
type Manager struct {
	db *sql.DB
}

// Open opens (creating if needed) the default state database.
func Open() (*Manager, error) {
	path := filepath.Join(xdg.DataHome, appName, dbFileName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return OpenAt(path)
}

// OpenAt opens the state database at the given path. Tests use
// ":memory:".
func OpenAt(path string) (*Manager, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Manager{db: db}, nil
}

// Close closes the database.
func (m *Manager) Close() error {
	return m.db.Close()
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS player_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			current_index INTEGER NOT NULL,
			position_ms INTEGER NOT NULL,
			repeat_mode INTEGER NOT NULL,
			shuffle INTEGER NOT NULL,
			play_when_ready INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS playlist_items (
			position INTEGER PRIMARY KEY,
			id TEXT NOT NULL,
			uri TEXT NOT NULL,
			title TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			seekable INTEGER NOT NULL,
			dynamic INTEGER NOT NULL
		);
	`)
	return err
}

// Snapshot is the persisted part of a player session. Ad schedules and
// live configurations are runtime data and are not stored.
type Snapshot struct {
	Items         []playlist.Item
	CurrentIndex  int
	Position      time.Duration
	Repeat        timeline.RepeatMode
	Shuffle       bool
	PlayWhenReady bool
}

// Save replaces the stored snapshot.
func (m *Manager) Save(s Snapshot) error {
	return dbutil.WithTx(m.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM player_state`); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM playlist_items`); err != nil {
			return err
		}
		_, err := tx.Exec(`
			INSERT INTO player_state (id, current_index, position_ms, repeat_mode, shuffle, play_when_ready)
			VALUES (1, ?, ?, ?, ?, ?)`,
			s.CurrentIndex, s.Position.Milliseconds(), int(s.Repeat), s.Shuffle, s.PlayWhenReady)
		if err != nil {
			return err
		}
		for i, item := range s.Items {
			durationMs := int64(-1)
			if item.Duration != timeline.TimeUnset {
				durationMs = item.Duration.Milliseconds()
			}
			_, err := tx.Exec(`
				INSERT INTO playlist_items (position, id, uri, title, duration_ms, seekable, dynamic)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				i, item.ID, item.URI, item.Title, durationMs, item.Seekable, item.Dynamic)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Load returns the stored snapshot, or nil when none was saved.
func (m *Manager) Load() (*Snapshot, error) {
	var s Snapshot
	var positionMs int64
	var repeatMode int
	row := m.db.QueryRow(`SELECT current_index, position_ms, repeat_mode, shuffle, play_when_ready FROM player_state WHERE id = 1`)
	err := row.Scan(&s.CurrentIndex, &positionMs, &repeatMode, &s.Shuffle, &s.PlayWhenReady)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.Position = time.Duration(positionMs) * time.Millisecond
	s.Repeat = timeline.RepeatMode(repeatMode)

	rows, err := m.db.Query(`SELECT id, uri, title, duration_ms, seekable, dynamic FROM playlist_items ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var item playlist.Item
		var durationMs int64
		if err := rows.Scan(&item.ID, &item.URI, &item.Title, &durationMs, &item.Seekable, &item.Dynamic); err != nil {
			return nil, err
		}
		if durationMs < 0 {
			item.Duration = timeline.TimeUnset
		} else {
			item.Duration = time.Duration(durationMs) * time.Millisecond
		}
		s.Items = append(s.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}
