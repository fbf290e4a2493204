package history

import (
	"fmt"
	"time"
)

// Event values stored in Entry.Event.
const (
	EventAdded   = "added"
	EventRemoved = "removed"
)

// Entry is one recorded flash lifecycle event.
type Entry struct {
	ID        int64
	MessageID string
	Scope     string
	Category  string
	Content   string
	Event     string
	Reason    string
	At        time.Time
}

// Record inserts an entry. A zero At is stamped with the current time.
func (db *DB) Record(e *Entry) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	res, err := db.Exec(`
		INSERT INTO flash_history (message_id, scope, category, content, event, reason, at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.MessageID, e.Scope, e.Category, e.Content, e.Event, e.Reason, e.At.UnixMilli())
	if err != nil {
		return fmt.Errorf("record %s: %w", e.Event, err)
	}
	e.ID, _ = res.LastInsertId()
	return nil
}

// Recent returns the newest entries first.
func (db *DB) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(`
		SELECT id, message_id, scope, category, content, event, reason, at
		FROM flash_history
		ORDER BY at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at int64
		if err := rows.Scan(&e.ID, &e.MessageID, &e.Scope, &e.Category, &e.Content, &e.Event, &e.Reason, &at); err != nil {
			return nil, err
		}
		e.At = time.UnixMilli(at)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ReasonCounts returns how many removals each reason accounts for.
func (db *DB) ReasonCounts() (map[string]int, error) {
	rows, err := db.Query(`
		SELECT reason, COUNT(*) FROM flash_history
		WHERE event = ?
		GROUP BY reason`, EventRemoved)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var reason string
		var n int
		if err := rows.Scan(&reason, &n); err != nil {
			return nil, err
		}
		counts[reason] = n
	}
	return counts, rows.Err()
}
