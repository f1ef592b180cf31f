package archive

import (
	"database/sql"
	"fmt"

	"github.com/okiba/debugbar/internal/capture"
)

// Recent returns the newest limit entries, most recent first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, captured_at, category, type, message, file, line, stack, log_line
		 FROM captures ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent captures: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// RecentByCategory returns the newest limit entries in one category, most
// recent first.
func (s *Store) RecentByCategory(cat capture.Category, limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, captured_at, category, type, message, file, line, stack, log_line
		 FROM captures WHERE category = ? ORDER BY id DESC LIMIT ?`, string(cat), limit)
	if err != nil {
		return nil, fmt.Errorf("querying captures by category: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// CountByCategory returns how many archived entries each category holds.
func (s *Store) CountByCategory() (map[capture.Category]int, error) {
	rows, err := s.db.Query("SELECT category, COUNT(*) FROM captures GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("counting captures: %w", err)
	}
	defer rows.Close()

	counts := make(map[capture.Category]int, 4)
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, fmt.Errorf("scanning count row: %w", err)
		}
		counts[capture.Category(cat)] = n
	}
	return counts, rows.Err()
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var out []Entry
	for rows.Next() {
		var e Entry
		var cat string
		err := rows.Scan(&e.ID, &e.Event.Timestamp, &cat, &e.Event.Type,
			&e.Event.Message, &e.Event.File, &e.Event.Line, &e.Event.Stack, &e.LogLine)
		if err != nil {
			return nil, fmt.Errorf("scanning capture row: %w", err)
		}
		e.Category = capture.Category(cat)
		out = append(out, e)
	}
	return out, rows.Err()
}
