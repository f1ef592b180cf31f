package archive

import (
	"database/sql"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/okiba/debugbar/internal/capture"
	"github.com/okiba/debugbar/internal/logformat"
)

const (
	writeChannelSize = 1000
	batchSize        = 50
	flushInterval    = 100 * time.Millisecond
)

// Entry is one archived capture: the event plus its category and the
// formatted log block as it was handed to the sink.
type Entry struct {
	ID       int64
	Category capture.Category
	Event    capture.Event
	LogLine  string
}

// Store is the sqlite-backed archive. Writes go through a buffered channel
// to a single writer goroutine that batches inserts; when the channel is
// full, writes are dropped and counted rather than blocking a request.
type Store struct {
	db            *sql.DB
	writeChan     chan Entry
	doneChan      chan struct{}
	closed        atomic.Bool
	droppedWrites atomic.Int64
}

// Open opens the archive at dbPath, prunes entries older than
// retentionDays, and starts the writer goroutine.
func Open(dbPath string, retentionDays int) (*Store, error) {
	db, err := OpenDB(dbPath)
	if err != nil {
		return nil, err
	}

	s := &Store{
		db:        db,
		writeChan: make(chan Entry, writeChannelSize),
		doneChan:  make(chan struct{}),
	}

	if retentionDays > 0 {
		if err := s.pruneOlderThan(retentionDays); err != nil {
			log.Printf("debugbar: archive prune failed: %v", err)
		}
	}

	go s.writerLoop()
	return s, nil
}

// Append queues the event for archival. It never blocks: when the writer
// is behind, the entry is dropped and counted.
func (s *Store) Append(cat capture.Category, ev capture.Event, logLine string) {
	if s.closed.Load() {
		s.droppedWrites.Add(1)
		return
	}
	select {
	case s.writeChan <- Entry{Category: cat, Event: ev, LogLine: logLine}:
	default:
		s.droppedWrites.Add(1)
	}
}

// DroppedWrites returns how many entries were dropped because the writer
// could not keep up or the store was closed.
func (s *Store) DroppedWrites() int64 {
	return s.droppedWrites.Load()
}

// Close flushes pending writes and closes the database. Appends after
// Close are dropped.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	close(s.writeChan)
	<-s.doneChan
	return s.db.Close()
}

func (s *Store) writerLoop() {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	batch := make([]Entry, 0, batchSize)
	for {
		select {
		case e, ok := <-s.writeChan:
			if !ok {
				s.flush(batch)
				close(s.doneChan)
				return
			}
			batch = append(batch, e)
			if len(batch) >= batchSize {
				s.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.flush(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *Store) flush(batch []Entry) {
	if len(batch) == 0 {
		return
	}

	tx, err := s.db.Begin()
	if err != nil {
		log.Printf("debugbar: archive write failed: %v", err)
		return
	}
	for _, e := range batch {
		_, err := tx.Exec(
			`INSERT INTO captures (captured_at, category, type, message, file, line, stack, log_line)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.Event.Timestamp, string(e.Category), e.Event.Type, e.Event.Message,
			e.Event.File, e.Event.Line, e.Event.Stack, e.LogLine,
		)
		if err != nil {
			log.Printf("debugbar: archive insert failed: %v", err)
			_ = tx.Rollback()
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Printf("debugbar: archive commit failed: %v", err)
	}
}

// pruneOlderThan deletes entries captured more than days ago. The
// captured_at layout sorts lexicographically, so a string comparison
// against the cutoff is sufficient.
func (s *Store) pruneOlderThan(days int) error {
	cutoff := time.Now().AddDate(0, 0, -days).Format(logformat.TimestampLayout)
	_, err := s.db.Exec("DELETE FROM captures WHERE captured_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("pruning archive: %w", err)
	}
	return nil
}
