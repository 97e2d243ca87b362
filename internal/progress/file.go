package progress

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/example/recall/pkg/models"
)

// DefaultFilename returns the progress file name for an engine. Each
// engine keeps its own file so the two never read each other's state.
func DefaultFilename(engine string) string {
	return "progress_" + engine + ".json"
}

// fileDocument is the on-disk layout of a progress file
type fileDocument struct {
	Cards       map[string]models.CardState `json:"cards"`
	Sessions    int                         `json:"sessions"`
	LastSession time.Time                   `json:"last_session"`
}

// rawDocument defers card decoding so a single corrupt record does not
// take the whole file down with it
type rawDocument struct {
	Cards       map[string]json.RawMessage `json:"cards"`
	Sessions    int                        `json:"sessions"`
	LastSession time.Time                  `json:"last_session"`
}

// FileStore keeps all progress in one JSON document. Every mutation
// rewrites the file atomically: tmp file, fsync, rename.
type FileStore struct {
	path  string
	log   *slog.Logger
	cards map[string]models.CardState
	meta  models.SessionMeta
}

var _ Store = (*FileStore)(nil)

// NewFileStore opens the progress file at path, creating state in
// memory if the file does not exist yet. Records that fail to parse are
// skipped with a warning; the affected cards simply count as new again.
func NewFileStore(path string, log *slog.Logger) (*FileStore, error) {
	if log == nil {
		log = slog.Default()
	}
	s := &FileStore{
		path:  path,
		log:   log,
		cards: make(map[string]models.CardState),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("progress: read %s: %w", path, err)
	}

	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Warn("progress file unreadable, starting fresh",
			"path", path, "error", err)
		return s, nil
	}
	s.meta = models.SessionMeta{Sessions: doc.Sessions, LastSession: doc.LastSession}

	for id, raw := range doc.Cards {
		var state models.CardState
		if err := json.Unmarshal(raw, &state); err != nil {
			cerr := &CorruptStateError{CardID: id, Err: err}
			s.log.Warn("skipping corrupt card state", "card_id", id, "error", cerr)
			continue
		}
		s.cards[id] = state
	}

	return s, nil
}

// Get implements Store
func (s *FileStore) Get(cardID string) (*models.CardState, error) {
	state, ok := s.cards[cardID]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

// Put implements Store
func (s *FileStore) Put(cardID string, state models.CardState) error {
	s.cards[cardID] = state
	return s.save()
}

// Snapshot implements Store
func (s *FileStore) Snapshot() (map[string]models.CardState, error) {
	snapshot := make(map[string]models.CardState, len(s.cards))
	for id, state := range s.cards {
		snapshot[id] = state
	}
	return snapshot, nil
}

// SessionMeta implements Store
func (s *FileStore) SessionMeta() (models.SessionMeta, error) {
	return s.meta, nil
}

// RecordSession implements Store
func (s *FileStore) RecordSession(rec models.SessionRecord) error {
	s.meta.Sessions++
	s.meta.LastSession = rec.FinishedAt
	return s.save()
}

// Reset implements Store
func (s *FileStore) Reset() error {
	s.cards = make(map[string]models.CardState)
	s.meta = models.SessionMeta{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("progress: remove %s: %w", s.path, err)
	}
	return nil
}

// Close implements Store
func (s *FileStore) Close() error { return nil }

// save rewrites the whole document atomically
func (s *FileStore) save() error {
	doc := fileDocument{
		Cards:       s.cards,
		Sessions:    s.meta.Sessions,
		LastSession: s.meta.LastSession,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("progress: marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("progress: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".progress-tmp-*")
	if err != nil {
		return fmt.Errorf("progress: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("progress: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("progress: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("progress: close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("progress: rename: %w", err)
	}
	success = true
	return nil
}
