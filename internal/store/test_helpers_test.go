package store

import (
	"path/filepath"
	"testing"
)

// createTestStore creates a store backed by a temp database for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// insertRawRecord writes record bytes directly, bypassing Save. Used to
// simulate corruption.
func insertRawRecord(t *testing.T, s *Store, extID, data string) {
	t.Helper()
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO ext_data (ext_id, data) VALUES (?, ?)",
		extID, data,
	)
	if err != nil {
		t.Fatalf("insert raw record: %v", err)
	}
}
