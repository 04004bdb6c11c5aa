package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tessellated/extstore/internal/value"
)

// Load returns the stored object for extID, or (nil, nil) if no record
// exists. A record whose bytes fail to parse as a JSON object is also
// reported as absent: corruption degrades to empty rather than erroring.
func (s *Store) Load(ctx context.Context, extID string) (*value.Object, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM ext_data
		WHERE ext_id = ?
	`, extID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load record %q: %w", extID, err)
	}

	obj, err := value.ParseObject([]byte(data))
	if err != nil {
		// Theoretically impossible to hit through Save; treat it as the
		// record not existing rather than failing the whole operation.
		return nil, nil
	}
	return obj, nil
}

// Save writes obj as the complete record for extID, replacing any prior
// record.
func (s *Store) Save(ctx context.Context, extID string, obj *value.Object) error {
	data, err := value.Encode(obj)
	if err != nil {
		return fmt.Errorf("save record %q: %w", extID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ext_data (ext_id, data)
		VALUES (?, ?)
		ON CONFLICT(ext_id) DO UPDATE SET data = excluded.data
	`, extID, string(data))
	if err != nil {
		return fmt.Errorf("save record %q: %w", extID, err)
	}
	return nil
}

// Delete removes the record for extID entirely. Deleting a record that does
// not exist is not an error.
func (s *Store) Delete(ctx context.Context, extID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM ext_data
		WHERE ext_id = ?
	`, extID)
	if err != nil {
		return fmt.Errorf("delete record %q: %w", extID, err)
	}
	return nil
}
