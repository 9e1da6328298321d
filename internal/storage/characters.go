package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arenalab/arena-advisor/internal/roster"
)

// SaveCharacters upserts a batch of characters in a single transaction.
// Each character is stored as its raw JSON document keyed by id.
func (db *DB) SaveCharacters(ctx context.Context, chars []roster.Character) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO characters (id, name, data, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			data = excluded.data,
			updated_at = CURRENT_TIMESTAMP
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, c := range chars {
		if c.ID == "" {
			continue
		}
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal character %s: %w", c.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, string(c.ID), c.Name, string(data)); err != nil {
			return fmt.Errorf("failed to save character %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit characters: %w", err)
	}
	return nil
}

// GetCharacter retrieves a character by id. Returns nil when not found.
func (db *DB) GetCharacter(ctx context.Context, id roster.ID) (*roster.Character, error) {
	var data string
	err := db.conn.QueryRowContext(ctx,
		`SELECT data FROM characters WHERE id = ?`, string(id)).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	var c roster.Character
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, fmt.Errorf("failed to decode character %s: %w", id, err)
	}
	return &c, nil
}

// AllCharacters retrieves every cached character ordered by name.
func (db *DB) AllCharacters(ctx context.Context) ([]roster.Character, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT data FROM characters ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query characters: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var chars []roster.Character
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan character: %w", err)
		}
		var c roster.Character
		if err := json.Unmarshal([]byte(data), &c); err != nil {
			return nil, fmt.Errorf("failed to decode character: %w", err)
		}
		chars = append(chars, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating characters: %w", err)
	}
	return chars, nil
}

// CountCharacters returns the number of cached characters.
func (db *DB) CountCharacters(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM characters`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count characters: %w", err)
	}
	return count, nil
}

// LastUpdated returns the most recent character update time, or the zero
// time when the cache is empty.
func (db *DB) LastUpdated(ctx context.Context) (time.Time, error) {
	var ts sql.NullString
	err := db.conn.QueryRowContext(ctx,
		`SELECT MAX(updated_at) FROM characters`).Scan(&ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get last update time: %w", err)
	}
	if !ts.Valid || ts.String == "" {
		return time.Time{}, nil
	}

	parsed, err := time.Parse("2006-01-02 15:04:05", ts.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse last update time: %w", err)
	}
	return parsed, nil
}

// SetOwned replaces the owned-character set.
func (db *DB) SetOwned(ctx context.Context, ids []roster.ID) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM owned_characters`); err != nil {
		return fmt.Errorf("failed to clear owned characters: %w", err)
	}
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO owned_characters (character_id) VALUES (?)`, string(id)); err != nil {
			return fmt.Errorf("failed to mark character %s owned: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit owned characters: %w", err)
	}
	return nil
}

// OwnedIDs returns the owned-character ids.
func (db *DB) OwnedIDs(ctx context.Context) ([]roster.ID, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT character_id FROM owned_characters ORDER BY character_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query owned characters: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []roster.ID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan owned character: %w", err)
		}
		ids = append(ids, roster.ID(id))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating owned characters: %w", err)
	}
	return ids, nil
}
