// Package storage persists users and their generated snippets. Queries are
// written with ? placeholders and rebound for the active driver, so the same
// store runs against Postgres in production and SQLite in tests.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/srchub/structbot/internal/model"
)

// Store wraps the database handle with the bot's persistence operations.
type Store struct {
	db *sqlx.DB
}

// New constructs a Store over an open database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// UpsertUser creates the user on first contact and refreshes the name fields
// on every later contact. first_seen and structures_count survive updates.
func (s *Store) UpsertUser(ctx context.Context, tgID int64, username, fullName string) error {
	q := s.db.Rebind(`
		INSERT INTO users (tg_id, username, full_name, first_seen, structures_count)
		VALUES (?, ?, ?, ?, 0)
		ON CONFLICT (tg_id) DO UPDATE
		SET username = EXCLUDED.username, full_name = EXCLUDED.full_name`)
	if _, err := s.db.ExecContext(ctx, q, tgID, username, fullName, time.Now().Unix()); err != nil {
		return fmt.Errorf("upsert user %d: %w", tgID, err)
	}
	return nil
}

// GetUser returns the profile for the given Telegram id.
func (s *Store) GetUser(ctx context.Context, tgID int64) (*model.User, error) {
	var u model.User
	q := s.db.Rebind(`SELECT * FROM users WHERE tg_id = ?`)
	if err := s.db.GetContext(ctx, &u, q, tgID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", tgID, err)
	}
	return &u, nil
}

// RecordSnippet stores a freshly generated snippet and bumps the owner's
// counter in the same transaction. Returns the new snippet id.
func (s *Store) RecordSnippet(ctx context.Context, tgID int64, text string) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("record snippet: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	insert := s.db.Rebind(`
		INSERT INTO snippets (user_tg_id, text, created_at, kept)
		VALUES (?, ?, ?, FALSE)
		RETURNING id`)
	if err := tx.QueryRowxContext(ctx, insert, tgID, text, time.Now().Unix()).Scan(&id); err != nil {
		return 0, fmt.Errorf("record snippet: insert: %w", err)
	}

	bump := s.db.Rebind(`UPDATE users SET structures_count = structures_count + 1 WHERE tg_id = ?`)
	res, err := tx.ExecContext(ctx, bump, tgID)
	if err != nil {
		return 0, fmt.Errorf("record snippet: bump counter: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, fmt.Errorf("record snippet: unknown user %d", tgID)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("record snippet: commit: %w", err)
	}
	return id, nil
}

// GetSnippet returns a snippet by id regardless of owner. Callers enforce
// ownership before acting on it.
func (s *Store) GetSnippet(ctx context.Context, id int64) (*model.Snippet, error) {
	var row model.Snippet
	q := s.db.Rebind(`SELECT * FROM snippets WHERE id = ?`)
	if err := s.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snippet %d: %w", id, err)
	}
	return &row, nil
}

// ListSnippets returns the user's snippets, newest first.
func (s *Store) ListSnippets(ctx context.Context, tgID int64) ([]model.Snippet, error) {
	var rows []model.Snippet
	q := s.db.Rebind(`
		SELECT * FROM snippets
		WHERE user_tg_id = ?
		ORDER BY created_at DESC, id DESC`)
	if err := s.db.SelectContext(ctx, &rows, q, tgID); err != nil {
		return nil, fmt.Errorf("list snippets for %d: %w", tgID, err)
	}
	return rows, nil
}

// MarkKept flips the kept flag on a specific snippet owned by tgID.
func (s *Store) MarkKept(ctx context.Context, id, tgID int64) error {
	q := s.db.Rebind(`UPDATE snippets SET kept = TRUE WHERE id = ? AND user_tg_id = ?`)
	res, err := s.db.ExecContext(ctx, q, id, tgID)
	if err != nil {
		return fmt.Errorf("mark kept %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkLatestKept flips the kept flag on the user's most recent snippet. Used
// when the save confirmation carries no snippet id.
func (s *Store) MarkLatestKept(ctx context.Context, tgID int64) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("mark latest kept: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	sel := s.db.Rebind(`
		SELECT id FROM snippets
		WHERE user_tg_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`)
	if err := tx.GetContext(ctx, &id, sel, tgID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("mark latest kept: select: %w", err)
	}

	upd := s.db.Rebind(`UPDATE snippets SET kept = TRUE WHERE id = ?`)
	if _, err := tx.ExecContext(ctx, upd, id); err != nil {
		return 0, fmt.Errorf("mark latest kept: update: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("mark latest kept: commit: %w", err)
	}
	return id, nil
}

// DeleteSnippet removes a snippet owned by tgID.
func (s *Store) DeleteSnippet(ctx context.Context, id, tgID int64) error {
	q := s.db.Rebind(`DELETE FROM snippets WHERE id = ? AND user_tg_id = ?`)
	res, err := s.db.ExecContext(ctx, q, id, tgID)
	if err != nil {
		return fmt.Errorf("delete snippet %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountUsers returns the total number of known users.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// CountUsersSince returns how many users were first seen at or after the
// given unix timestamp.
func (s *Store) CountUsersSince(ctx context.Context, since int64) (int64, error) {
	var n int64
	q := s.db.Rebind(`SELECT COUNT(*) FROM users WHERE first_seen >= ?`)
	if err := s.db.GetContext(ctx, &n, q, since); err != nil {
		return 0, fmt.Errorf("count users since %d: %w", since, err)
	}
	return n, nil
}

// CountSnippets returns the total number of stored snippets.
func (s *Store) CountSnippets(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM snippets`); err != nil {
		return 0, fmt.Errorf("count snippets: %w", err)
	}
	return n, nil
}

// ListRecentUsers returns up to limit users ordered by most recent first
// contact.
func (s *Store) ListRecentUsers(ctx context.Context, limit int) ([]model.User, error) {
	var rows []model.User
	q := s.db.Rebind(`
		SELECT * FROM users
		ORDER BY first_seen DESC, id DESC
		LIMIT ?`)
	if err := s.db.SelectContext(ctx, &rows, q, limit); err != nil {
		return nil, fmt.Errorf("list recent users: %w", err)
	}
	return rows, nil
}
