package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const testSchema = `
CREATE TABLE users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    tg_id BIGINT NOT NULL UNIQUE,
    username TEXT NOT NULL DEFAULT '',
    full_name TEXT NOT NULL DEFAULT '',
    first_seen BIGINT NOT NULL,
    structures_count BIGINT NOT NULL DEFAULT 0
);
CREATE TABLE snippets (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_tg_id BIGINT NOT NULL REFERENCES users (tg_id),
    text TEXT NOT NULL,
    created_at BIGINT NOT NULL,
    kept BOOLEAN NOT NULL DEFAULT FALSE
);`

func newTestStore(t *testing.T) *Store {
	t.Helper()
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return New(db)
}

func TestUpsertUserPreservesFirstSeenAndCounter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.UpsertUser(ctx, 100, "alice", "Alice A"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	first, err := s.GetUser(ctx, 100)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first.Username != "alice" || first.FullName != "Alice A" {
		t.Fatalf("unexpected profile: %+v", first)
	}

	if _, err := s.RecordSnippet(ctx, 100, "x"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.UpsertUser(ctx, 100, "alice2", "Alice B"); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	again, err := s.GetUser(ctx, 100)
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if again.Username != "alice2" || again.FullName != "Alice B" {
		t.Errorf("name fields not refreshed: %+v", again)
	}
	if again.FirstSeen != first.FirstSeen {
		t.Errorf("first_seen changed: %d -> %d", first.FirstSeen, again.FirstSeen)
	}
	if again.StructuresCount != 1 {
		t.Errorf("counter reset by upsert: %d", again.StructuresCount)
	}
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetUser(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRecordSnippetIncrementsCounterAndOrders(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.UpsertUser(ctx, 200, "bob", "Bob"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	id1, err := s.RecordSnippet(ctx, 200, "first")
	if err != nil {
		t.Fatalf("record 1: %v", err)
	}
	id2, err := s.RecordSnippet(ctx, 200, "second")
	if err != nil {
		t.Fatalf("record 2: %v", err)
	}
	if id2 <= id1 {
		t.Errorf("ids not increasing: %d then %d", id1, id2)
	}

	u, err := s.GetUser(ctx, 200)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u.StructuresCount != 2 {
		t.Errorf("counter = %d, want 2", u.StructuresCount)
	}

	rows, err := s.ListSnippets(ctx, 200)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	if rows[0].Text != "second" || rows[1].Text != "first" {
		t.Errorf("not newest-first: %q then %q", rows[0].Text, rows[1].Text)
	}
	if rows[0].Kept || rows[1].Kept {
		t.Error("new snippets must start unkept")
	}
}

func TestRecordSnippetUnknownUser(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.RecordSnippet(context.Background(), 300, "orphan"); err == nil {
		t.Fatal("expected error for unknown user")
	}
}

func TestMarkKeptAndOwnership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.UpsertUser(ctx, 400, "", "Dana"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	id, err := s.RecordSnippet(ctx, 400, "keep me")
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if err := s.MarkKept(ctx, id, 401); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign mark err = %v, want ErrNotFound", err)
	}
	if err := s.MarkKept(ctx, id, 400); err != nil {
		t.Fatalf("mark: %v", err)
	}

	row, err := s.GetSnippet(ctx, id)
	if err != nil {
		t.Fatalf("get snippet: %v", err)
	}
	if !row.Kept {
		t.Error("kept flag not set")
	}
}

func TestMarkLatestKeptPicksNewest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.UpsertUser(ctx, 500, "", "Eve"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	old, err := s.RecordSnippet(ctx, 500, "old")
	if err != nil {
		t.Fatalf("record old: %v", err)
	}
	fresh, err := s.RecordSnippet(ctx, 500, "fresh")
	if err != nil {
		t.Fatalf("record fresh: %v", err)
	}

	got, err := s.MarkLatestKept(ctx, 500)
	if err != nil {
		t.Fatalf("mark latest: %v", err)
	}
	if got != fresh {
		t.Errorf("marked %d, want newest %d", got, fresh)
	}
	oldRow, err := s.GetSnippet(ctx, old)
	if err != nil {
		t.Fatalf("get old: %v", err)
	}
	if oldRow.Kept {
		t.Error("older snippet must stay unkept")
	}
}

func TestMarkLatestKeptEmpty(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.MarkLatestKept(context.Background(), 600); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteSnippet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.UpsertUser(ctx, 700, "", "Finn"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	id, err := s.RecordSnippet(ctx, 700, "gone soon")
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if err := s.DeleteSnippet(ctx, id, 701); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign delete err = %v, want ErrNotFound", err)
	}
	if err := s.DeleteSnippet(ctx, id, 700); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetSnippet(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete err = %v, want ErrNotFound", err)
	}
	if err := s.DeleteSnippet(ctx, id, 700); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestCountsAndRecentUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i, name := range []string{"g1", "g2", "g3"} {
		if err := s.UpsertUser(ctx, int64(800+i), name, name); err != nil {
			t.Fatalf("upsert %s: %v", name, err)
		}
	}
	if _, err := s.RecordSnippet(ctx, 801, "one"); err != nil {
		t.Fatalf("record: %v", err)
	}

	users, err := s.CountUsers(ctx)
	if err != nil || users != 3 {
		t.Fatalf("CountUsers = %d, %v; want 3", users, err)
	}
	snips, err := s.CountSnippets(ctx)
	if err != nil || snips != 1 {
		t.Fatalf("CountSnippets = %d, %v; want 1", snips, err)
	}
	recent, err := s.CountUsersSince(ctx, 0)
	if err != nil || recent != 3 {
		t.Fatalf("CountUsersSince = %d, %v; want 3", recent, err)
	}

	listed, err := s.ListRecentUsers(ctx, 2)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("len = %d, want 2", len(listed))
	}
	// Same first_seen second for all three, so id DESC breaks the tie.
	if listed[0].TgID != 802 {
		t.Errorf("first listed = %d, want 802", listed[0].TgID)
	}
}
