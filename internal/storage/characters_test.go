package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/arenalab/arena-advisor/internal/roster"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	cfg := DefaultConfig(filepath.Join(t.TempDir(), "advisor.db"))
	cfg.AutoMigrate = true

	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveAndLoadCharacters(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	chars := []roster.Character{
		{ID: "2", Name: "Beta", Skills: []roster.Skill{
			{Name: "Jab", Description: "Deals 20 damage.", Energy: []string{"red"}},
		}},
		{ID: "1", Name: "Alpha"},
		{ID: "", Name: "Invalid"}, // skipped: no id
	}

	if err := db.SaveCharacters(ctx, chars); err != nil {
		t.Fatalf("SaveCharacters() error: %v", err)
	}

	got, err := db.AllCharacters(ctx)
	if err != nil {
		t.Fatalf("AllCharacters() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d characters, want 2", len(got))
	}
	if got[0].Name != "Alpha" || got[1].Name != "Beta" {
		t.Errorf("characters not ordered by name: %s, %s", got[0].Name, got[1].Name)
	}
	if len(got[1].Skills) != 1 || got[1].Skills[0].Name != "Jab" {
		t.Errorf("skills not round-tripped: %+v", got[1].Skills)
	}

	count, err := db.CountCharacters(ctx)
	if err != nil || count != 2 {
		t.Errorf("CountCharacters() = %d, %v, want 2", count, err)
	}
}

func TestSaveCharactersUpserts(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.SaveCharacters(ctx, []roster.Character{{ID: "1", Name: "Old"}}); err != nil {
		t.Fatalf("initial save: %v", err)
	}
	if err := db.SaveCharacters(ctx, []roster.Character{{ID: "1", Name: "New"}}); err != nil {
		t.Fatalf("upsert save: %v", err)
	}

	got, err := db.GetCharacter(ctx, "1")
	if err != nil {
		t.Fatalf("GetCharacter() error: %v", err)
	}
	if got == nil || got.Name != "New" {
		t.Errorf("got %+v, want updated name New", got)
	}

	count, _ := db.CountCharacters(ctx)
	if count != 1 {
		t.Errorf("got %d characters after upsert, want 1", count)
	}
}

func TestGetCharacterMissing(t *testing.T) {
	db := openTestDB(t)

	got, err := db.GetCharacter(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetCharacter() error: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v for a missing id, want nil", got)
	}
}

func TestOwnedRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.SetOwned(ctx, []roster.ID{"3", "1"}); err != nil {
		t.Fatalf("SetOwned() error: %v", err)
	}

	ids, err := db.OwnedIDs(ctx)
	if err != nil {
		t.Fatalf("OwnedIDs() error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "1" || ids[1] != "3" {
		t.Errorf("OwnedIDs() = %v, want [1 3]", ids)
	}

	// Replacing the set drops ids not in the new list.
	if err := db.SetOwned(ctx, []roster.ID{"2"}); err != nil {
		t.Fatalf("SetOwned() replace error: %v", err)
	}
	ids, _ = db.OwnedIDs(ctx)
	if len(ids) != 1 || ids[0] != "2" {
		t.Errorf("OwnedIDs() after replace = %v, want [2]", ids)
	}
}
