package db_test

import (
	"context"
	"testing"
	"testing/fstest"

	dbfs "github.com/garnizeh/talentdesk/db"
	"github.com/garnizeh/talentdesk/internal/db"
)

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()

	d, err := db.New(ctx, ":memory:", nil)
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	defer d.Close()

	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}

	var count int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("scan schema_migrations count: %v", err)
	}
	if count < 1 {
		t.Fatalf("expected at least 1 migration recorded, got %d", count)
	}

	var name string
	if err := d.QueryRow(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name='kv_entries'`).Scan(&name); err != nil {
		t.Fatalf("expected kv_entries table exists: %v", err)
	}
}

func TestMigrate_OrderAndSkipNonSQL(t *testing.T) {
	ctx := context.Background()

	d, err := db.New(ctx, ":memory:", nil)
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	defer d.Close()

	fsys := fstest.MapFS{
		"migrations/0002_add.sql":  {Data: []byte(`INSERT INTO things (name) VALUES ('second');`)},
		"migrations/0001_init.sql": {Data: []byte(`CREATE TABLE things (name TEXT);`)},
		"migrations/README.md":     {Data: []byte(`not a migration`)},
	}

	if err := db.Migrate(ctx, d, fsys); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	var count int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 recorded migrations got %d", count)
	}
}

func TestMigrate_MissingDir(t *testing.T) {
	ctx := context.Background()

	d, err := db.New(ctx, ":memory:", nil)
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	defer d.Close()

	if err := db.Migrate(ctx, d, fstest.MapFS{}); err == nil {
		t.Fatalf("expected error when migrations dir is missing")
	}
}
