package out_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	scaleout "voltref/internal/modules/scale/adapter/out"
	"voltref/internal/modules/scale/domain"

	_ "modernc.org/sqlite"
)

func TestSQLiteProjectorUpsertAndReset(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), ".voltref", "voltref.db")
	projector, err := scaleout.NewSQLiteElectrodeProjector(dbPath)
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}

	ctx := context.Background()
	entries := domain.Builtin()[:3]
	for _, e := range entries {
		if err := projector.Upsert(ctx, e); err != nil {
			t.Fatalf("upsert %s: %v", e.Name, err)
		}
	}

	// Re-upserting an existing id updates the row in place; the position
	// assigned at first insert must not move.
	changed := entries[0]
	changed.OffsetVolts = 0.123
	if err := projector.Upsert(ctx, changed); err != nil {
		t.Fatalf("re-upsert %s: %v", changed.Name, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM electrodes`).Scan(&count); err != nil {
		t.Fatalf("count electrodes: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 projected electrodes, got %d", count)
	}

	var offset float64
	var position int
	if err := db.QueryRow(`SELECT offset_volts, position FROM electrodes WHERE id = ?`, changed.ID).Scan(&offset, &position); err != nil {
		t.Fatalf("read re-upserted row: %v", err)
	}
	if offset != 0.123 {
		t.Fatalf("expected updated offset 0.123, got %v", offset)
	}
	if position != 1 {
		t.Fatalf("expected original position 1, got %d", position)
	}

	var firstID string
	if err := db.QueryRow(`SELECT id FROM electrodes ORDER BY position LIMIT 1`).Scan(&firstID); err != nil {
		t.Fatalf("read first row: %v", err)
	}
	if firstID != entries[0].ID {
		t.Fatalf("position order must match insert order, got %s first", firstID)
	}

	if err := projector.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM electrodes`).Scan(&count); err != nil {
		t.Fatalf("count after reset: %v", err)
	}
	if count != 0 {
		t.Fatalf("reset must empty the projection, got %d rows", count)
	}

	// The position counter restarts after a reset.
	if err := projector.Upsert(ctx, entries[1]); err != nil {
		t.Fatalf("upsert after reset: %v", err)
	}
	if err := db.QueryRow(`SELECT position FROM electrodes WHERE id = ?`, entries[1].ID).Scan(&position); err != nil {
		t.Fatalf("read position after reset: %v", err)
	}
	if position != 1 {
		t.Fatalf("expected position counter to restart at 1, got %d", position)
	}
}
