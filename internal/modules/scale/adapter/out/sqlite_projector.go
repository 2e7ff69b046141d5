package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"voltref/internal/modules/scale/domain"
	scaleout "voltref/internal/modules/scale/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteElectrodeProjector struct {
	db *sql.DB
}

func NewSQLiteElectrodeProjector(dbPath string) (scaleout.ElectrodeProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteElectrodeProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteElectrodeProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS electrodes (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  offset_volts REAL NOT NULL,
  pack TEXT NOT NULL,
  position INTEGER NOT NULL DEFAULT 0
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create electrodes table: %w", err)
	}
	return nil
}

func (s *SQLiteElectrodeProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM electrodes`); err != nil {
		return fmt.Errorf("reset electrodes: %w", err)
	}
	return nil
}

func (s *SQLiteElectrodeProjector) Upsert(ctx context.Context, electrode domain.Electrode) error {
	const stmt = `
INSERT INTO electrodes (id, name, offset_volts, pack, position)
VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM electrodes))
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  offset_volts=excluded.offset_volts,
  pack=excluded.pack;
`
	_, err := s.db.ExecContext(ctx, stmt,
		electrode.ID,
		electrode.Name,
		electrode.OffsetVolts,
		electrode.Pack,
	)
	if err != nil {
		return fmt.Errorf("upsert electrode: %w", err)
	}
	return nil
}
