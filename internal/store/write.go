package store

import (
	"context"
	"fmt"
)

// WriteWave appends a wave and its spawns in one transaction.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency: writing a wave whose ID
// is already stored is a no-op, spawns included. A different wave reusing
// an existing seq violates the UNIQUE constraint and returns an error.
func (s *Store) WriteWave(ctx context.Context, w Wave) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write wave: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO waves
		(id, seq, capacity, total_weight, total_value, catalog_hash)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		w.ID,
		w.Seq,
		w.Capacity,
		w.TotalWeight,
		w.TotalValue,
		w.CatalogHash,
	)
	if err != nil {
		return fmt.Errorf("write wave %s: %w", w.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write wave %s: %w", w.ID, err)
	}
	if n == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO wave_spawns
		(wave_id, idx, enemy, weight, value, prefab, x, y, z)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write wave %s: prepare spawns: %w", w.ID, err)
	}
	defer stmt.Close()

	for _, sp := range w.Spawns {
		if _, err := stmt.ExecContext(ctx,
			w.ID,
			sp.Index,
			sp.Enemy,
			sp.Weight,
			sp.Value,
			sp.Prefab,
			sp.X,
			sp.Y,
			sp.Z,
		); err != nil {
			return fmt.Errorf("write wave %s: spawn %d: %w", w.ID, sp.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write wave %s: commit: %w", w.ID, err)
	}
	return nil
}
