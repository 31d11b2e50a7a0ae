package store

import (
	"context"
	"database/sql"
	"fmt"
)

// ReadWave returns a wave with its spawns in reconstruction order.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadWave(ctx context.Context, id string) (Wave, error) {
	var w Wave
	err := s.db.QueryRowContext(ctx, `
		SELECT id, seq, capacity, total_weight, total_value, catalog_hash
		FROM waves
		WHERE id = ?
	`, id).Scan(&w.ID, &w.Seq, &w.Capacity, &w.TotalWeight, &w.TotalValue, &w.CatalogHash)
	if err == sql.ErrNoRows {
		return Wave{}, err
	}
	if err != nil {
		return Wave{}, fmt.Errorf("read wave %s: %w", id, err)
	}

	w.Spawns, err = s.readSpawns(ctx, id)
	if err != nil {
		return Wave{}, err
	}
	return w, nil
}

func (s *Store) readSpawns(ctx context.Context, waveID string) ([]Spawn, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, enemy, weight, value, prefab, x, y, z
		FROM wave_spawns
		WHERE wave_id = ?
		ORDER BY idx ASC
	`, waveID)
	if err != nil {
		return nil, fmt.Errorf("query spawns: %w", err)
	}
	defer rows.Close()

	spawns := []Spawn{}
	for rows.Next() {
		var sp Spawn
		if err := rows.Scan(&sp.Index, &sp.Enemy, &sp.Weight, &sp.Value, &sp.Prefab, &sp.X, &sp.Y, &sp.Z); err != nil {
			return nil, fmt.Errorf("scan spawn: %w", err)
		}
		spawns = append(spawns, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate spawns: %w", err)
	}
	return spawns, nil
}

// ListWaves returns the most recent waves, oldest first, without spawns.
// A limit of zero or less returns every wave.
//
// Ordering: seq ASC, id ASC COLLATE BINARY.
func (s *Store) ListWaves(ctx context.Context, limit int) ([]Wave, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, capacity, total_weight, total_value, catalog_hash
		FROM (
			SELECT * FROM waves
			ORDER BY seq DESC, id COLLATE BINARY DESC
			LIMIT ?
		)
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query waves: %w", err)
	}
	defer rows.Close()

	waves := []Wave{}
	for rows.Next() {
		var w Wave
		if err := rows.Scan(&w.ID, &w.Seq, &w.Capacity, &w.TotalWeight, &w.TotalValue, &w.CatalogHash); err != nil {
			return nil, fmt.Errorf("scan wave: %w", err)
		}
		waves = append(waves, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate waves: %w", err)
	}
	return waves, nil
}

// LatestSeq returns the highest recorded seq, or 0 for an empty history.
// A resumed spawner starts its clock here.
func (s *Store) LatestSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM waves`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("latest seq: %w", err)
	}
	return seq.Int64, nil
}

// EnemyTotals aggregates spawns per enemy across all waves, ordered by
// enemy name.
func (s *Store) EnemyTotals(ctx context.Context) ([]EnemyTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT enemy, COUNT(*), COUNT(DISTINCT wave_id), SUM(value)
		FROM wave_spawns
		GROUP BY enemy
		ORDER BY enemy COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query enemy totals: %w", err)
	}
	defer rows.Close()

	totals := []EnemyTotal{}
	for rows.Next() {
		var t EnemyTotal
		if err := rows.Scan(&t.Enemy, &t.Count, &t.Waves, &t.Value); err != nil {
			return nil, fmt.Errorf("scan enemy total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enemy totals: %w", err)
	}
	return totals, nil
}
