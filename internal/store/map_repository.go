package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MapRepository handles map persistence.
type MapRepository struct {
	pool *pgxpool.Pool
}

// NewMapRepository creates a new map repository.
func NewMapRepository(pool *pgxpool.Pool) *MapRepository {
	return &MapRepository{pool: pool}
}

// SaveMap saves the full map state in a single transaction. The layer
// stack is replaced wholesale; layer order is the record order.
func (r *MapRepository) SaveMap(ctx context.Context, rec MapRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx,
		`INSERT INTO maps
		 (name, orientation, tile_width, tile_height, width, height,
		  stagger_axis, stagger_index, hex_side_length, infinite, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now())
		 ON CONFLICT (name) DO UPDATE SET
		  orientation=$2, tile_width=$3, tile_height=$4, width=$5, height=$6,
		  stagger_axis=$7, stagger_index=$8, hex_side_length=$9, infinite=$10,
		  updated_at=now()`,
		rec.Name, rec.Orientation, rec.TileWidth, rec.TileHeight,
		rec.Width, rec.Height, rec.StaggerAxis, rec.StaggerIndex,
		rec.HexSideLength, rec.Infinite,
	); err != nil {
		return fmt.Errorf("save map %q: %w", rec.Name, err)
	}

	// Replace the layer stack; chunk rows go with their layers.
	if _, err := tx.Exec(ctx,
		`DELETE FROM layers WHERE map_name = $1`, rec.Name,
	); err != nil {
		return fmt.Errorf("clear layers for %q: %w", rec.Name, err)
	}

	for ordinal, layer := range rec.Layers {
		var data []byte
		if !layer.Infinite {
			data = packWords(layer.Data)
		}

		var layerID int64
		if err := tx.QueryRow(ctx,
			`INSERT INTO layers (map_name, name, ordinal, infinite, data)
			 VALUES ($1,$2,$3,$4,$5)
			 RETURNING layer_id`,
			rec.Name, layer.Name, ordinal, layer.Infinite, data,
		).Scan(&layerID); err != nil {
			return fmt.Errorf("save layer %q: %w", layer.Name, err)
		}

		if len(layer.Chunks) == 0 {
			continue
		}
		batch := &pgx.Batch{}
		for _, ch := range layer.Chunks {
			batch.Queue(
				`INSERT INTO layer_chunks (layer_id, offset_x, offset_y, width, height, data)
				 VALUES ($1,$2,$3,$4,$5,$6)`,
				layerID, ch.OffsetX, ch.OffsetY, ch.Width, ch.Height, packWords(ch.Data),
			)
		}
		br := tx.SendBatch(ctx, batch)
		for range layer.Chunks {
			if _, err := br.Exec(); err != nil {
				br.Close() //nolint:errcheck
				return fmt.Errorf("save chunks for layer %q: %w", layer.Name, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("close chunk batch for layer %q: %w", layer.Name, err)
		}
	}

	return tx.Commit(ctx)
}

// LoadMap loads a map with its full layer stack.
// Returns nil, nil if the map does not exist.
func (r *MapRepository) LoadMap(ctx context.Context, name string) (*MapRecord, error) {
	var rec MapRecord
	err := r.pool.QueryRow(ctx,
		`SELECT name, orientation, tile_width, tile_height, width, height,
		        stagger_axis, stagger_index, hex_side_length, infinite
		 FROM maps WHERE name = $1`, name,
	).Scan(&rec.Name, &rec.Orientation, &rec.TileWidth, &rec.TileHeight,
		&rec.Width, &rec.Height, &rec.StaggerAxis, &rec.StaggerIndex,
		&rec.HexSideLength, &rec.Infinite)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying map %q: %w", name, err)
	}

	layerIDs, err := r.loadLayers(ctx, &rec)
	if err != nil {
		return nil, err
	}
	if err := r.loadChunks(ctx, &rec, layerIDs); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *MapRepository) loadLayers(ctx context.Context, rec *MapRecord) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT layer_id, name, infinite, data
		 FROM layers WHERE map_name = $1 ORDER BY ordinal`, rec.Name,
	)
	if err != nil {
		return nil, fmt.Errorf("loading layers for %q: %w", rec.Name, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var (
			id    int64
			layer LayerRecord
			data  []byte
		)
		if err := rows.Scan(&id, &layer.Name, &layer.Infinite, &data); err != nil {
			return nil, fmt.Errorf("scanning layer row: %w", err)
		}
		if !layer.Infinite {
			if layer.Data, err = unpackWords(data); err != nil {
				return nil, fmt.Errorf("layer %q: %w", layer.Name, err)
			}
		}
		ids = append(ids, id)
		rec.Layers = append(rec.Layers, layer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating layer rows: %w", err)
	}
	return ids, nil
}

func (r *MapRepository) loadChunks(ctx context.Context, rec *MapRecord, layerIDs []int64) error {
	byID := make(map[int64]*LayerRecord, len(layerIDs))
	for i, id := range layerIDs {
		if rec.Layers[i].Infinite {
			byID[id] = &rec.Layers[i]
		}
	}
	if len(byID) == 0 {
		return nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT layer_id, offset_x, offset_y, width, height, data
		 FROM layer_chunks WHERE layer_id = ANY($1)
		 ORDER BY layer_id, offset_y, offset_x`, layerIDs,
	)
	if err != nil {
		return fmt.Errorf("loading chunks for %q: %w", rec.Name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int64
			ch   ChunkRecord
			data []byte
		)
		if err := rows.Scan(&id, &ch.OffsetX, &ch.OffsetY, &ch.Width, &ch.Height, &data); err != nil {
			return fmt.Errorf("scanning chunk row: %w", err)
		}
		layer, ok := byID[id]
		if !ok {
			return fmt.Errorf("chunk row references unknown layer %d", id)
		}
		if ch.Data, err = unpackWords(data); err != nil {
			return fmt.Errorf("layer %q chunk (%d,%d): %w", layer.Name, ch.OffsetX, ch.OffsetY, err)
		}
		layer.Chunks = append(layer.Chunks, ch)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating chunk rows: %w", err)
	}
	return nil
}

// ListMaps returns the names of all stored maps.
func (r *MapRepository) ListMaps(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT name FROM maps ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing maps: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning map name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating map names: %w", err)
	}
	return names, nil
}

// DeleteMap removes a map and, through cascading, its layers and chunks.
func (r *MapRepository) DeleteMap(ctx context.Context, name string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM maps WHERE name = $1`, name); err != nil {
		return fmt.Errorf("deleting map %q: %w", name, err)
	}
	return nil
}
