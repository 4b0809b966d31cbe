package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game"
)

// ErrNotFound marks a missing snapshot.
var ErrNotFound = errors.New("game snapshot not found")

// GameRepository stores and loads game snapshots.
type GameRepository struct {
	db *pgxpool.Pool
}

// NewGameRepository creates a repository over the pool.
func NewGameRepository(db *DB) *GameRepository {
	return &GameRepository{db: db.Pool()}
}

// Save upserts a game's snapshot.
func (r *GameRepository) Save(ctx context.Context, st *game.GameState) error {
	data, err := game.Snapshot(st)
	if err != nil {
		return fmt.Errorf("serializing game %s: %w", st.ID, err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO games (id, round, snapshot, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE
		SET round = EXCLUDED.round, snapshot = EXCLUDED.snapshot, updated_at = now()`,
		st.ID, st.Round, data)
	if err != nil {
		return fmt.Errorf("saving game %s: %w", st.ID, err)
	}
	return nil
}

// Load fetches a game's snapshot by id.
func (r *GameRepository) Load(ctx context.Context, id string) (*game.GameState, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `SELECT snapshot FROM games WHERE id = $1`, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading game %s: %w", id, err)
	}
	st, err := game.RestoreSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("restoring game %s: %w", id, err)
	}
	return st, nil
}

// ListIDs returns the ids of every stored game, most recently updated
// first.
func (r *GameRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM games ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning game id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Delete removes a stored game.
func (r *GameRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting game %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
