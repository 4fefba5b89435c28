package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/wolfkin/internal/game/transform"
	"github.com/udisondev/wolfkin/internal/model"
)

// ProgressionRepository stores werewolf progression per entity.
//
// Every row records the digest of the catalog it was written against so a
// catalog change can be noticed on load.
type ProgressionRepository struct {
	db     *pgxpool.Pool
	digest string
}

// NewProgressionRepository creates a repository that stamps rows with digest.
func NewProgressionRepository(db *pgxpool.Pool, digest string) *ProgressionRepository {
	return &ProgressionRepository{db: db, digest: digest}
}

// Save overwrites the stored progression of one entity.
func (r *ProgressionRepository) Save(ctx context.Context, entityID uint32, p transform.Progression) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := r.saveTx(ctx, tx, entityID, p); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing progression %d: %w", entityID, err)
	}
	return nil
}

// SavePack saves every controller with a pawn in a single transaction.
// Returns the number of rows written.
func (r *ProgressionRepository) SavePack(ctx context.Context, members []*transform.Controller) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "error", err)
		}
	}()

	n := 0
	for _, ctl := range members {
		if ctl.Pawn() == nil {
			continue
		}
		if err := r.saveTx(ctx, tx, ctl.Pawn().ObjectID(), ctl.Progression()); err != nil {
			return 0, err
		}
		n++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing pack progression: %w", err)
	}
	return n, nil
}

func (r *ProgressionRepository) saveTx(ctx context.Context, tx pgx.Tx, entityID uint32, p transform.Progression) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO werewolf_progression
			(entity_id, lineage, blooded, fury_toggled, forbidden, cooldown_ticks, catalog_digest, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (entity_id) DO UPDATE SET
			lineage = $2, blooded = $3, fury_toggled = $4, forbidden = $5,
			cooldown_ticks = $6, catalog_digest = $7, updated_at = now()
	`, int64(entityID), p.Lineage.String(), p.Blooded, p.FuryToggled, p.Forbidden,
		max(p.CooldownRemaining, 0), r.digest)
	if err != nil {
		return fmt.Errorf("upserting progression %d: %w", entityID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM werewolf_form_levels WHERE entity_id = $1`, int64(entityID)); err != nil {
		return fmt.Errorf("deleting form levels %d: %w", entityID, err)
	}

	batch := &pgx.Batch{}
	for formID, level := range p.Levels {
		batch.Queue(
			`INSERT INTO werewolf_form_levels (entity_id, form_id, level) VALUES ($1, $2, $3)`,
			int64(entityID), formID, max(level, 0),
		)
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting form levels %d: %w", entityID, err)
	}
	return nil
}

// Load returns the stored progression of an entity.
// Returns nil, nil if nothing is stored.
func (r *ProgressionRepository) Load(ctx context.Context, entityID uint32) (*transform.Progression, error) {
	var (
		p       transform.Progression
		lineage string
		digest  string
	)
	err := r.db.QueryRow(ctx, `
		SELECT lineage, blooded, fury_toggled, forbidden, cooldown_ticks, catalog_digest
		FROM werewolf_progression WHERE entity_id = $1
	`, int64(entityID)).Scan(&lineage, &p.Blooded, &p.FuryToggled, &p.Forbidden, &p.CooldownRemaining, &digest)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying progression %d: %w", entityID, err)
	}
	p.Lineage = model.ParseLineage(lineage)

	if digest != r.digest {
		slog.Warn("progression recorded against another catalog",
			"entity", entityID, "stored", digest, "current", r.digest)
	}

	rows, err := r.db.Query(ctx,
		`SELECT form_id, level FROM werewolf_form_levels WHERE entity_id = $1 ORDER BY form_id`,
		int64(entityID))
	if err != nil {
		return nil, fmt.Errorf("querying form levels %d: %w", entityID, err)
	}
	defer rows.Close()

	p.Levels = make(map[string]int, 8)
	for rows.Next() {
		var (
			formID string
			level  int32
		)
		if err := rows.Scan(&formID, &level); err != nil {
			return nil, fmt.Errorf("scanning form level row: %w", err)
		}
		p.Levels[formID] = int(level)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating form level rows: %w", err)
	}
	return &p, nil
}

// LoadInto restores the stored progression of ctl's pawn, if any.
// Reports whether anything was restored.
func (r *ProgressionRepository) LoadInto(ctx context.Context, ctl *transform.Controller) (bool, error) {
	if ctl.Pawn() == nil {
		return false, nil
	}
	p, err := r.Load(ctx, ctl.Pawn().ObjectID())
	if err != nil || p == nil {
		return false, err
	}
	return ctl.RestoreProgression(*p), nil
}

// Delete removes the stored progression of an entity.
func (r *ProgressionRepository) Delete(ctx context.Context, entityID uint32) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM werewolf_progression WHERE entity_id = $1`, int64(entityID)); err != nil {
		return fmt.Errorf("deleting progression %d: %w", entityID, err)
	}
	return nil
}
