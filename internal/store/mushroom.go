package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/fungi-kb/apiserver/types"
)

// MushroomRepository handles persistence for species documents. The full
// document is stored as JSONB alongside the key columns used for lookups
// and uniqueness.
type MushroomRepository struct {
	db *sql.DB
}

func NewMushroomRepository(db *sql.DB) *MushroomRepository {
	return &MushroomRepository{db: db}
}

func (r *MushroomRepository) List(ctx context.Context, offset, limit int) ([]types.Mushroom, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	const countQuery = `SELECT COUNT(1) FROM mushrooms`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	const listQuery = `
		SELECT id, scientific_name, visibility, verified, created_by, document, created_at, updated_at
		FROM mushrooms
		ORDER BY scientific_name
		OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, listQuery, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	mushrooms := make([]types.Mushroom, 0, limit)
	for rows.Next() {
		mushroom, err := scanMushroom(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		mushrooms = append(mushrooms, mushroom)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return mushrooms, total, nil
}

func (r *MushroomRepository) Get(ctx context.Context, id string) (types.Mushroom, error) {
	const query = `
		SELECT id, scientific_name, visibility, verified, created_by, document, created_at, updated_at
		FROM mushrooms
		WHERE id = $1`
	mushroom, err := scanMushroom(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Mushroom{}, ErrNotFound
		}
		return types.Mushroom{}, err
	}
	return mushroom, nil
}

func (r *MushroomRepository) GetByScientificName(ctx context.Context, name string) (types.Mushroom, error) {
	const query = `
		SELECT id, scientific_name, visibility, verified, created_by, document, created_at, updated_at
		FROM mushrooms
		WHERE scientific_name = $1`
	mushroom, err := scanMushroom(r.db.QueryRowContext(ctx, query, name).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Mushroom{}, ErrNotFound
		}
		return types.Mushroom{}, err
	}
	return mushroom, nil
}

func (r *MushroomRepository) Create(ctx context.Context, mushroom types.Mushroom) (types.Mushroom, error) {
	now := time.Now()
	mushroom.CreatedAt = now
	mushroom.UpdatedAt = now

	doc, err := json.Marshal(mushroom)
	if err != nil {
		return types.Mushroom{}, err
	}

	const query = `
		INSERT INTO mushrooms (id, scientific_name, visibility, verified, created_by, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		mushroom.ID,
		mushroom.ScientificName,
		mushroom.Visibility,
		mushroom.Verified,
		mushroom.CreatedBy,
		doc,
		mushroom.CreatedAt,
		mushroom.UpdatedAt,
	); err != nil {
		return types.Mushroom{}, mapError(err)
	}
	return mushroom, nil
}

func (r *MushroomRepository) Update(ctx context.Context, mushroom types.Mushroom) (types.Mushroom, error) {
	mushroom.UpdatedAt = time.Now()

	doc, err := json.Marshal(mushroom)
	if err != nil {
		return types.Mushroom{}, err
	}

	const query = `
		UPDATE mushrooms
		SET scientific_name = $1,
			visibility = $2,
			verified = $3,
			created_by = $4,
			document = $5,
			updated_at = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(
		ctx,
		query,
		mushroom.ScientificName,
		mushroom.Visibility,
		mushroom.Verified,
		mushroom.CreatedBy,
		doc,
		mushroom.UpdatedAt,
		mushroom.ID,
	)
	if err != nil {
		return types.Mushroom{}, mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Mushroom{}, err
	}
	if affected == 0 {
		return types.Mushroom{}, ErrNotFound
	}
	return mushroom, nil
}

func (r *MushroomRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM mushrooms WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// scanMushroom rebuilds a document from one row. The JSONB document is the
// source of truth for nested fields; key columns override it so column-level
// updates are never shadowed by a stale document.
func scanMushroom(scan func(dest ...any) error) (types.Mushroom, error) {
	var (
		mushroom types.Mushroom
		id       string
		sciName  string
		vis      string
		verified bool
		by       string
		doc      []byte
		created  time.Time
		updated  time.Time
	)
	if err := scan(&id, &sciName, &vis, &verified, &by, &doc, &created, &updated); err != nil {
		return types.Mushroom{}, err
	}
	if err := json.Unmarshal(doc, &mushroom); err != nil {
		return types.Mushroom{}, err
	}
	mushroom.ID = id
	mushroom.ScientificName = sciName
	mushroom.Visibility = vis
	mushroom.Verified = verified
	mushroom.CreatedBy = by
	mushroom.CreatedAt = created
	mushroom.UpdatedAt = updated
	return mushroom, nil
}
