package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taskdeck/taskdeck/internal/domain"
)

type ListRepo struct {
	db DB
}

func NewListRepo(db DB) *ListRepo {
	return &ListRepo{db: db}
}

const listColumns = `l.id, l.space_id, l.name, l.key, l.created_at, l.updated_at, l.deleted_at`

func (r *ListRepo) Create(ctx context.Context, l *domain.List) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO lists (id, space_id, name, key, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.SpaceID, l.Name, l.Key, l.CreatedAt, l.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("listRepo.Create: key %q: %w", l.Key, domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("listRepo.Create: %w", err)
	}

	return nil
}

func (r *ListRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.List, error) {
	return r.get(ctx, "listRepo.GetByID",
		`SELECT `+listColumns+` FROM lists l
		 JOIN spaces s ON s.id = l.space_id
		 WHERE s.owner_id = $1 AND l.id = $2 AND l.deleted_at IS NULL`,
		ownerID, id)
}

func (r *ListRepo) Find(ctx context.Context, ownerID, id uuid.UUID) (*domain.List, error) {
	return r.get(ctx, "listRepo.Find",
		`SELECT `+listColumns+` FROM lists l
		 JOIN spaces s ON s.id = l.space_id
		 WHERE s.owner_id = $1 AND l.id = $2`,
		ownerID, id)
}

func (r *ListRepo) get(ctx context.Context, caller, query string, args ...any) (*domain.List, error) {
	var l domain.List

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&l.ID, &l.SpaceID, &l.Name, &l.Key, &l.CreatedAt, &l.UpdatedAt, &l.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", caller, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", caller, err)
	}

	return &l, nil
}

func (r *ListRepo) ListBySpace(ctx context.Context, ownerID, spaceID uuid.UUID) ([]*domain.List, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+listColumns+` FROM lists l
		 JOIN spaces s ON s.id = l.space_id
		 WHERE s.owner_id = $1 AND l.space_id = $2 AND l.deleted_at IS NULL
		 ORDER BY l.created_at`,
		ownerID, spaceID,
	)
	if err != nil {
		return nil, fmt.Errorf("listRepo.ListBySpace: %w", err)
	}
	defer rows.Close()

	return scanLists(rows, "listRepo.ListBySpace")
}

func (r *ListRepo) ListTrashedByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.List, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+listColumns+` FROM lists l
		 JOIN spaces s ON s.id = l.space_id
		 WHERE s.owner_id = $1 AND l.deleted_at IS NOT NULL
		 ORDER BY l.deleted_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listRepo.ListTrashedByOwner: %w", err)
	}
	defer rows.Close()

	return scanLists(rows, "listRepo.ListTrashedByOwner")
}

func (r *ListRepo) Update(ctx context.Context, l *domain.List) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE lists SET name = $1, key = $2, updated_at = now()
		 WHERE id = $3 AND deleted_at IS NULL`,
		l.Name, l.Key, l.ID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("listRepo.Update: key %q: %w", l.Key, domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("listRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("listRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ListRepo) IDsBySpaces(ctx context.Context, spaceIDs []uuid.UUID, trashed bool) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id FROM lists
		 WHERE space_id = ANY($1) AND (deleted_at IS NOT NULL) = $2`,
		spaceIDs, trashed,
	)
	if err != nil {
		return nil, fmt.Errorf("listRepo.IDsBySpaces: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows, "listRepo.IDsBySpaces")
}

func (r *ListRepo) MarkTrashed(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE lists SET deleted_at = $2, updated_at = now()
		 WHERE id = ANY($1) AND deleted_at IS NULL`,
		ids, at,
	)
	if err != nil {
		return fmt.Errorf("listRepo.MarkTrashed: %w", err)
	}

	return nil
}

func (r *ListRepo) ClearTrashed(ctx context.Context, ids []uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE lists SET deleted_at = NULL, updated_at = now()
		 WHERE id = ANY($1) AND deleted_at IS NOT NULL`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("listRepo.ClearTrashed: %w", err)
	}

	return nil
}

func (r *ListRepo) Purge(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM lists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("listRepo.Purge: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("listRepo.Purge: %w", domain.ErrNotFound)
	}

	return nil
}

func scanLists(rows pgx.Rows, caller string) ([]*domain.List, error) {
	var lists []*domain.List
	for rows.Next() {
		var l domain.List
		if err := rows.Scan(
			&l.ID, &l.SpaceID, &l.Name, &l.Key, &l.CreatedAt, &l.UpdatedAt, &l.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		lists = append(lists, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return lists, nil
}

func scanIDs(rows pgx.Rows, caller string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return ids, nil
}
