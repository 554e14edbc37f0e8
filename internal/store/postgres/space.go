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

type SpaceRepo struct {
	db DB
}

func NewSpaceRepo(db DB) *SpaceRepo {
	return &SpaceRepo{db: db}
}

const spaceColumns = `id, owner_id, name, created_at, updated_at, deleted_at`

func (r *SpaceRepo) Create(ctx context.Context, s *domain.Space) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO spaces (id, owner_id, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.OwnerID, s.Name, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("spaceRepo.Create: %w", err)
	}

	return nil
}

func (r *SpaceRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Space, error) {
	return r.get(ctx, "spaceRepo.GetByID",
		`SELECT `+spaceColumns+` FROM spaces
		 WHERE owner_id = $1 AND id = $2 AND deleted_at IS NULL`,
		ownerID, id)
}

func (r *SpaceRepo) Find(ctx context.Context, ownerID, id uuid.UUID) (*domain.Space, error) {
	return r.get(ctx, "spaceRepo.Find",
		`SELECT `+spaceColumns+` FROM spaces
		 WHERE owner_id = $1 AND id = $2`,
		ownerID, id)
}

func (r *SpaceRepo) get(ctx context.Context, caller, query string, args ...any) (*domain.Space, error) {
	var s domain.Space

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.OwnerID, &s.Name, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", caller, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", caller, err)
	}

	return &s, nil
}

func (r *SpaceRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Space, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+spaceColumns+` FROM spaces
		 WHERE owner_id = $1 AND deleted_at IS NULL
		 ORDER BY created_at`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("spaceRepo.ListByOwner: %w", err)
	}
	defer rows.Close()

	return scanSpaces(rows, "spaceRepo.ListByOwner")
}

func (r *SpaceRepo) ListTrashedByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Space, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+spaceColumns+` FROM spaces
		 WHERE owner_id = $1 AND deleted_at IS NOT NULL
		 ORDER BY deleted_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("spaceRepo.ListTrashedByOwner: %w", err)
	}
	defer rows.Close()

	return scanSpaces(rows, "spaceRepo.ListTrashedByOwner")
}

func (r *SpaceRepo) Update(ctx context.Context, s *domain.Space) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE spaces SET name = $1, updated_at = now()
		 WHERE owner_id = $2 AND id = $3 AND deleted_at IS NULL`,
		s.Name, s.OwnerID, s.ID,
	)
	if err != nil {
		return fmt.Errorf("spaceRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("spaceRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *SpaceRepo) MarkTrashed(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE spaces SET deleted_at = $2, updated_at = now()
		 WHERE id = ANY($1) AND deleted_at IS NULL`,
		ids, at,
	)
	if err != nil {
		return fmt.Errorf("spaceRepo.MarkTrashed: %w", err)
	}

	return nil
}

func (r *SpaceRepo) ClearTrashed(ctx context.Context, ids []uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE spaces SET deleted_at = NULL, updated_at = now()
		 WHERE id = ANY($1) AND deleted_at IS NOT NULL`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("spaceRepo.ClearTrashed: %w", err)
	}

	return nil
}

func (r *SpaceRepo) Purge(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM spaces WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("spaceRepo.Purge: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("spaceRepo.Purge: %w", domain.ErrNotFound)
	}

	return nil
}

func scanSpaces(rows pgx.Rows, caller string) ([]*domain.Space, error) {
	var spaces []*domain.Space
	for rows.Next() {
		var s domain.Space
		if err := rows.Scan(
			&s.ID, &s.OwnerID, &s.Name, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		spaces = append(spaces, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return spaces, nil
}
