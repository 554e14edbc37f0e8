package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taskdeck/taskdeck/internal/domain"
)

type StatusRepo struct {
	db DB
}

func NewStatusRepo(db DB) *StatusRepo {
	return &StatusRepo{db: db}
}

func (r *StatusRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Status, error) {
	return r.get(ctx, "statusRepo.GetByID",
		`SELECT id, name FROM statuses WHERE id = $1`, id)
}

func (r *StatusRepo) GetByName(ctx context.Context, name string) (*domain.Status, error) {
	return r.get(ctx, "statusRepo.GetByName",
		`SELECT id, name FROM statuses WHERE name = $1`, name)
}

func (r *StatusRepo) get(ctx context.Context, caller, query string, arg any) (*domain.Status, error) {
	var st domain.Status

	err := r.db.QueryRow(ctx, query, arg).Scan(&st.ID, &st.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", caller, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", caller, err)
	}

	return &st, nil
}

func (r *StatusRepo) List(ctx context.Context) ([]*domain.Status, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM statuses ORDER BY sort_order`)
	if err != nil {
		return nil, fmt.Errorf("statusRepo.List: %w", err)
	}
	defer rows.Close()

	var statuses []*domain.Status
	for rows.Next() {
		var st domain.Status
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			return nil, fmt.Errorf("statusRepo.List: scan: %w", err)
		}
		statuses = append(statuses, &st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("statusRepo.List: rows: %w", err)
	}

	return statuses, nil
}
