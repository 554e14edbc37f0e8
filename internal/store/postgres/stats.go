package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/domain"
)

type StatsRepo struct {
	db DB
}

func NewStatsRepo(db DB) *StatsRepo {
	return &StatsRepo{db: db}
}

func (r *StatsRepo) SummaryByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.StatsSummary, error) {
	var sum domain.StatsSummary

	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM spaces WHERE owner_id = $1 AND deleted_at IS NULL`,
		ownerID,
	).Scan(&sum.Spaces)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.SummaryByOwner: spaces: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT st.name, count(*)
		 FROM tasks t
		 JOIN lists l ON l.id = t.list_id AND l.deleted_at IS NULL
		 JOIN spaces s ON s.id = l.space_id AND s.deleted_at IS NULL
		 JOIN task_statuses ts ON ts.task_id = t.id AND ts.deleted_at IS NULL
		 JOIN statuses st ON st.id = ts.status_id
		 WHERE s.owner_id = $1 AND t.deleted_at IS NULL
		 GROUP BY st.name`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.SummaryByOwner: tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name  string
			count int
		)
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("statsRepo.SummaryByOwner: scan: %w", err)
		}
		switch name {
		case domain.StatusTodo:
			sum.Todo = count
		case domain.StatusInProgress:
			sum.InProgress = count
		case domain.StatusDone:
			sum.Done = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("statsRepo.SummaryByOwner: rows: %w", err)
	}

	return &sum, nil
}
