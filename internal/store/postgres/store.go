package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// DB is the querying surface shared by *pgxpool.Pool and pgx.Tx, so the same
// repository code runs inside and outside a transaction.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool *pgxpool.Pool
	dsn  string

	users        *UserRepo
	spaces       *SpaceRepo
	lists        *ListRepo
	statuses     *StatusRepo
	tasks        *TaskRepo
	taskStatuses *TaskStatusRepo
	stats        *StatsRepo
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	s := &Store{pool: pool, dsn: dsn}
	s.bind(pool)

	return s, nil
}

func (s *Store) bind(db DB) {
	s.users = NewUserRepo(db)
	s.spaces = NewSpaceRepo(db)
	s.lists = NewListRepo(db)
	s.statuses = NewStatusRepo(db)
	s.tasks = NewTaskRepo(db)
	s.taskStatuses = NewTaskStatusRepo(db)
	s.stats = NewStatsRepo(db)
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Users() domain.UserRepository              { return s.users }
func (s *Store) Spaces() domain.SpaceRepository            { return s.spaces }
func (s *Store) Lists() domain.ListRepository              { return s.lists }
func (s *Store) Statuses() domain.StatusRepository         { return s.statuses }
func (s *Store) Tasks() domain.TaskRepository              { return s.tasks }
func (s *Store) TaskStatuses() domain.TaskStatusRepository { return s.taskStatuses }
func (s *Store) Stats() domain.StatsRepository             { return s.stats }

// InTx runs fn against a transaction-bound DataStore. The transaction commits
// when fn returns nil and rolls back on error or panic, so every mutation fn
// performs applies atomically or not at all.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, ds domain.DataStore) error) error {
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		txStore := &Store{pool: s.pool, dsn: s.dsn}
		txStore.bind(tx)
		return fn(ctx, txStore)
	})
	if err != nil {
		return fmt.Errorf("postgres.InTx: %w", err)
	}
	return nil
}
