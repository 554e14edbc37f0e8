package v1_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/server/middleware"
)

// ---------------------------------------------------------------------------
// Context helpers — inject the authenticated user for DoCtx
// ---------------------------------------------------------------------------

func userCtx(userID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), middleware.ContextKeyUserID, userID)
}

// ---------------------------------------------------------------------------
// Mock DataStore
// ---------------------------------------------------------------------------

type mockDataStore struct {
	users        domain.UserRepository
	spaces       domain.SpaceRepository
	lists        domain.ListRepository
	statuses     domain.StatusRepository
	tasks        domain.TaskRepository
	taskStatuses domain.TaskStatusRepository
	stats        domain.StatsRepository
}

func (m *mockDataStore) Users() domain.UserRepository              { return m.users }
func (m *mockDataStore) Spaces() domain.SpaceRepository            { return m.spaces }
func (m *mockDataStore) Lists() domain.ListRepository              { return m.lists }
func (m *mockDataStore) Statuses() domain.StatusRepository         { return m.statuses }
func (m *mockDataStore) Tasks() domain.TaskRepository              { return m.tasks }
func (m *mockDataStore) TaskStatuses() domain.TaskStatusRepository { return m.taskStatuses }
func (m *mockDataStore) Stats() domain.StatsRepository             { return m.stats }

// InTx runs fn against the same mock; rollback is not modeled here.
func (m *mockDataStore) InTx(ctx context.Context, fn func(ctx context.Context, ds domain.DataStore) error) error {
	return fn(ctx, m)
}

// ---------------------------------------------------------------------------
// Mock SpaceRepository
// ---------------------------------------------------------------------------

type mockSpaceRepo struct {
	createFunc             func(ctx context.Context, s *domain.Space) error
	getByIDFunc            func(ctx context.Context, ownerID, id uuid.UUID) (*domain.Space, error)
	findFunc               func(ctx context.Context, ownerID, id uuid.UUID) (*domain.Space, error)
	listByOwnerFunc        func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Space, error)
	listTrashedByOwnerFunc func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Space, error)
	updateFunc             func(ctx context.Context, s *domain.Space) error
	markTrashedFunc        func(ctx context.Context, ids []uuid.UUID, at time.Time) error
	clearTrashedFunc       func(ctx context.Context, ids []uuid.UUID) error
	purgeFunc              func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSpaceRepo) Create(ctx context.Context, s *domain.Space) error {
	return m.createFunc(ctx, s)
}

func (m *mockSpaceRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Space, error) {
	return m.getByIDFunc(ctx, ownerID, id)
}

func (m *mockSpaceRepo) Find(ctx context.Context, ownerID, id uuid.UUID) (*domain.Space, error) {
	return m.findFunc(ctx, ownerID, id)
}

func (m *mockSpaceRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Space, error) {
	return m.listByOwnerFunc(ctx, ownerID)
}

func (m *mockSpaceRepo) ListTrashedByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Space, error) {
	return m.listTrashedByOwnerFunc(ctx, ownerID)
}

func (m *mockSpaceRepo) Update(ctx context.Context, s *domain.Space) error {
	return m.updateFunc(ctx, s)
}

func (m *mockSpaceRepo) MarkTrashed(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	return m.markTrashedFunc(ctx, ids, at)
}

func (m *mockSpaceRepo) ClearTrashed(ctx context.Context, ids []uuid.UUID) error {
	return m.clearTrashedFunc(ctx, ids)
}

func (m *mockSpaceRepo) Purge(ctx context.Context, id uuid.UUID) error {
	return m.purgeFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock ListRepository
// ---------------------------------------------------------------------------

type mockListRepo struct {
	createFunc             func(ctx context.Context, l *domain.List) error
	getByIDFunc            func(ctx context.Context, ownerID, id uuid.UUID) (*domain.List, error)
	findFunc               func(ctx context.Context, ownerID, id uuid.UUID) (*domain.List, error)
	listBySpaceFunc        func(ctx context.Context, ownerID, spaceID uuid.UUID) ([]*domain.List, error)
	listTrashedByOwnerFunc func(ctx context.Context, ownerID uuid.UUID) ([]*domain.List, error)
	updateFunc             func(ctx context.Context, l *domain.List) error
	idsBySpacesFunc        func(ctx context.Context, spaceIDs []uuid.UUID, trashed bool) ([]uuid.UUID, error)
	markTrashedFunc        func(ctx context.Context, ids []uuid.UUID, at time.Time) error
	clearTrashedFunc       func(ctx context.Context, ids []uuid.UUID) error
	purgeFunc              func(ctx context.Context, id uuid.UUID) error
}

func (m *mockListRepo) Create(ctx context.Context, l *domain.List) error {
	return m.createFunc(ctx, l)
}

func (m *mockListRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.List, error) {
	return m.getByIDFunc(ctx, ownerID, id)
}

func (m *mockListRepo) Find(ctx context.Context, ownerID, id uuid.UUID) (*domain.List, error) {
	return m.findFunc(ctx, ownerID, id)
}

func (m *mockListRepo) ListBySpace(ctx context.Context, ownerID, spaceID uuid.UUID) ([]*domain.List, error) {
	return m.listBySpaceFunc(ctx, ownerID, spaceID)
}

func (m *mockListRepo) ListTrashedByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.List, error) {
	return m.listTrashedByOwnerFunc(ctx, ownerID)
}

func (m *mockListRepo) Update(ctx context.Context, l *domain.List) error {
	return m.updateFunc(ctx, l)
}

func (m *mockListRepo) IDsBySpaces(ctx context.Context, spaceIDs []uuid.UUID, trashed bool) ([]uuid.UUID, error) {
	return m.idsBySpacesFunc(ctx, spaceIDs, trashed)
}

func (m *mockListRepo) MarkTrashed(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	return m.markTrashedFunc(ctx, ids, at)
}

func (m *mockListRepo) ClearTrashed(ctx context.Context, ids []uuid.UUID) error {
	return m.clearTrashedFunc(ctx, ids)
}

func (m *mockListRepo) Purge(ctx context.Context, id uuid.UUID) error {
	return m.purgeFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock StatusRepository
// ---------------------------------------------------------------------------

type mockStatusRepo struct {
	getByIDFunc   func(ctx context.Context, id uuid.UUID) (*domain.Status, error)
	getByNameFunc func(ctx context.Context, name string) (*domain.Status, error)
	listFunc      func(ctx context.Context) ([]*domain.Status, error)
}

func (m *mockStatusRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Status, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockStatusRepo) GetByName(ctx context.Context, name string) (*domain.Status, error) {
	return m.getByNameFunc(ctx, name)
}

func (m *mockStatusRepo) List(ctx context.Context) ([]*domain.Status, error) {
	return m.listFunc(ctx)
}

// ---------------------------------------------------------------------------
// Mock TaskRepository
// ---------------------------------------------------------------------------

type mockTaskRepo struct {
	createFunc             func(ctx context.Context, t *domain.Task) error
	getByIDFunc            func(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error)
	findFunc               func(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error)
	listByOwnerFunc        func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)
	listByListFunc         func(ctx context.Context, ownerID, listID uuid.UUID) ([]*domain.Task, error)
	listTrashedByOwnerFunc func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)
	updateFunc             func(ctx context.Context, t *domain.Task) error
	lockListsFunc          func(ctx context.Context, listIDs ...uuid.UUID) error
	maxPositionFunc        func(ctx context.Context, c domain.Column, exclude uuid.UUID) (int, error)
	shiftDownFunc          func(ctx context.Context, c domain.Column, after int, exclude uuid.UUID) error
	shiftUpFunc            func(ctx context.Context, c domain.Column, from int, exclude uuid.UUID) error
	placeFunc              func(ctx context.Context, id, listID uuid.UUID, position int) error
	idsByListsFunc         func(ctx context.Context, listIDs []uuid.UUID, trashed bool) ([]uuid.UUID, error)
	markTrashedFunc        func(ctx context.Context, ids []uuid.UUID, at time.Time) error
	clearTrashedFunc       func(ctx context.Context, ids []uuid.UUID) error
	purgeFunc              func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	return m.createFunc(ctx, t)
}

func (m *mockTaskRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	return m.getByIDFunc(ctx, ownerID, id)
}

func (m *mockTaskRepo) Find(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	return m.findFunc(ctx, ownerID, id)
}

func (m *mockTaskRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	return m.listByOwnerFunc(ctx, ownerID)
}

func (m *mockTaskRepo) ListByList(ctx context.Context, ownerID, listID uuid.UUID) ([]*domain.Task, error) {
	return m.listByListFunc(ctx, ownerID, listID)
}

func (m *mockTaskRepo) ListTrashedByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	return m.listTrashedByOwnerFunc(ctx, ownerID)
}

func (m *mockTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	return m.updateFunc(ctx, t)
}

func (m *mockTaskRepo) LockLists(ctx context.Context, listIDs ...uuid.UUID) error {
	return m.lockListsFunc(ctx, listIDs...)
}

func (m *mockTaskRepo) MaxPosition(ctx context.Context, c domain.Column, exclude uuid.UUID) (int, error) {
	return m.maxPositionFunc(ctx, c, exclude)
}

func (m *mockTaskRepo) ShiftDown(ctx context.Context, c domain.Column, after int, exclude uuid.UUID) error {
	return m.shiftDownFunc(ctx, c, after, exclude)
}

func (m *mockTaskRepo) ShiftUp(ctx context.Context, c domain.Column, from int, exclude uuid.UUID) error {
	return m.shiftUpFunc(ctx, c, from, exclude)
}

func (m *mockTaskRepo) Place(ctx context.Context, id, listID uuid.UUID, position int) error {
	return m.placeFunc(ctx, id, listID, position)
}

func (m *mockTaskRepo) IDsByLists(ctx context.Context, listIDs []uuid.UUID, trashed bool) ([]uuid.UUID, error) {
	return m.idsByListsFunc(ctx, listIDs, trashed)
}

func (m *mockTaskRepo) MarkTrashed(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	return m.markTrashedFunc(ctx, ids, at)
}

func (m *mockTaskRepo) ClearTrashed(ctx context.Context, ids []uuid.UUID) error {
	return m.clearTrashedFunc(ctx, ids)
}

func (m *mockTaskRepo) Purge(ctx context.Context, id uuid.UUID) error {
	return m.purgeFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock TaskStatusRepository
// ---------------------------------------------------------------------------

type mockTaskStatusRepo struct {
	createFunc       func(ctx context.Context, ts *domain.TaskStatus) error
	findByTaskFunc   func(ctx context.Context, taskID uuid.UUID) (*domain.TaskStatus, error)
	setStatusFunc    func(ctx context.Context, taskID, statusID uuid.UUID) error
	idsByTasksFunc   func(ctx context.Context, taskIDs []uuid.UUID, trashed bool) ([]uuid.UUID, error)
	markTrashedFunc  func(ctx context.Context, ids []uuid.UUID, at time.Time) error
	clearTrashedFunc func(ctx context.Context, ids []uuid.UUID) error
}

func (m *mockTaskStatusRepo) Create(ctx context.Context, ts *domain.TaskStatus) error {
	return m.createFunc(ctx, ts)
}

func (m *mockTaskStatusRepo) FindByTask(ctx context.Context, taskID uuid.UUID) (*domain.TaskStatus, error) {
	return m.findByTaskFunc(ctx, taskID)
}

func (m *mockTaskStatusRepo) SetStatus(ctx context.Context, taskID, statusID uuid.UUID) error {
	return m.setStatusFunc(ctx, taskID, statusID)
}

func (m *mockTaskStatusRepo) IDsByTasks(ctx context.Context, taskIDs []uuid.UUID, trashed bool) ([]uuid.UUID, error) {
	return m.idsByTasksFunc(ctx, taskIDs, trashed)
}

func (m *mockTaskStatusRepo) MarkTrashed(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	return m.markTrashedFunc(ctx, ids, at)
}

func (m *mockTaskStatusRepo) ClearTrashed(ctx context.Context, ids []uuid.UUID) error {
	return m.clearTrashedFunc(ctx, ids)
}

// ---------------------------------------------------------------------------
// Mock StatsRepository
// ---------------------------------------------------------------------------

type mockStatsRepo struct {
	summaryByOwnerFunc func(ctx context.Context, ownerID uuid.UUID) (*domain.StatsSummary, error)
}

func (m *mockStatsRepo) SummaryByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.StatsSummary, error) {
	return m.summaryByOwnerFunc(ctx, ownerID)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	registerFunc      func(ctx context.Context, email, password, fullName string) (*domain.User, error)
	loginFunc         func(ctx context.Context, email, password string) (string, string, error)
	refreshTokenFunc  func(ctx context.Context, refreshToken string) (string, error)
	getUserFunc       func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	updateAccountFunc func(ctx context.Context, userID uuid.UUID, upd auth.AccountUpdate) (*domain.User, error)
	deleteAccountFunc func(ctx context.Context, userID uuid.UUID) error
}

func (m *mockAuthService) Register(ctx context.Context, email, password, fullName string) (*domain.User, error) {
	return m.registerFunc(ctx, email, password, fullName)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	return m.loginFunc(ctx, email, password)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshTokenFunc(ctx, refreshToken)
}

func (m *mockAuthService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return m.getUserFunc(ctx, userID)
}

func (m *mockAuthService) UpdateAccount(ctx context.Context, userID uuid.UUID, upd auth.AccountUpdate) (*domain.User, error) {
	return m.updateAccountFunc(ctx, userID, upd)
}

func (m *mockAuthService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return m.deleteAccountFunc(ctx, userID)
}

// ---------------------------------------------------------------------------
// Mock BoardEngine
// ---------------------------------------------------------------------------

type mockEngine struct {
	defaultStatusID uuid.UUID
	createFunc      func(ctx context.Context, ownerID uuid.UUID, t *domain.Task, statusID *uuid.UUID) (*domain.Task, error)
	moveFunc        func(ctx context.Context, ownerID, taskID, toListID, toStatusID uuid.UUID, toPos int) (*domain.Task, error)
}

func (m *mockEngine) DefaultStatusID() uuid.UUID { return m.defaultStatusID }

func (m *mockEngine) Create(ctx context.Context, ownerID uuid.UUID, t *domain.Task, statusID *uuid.UUID) (*domain.Task, error) {
	return m.createFunc(ctx, ownerID, t, statusID)
}

func (m *mockEngine) Move(ctx context.Context, ownerID, taskID, toListID, toStatusID uuid.UUID, toPos int) (*domain.Task, error) {
	return m.moveFunc(ctx, ownerID, taskID, toListID, toStatusID, toPos)
}

// ---------------------------------------------------------------------------
// Recording EventPublisher
// ---------------------------------------------------------------------------

type publishedEvent struct {
	channel string
	payload []byte
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, channel string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{channel: channel, payload: payload})
	return nil
}

func (p *recordingPublisher) published() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}
