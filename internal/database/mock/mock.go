package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/jon4hz/tasktracker/internal/database"
)

var _ database.DB = (*MockDB)(nil)

// MockDB is a mock implementation of database.DB for testing.
// It mirrors the constraints of the real store: unique usernames and existing task owners.
type MockDB struct {
	mu sync.RWMutex

	users      map[uint]*database.User
	nextUserID uint

	tasks      map[uint]*database.Task
	nextTaskID uint

	// SkipUsernamePrecheck makes UsernameExists always report false, so tests
	// can exercise the path where only the unique constraint catches a duplicate.
	SkipUsernamePrecheck bool

	// Error simulation
	CreateUserError        error
	GetUserByIDError       error
	GetUserByUsernameError error
	GetAllUsersError       error
	CreateTaskError        error
	GetTaskError           error
	ListTasksError         error
	SetTaskStatusError     error
	DeleteTaskError        error
}

// NewMockDB creates a new MockDB instance.
func NewMockDB() *MockDB {
	return &MockDB{
		users:      make(map[uint]*database.User),
		nextUserID: 1,
		tasks:      make(map[uint]*database.Task),
		nextTaskID: 1,
	}
}

// Reset clears all data and errors from the mock database.
func (m *MockDB) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users = make(map[uint]*database.User)
	m.nextUserID = 1
	m.tasks = make(map[uint]*database.Task)
	m.nextTaskID = 1
	m.SkipUsernamePrecheck = false

	m.CreateUserError = nil
	m.GetUserByIDError = nil
	m.GetUserByUsernameError = nil
	m.GetAllUsersError = nil
	m.CreateTaskError = nil
	m.GetTaskError = nil
	m.ListTasksError = nil
	m.SetTaskStatusError = nil
	m.DeleteTaskError = nil
}

// User operations

func (m *MockDB) CreateUser(ctx context.Context, username, passwordHash string, isAdmin bool) (*database.User, error) {
	if m.CreateUserError != nil {
		return nil, m.CreateUserError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			return nil, database.ErrDuplicateUsername
		}
	}

	user := &database.User{
		ID:           m.nextUserID,
		Username:     username,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
	}
	m.nextUserID++
	m.users[user.ID] = user

	clone := *user
	return &clone, nil
}

func (m *MockDB) GetUserByID(ctx context.Context, id uint) (*database.User, error) {
	if m.GetUserByIDError != nil {
		return nil, m.GetUserByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *MockDB) GetUserByUsername(ctx context.Context, username string) (*database.User, error) {
	if m.GetUserByUsernameError != nil {
		return nil, m.GetUserByUsernameError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *MockDB) UsernameExists(ctx context.Context, username string) (bool, error) {
	if m.SkipUsernamePrecheck {
		return false, nil
	}
	_, err := m.GetUserByUsername(ctx, username)
	if err == database.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (m *MockDB) GetAllUsers(ctx context.Context) ([]database.User, error) {
	if m.GetAllUsersError != nil {
		return nil, m.GetAllUsersError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]database.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// UserCount returns the number of stored users.
func (m *MockDB) UserCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

// Task operations

func (m *MockDB) CreateTask(ctx context.Context, ownerID uint, title string, description *string) (*database.Task, error) {
	if m.CreateTaskError != nil {
		return nil, m.CreateTaskError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[ownerID]; !ok {
		return nil, database.ErrOwnerNotFound
	}

	task := &database.Task{
		ID:          m.nextTaskID,
		Title:       title,
		Description: description,
		Status:      database.StatusPending,
		OwnerID:     ownerID,
	}
	m.nextTaskID++
	m.tasks[task.ID] = task

	clone := *task
	return &clone, nil
}

func (m *MockDB) GetTask(ctx context.Context, id uint) (*database.Task, error) {
	if m.GetTaskError != nil {
		return nil, m.GetTaskError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	task, ok := m.tasks[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	clone := *task
	return &clone, nil
}

func (m *MockDB) ListTasksByOwner(ctx context.Context, ownerID uint) ([]database.Task, error) {
	if m.ListTasksError != nil {
		return nil, m.ListTasksError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	tasks := []database.Task{}
	for _, task := range m.tasks {
		if task.OwnerID == ownerID {
			tasks = append(tasks, *task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (m *MockDB) CountTasksByOwner(ctx context.Context) (map[uint]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[uint]int64)
	for _, task := range m.tasks {
		counts[task.OwnerID]++
	}
	return counts, nil
}

func (m *MockDB) SetTaskStatus(ctx context.Context, id uint, status string) error {
	if m.SetTaskStatusError != nil {
		return m.SetTaskStatusError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return database.ErrNotFound
	}
	task.Status = status
	return nil
}

func (m *MockDB) DeleteTask(ctx context.Context, id uint) error {
	if m.DeleteTaskError != nil {
		return m.DeleteTaskError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

// Statistics

func (m *MockDB) GetStats(ctx context.Context) (*database.Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &database.Stats{
		TotalUsers:    int64(len(m.users)),
		TotalTasks:    int64(len(m.tasks)),
		TasksByStatus: make(map[string]int64),
	}
	owners := make(map[uint]bool)
	for _, task := range m.tasks {
		stats.TasksByStatus[task.Status]++
		owners[task.OwnerID] = true
	}
	for _, user := range m.users {
		if user.IsAdmin {
			stats.AdminUsers++
		}
		if !owners[user.ID] {
			stats.UsersWithoutTasks++
		}
	}
	return stats, nil
}
