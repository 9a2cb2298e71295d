package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type DatabaseTestSuite struct {
	suite.Suite
	client *Client
	ctx    context.Context
}

func (s *DatabaseTestSuite) SetupTest() {
	client, err := New(filepath.Join(s.T().TempDir(), "test.db"))
	s.Require().NoError(err)
	s.client = client
	s.ctx = context.Background()
}

func (s *DatabaseTestSuite) TearDownTest() {
	if s.client != nil {
		s.NoError(s.client.Close())
	}
}

func (s *DatabaseTestSuite) createUser(username string) *User {
	user, err := s.client.CreateUser(s.ctx, username, "hash-"+username, false)
	s.Require().NoError(err)
	return user
}

func (s *DatabaseTestSuite) TestCreateUser() {
	user := s.createUser("newuser")

	s.NotZero(user.ID)
	s.Equal("newuser", user.Username)
	s.False(user.IsAdmin)
	s.Equal("hash-newuser", user.PasswordHash)
}

func (s *DatabaseTestSuite) TestCreateAdminUser() {
	admin, err := s.client.CreateUser(s.ctx, "adminuser", "hash", true)
	s.Require().NoError(err)

	stored, err := s.client.GetUserByID(s.ctx, admin.ID)
	s.Require().NoError(err)
	s.True(stored.IsAdmin)
}

func (s *DatabaseTestSuite) TestCreateUser_DuplicateUsername() {
	s.createUser("uniqueuser")

	user, err := s.client.CreateUser(s.ctx, "uniqueuser", "other-hash", false)
	s.Nil(user)
	s.ErrorIs(err, ErrDuplicateUsername)

	users, err := s.client.GetAllUsers(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 1)
}

func (s *DatabaseTestSuite) TestUsernameIsCaseSensitive() {
	s.createUser("alice")

	_, err := s.client.CreateUser(s.ctx, "Alice", "hash", false)
	s.NoError(err)
}

func (s *DatabaseTestSuite) TestGetUserByUsername_NotFound() {
	user, err := s.client.GetUserByUsername(s.ctx, "ghost")
	s.Nil(user)
	s.ErrorIs(err, ErrNotFound)
}

func (s *DatabaseTestSuite) TestUsernameExists() {
	s.createUser("alice")

	exists, err := s.client.UsernameExists(s.ctx, "alice")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.client.UsernameExists(s.ctx, "bob")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *DatabaseTestSuite) TestCreateTask_Defaults() {
	user := s.createUser("testuser")

	task, err := s.client.CreateTask(s.ctx, user.ID, "Default Task", nil)
	s.Require().NoError(err)

	stored, err := s.client.GetTask(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Equal("Default Task", stored.Title)
	s.Equal(StatusPending, stored.Status)
	s.Nil(stored.Description)
	s.Equal(user.ID, stored.OwnerID)
}

func (s *DatabaseTestSuite) TestCreateTask_EmptyDescriptionIsNotNull() {
	user := s.createUser("testuser")

	task, err := s.client.CreateTask(s.ctx, user.ID, "Task", lo.ToPtr(""))
	s.Require().NoError(err)

	stored, err := s.client.GetTask(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored.Description)
	s.Equal("", *stored.Description)
}

func (s *DatabaseTestSuite) TestCreateTask_OwnerNotFound() {
	task, err := s.client.CreateTask(s.ctx, 999, "Orphan", nil)
	s.Nil(task)
	s.ErrorIs(err, ErrOwnerNotFound)
}

func (s *DatabaseTestSuite) TestForeignKeyIsEnforced() {
	err := s.client.db.WithContext(s.ctx).Create(&Task{Title: "Orphan", Status: StatusPending, OwnerID: 4242}).Error
	s.Error(err)
	s.True(isForeignKeyViolation(err))
}

func (s *DatabaseTestSuite) TestListTasksByOwner_Isolation() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")

	_, err := s.client.CreateTask(s.ctx, alice.ID, "Task 1", nil)
	s.Require().NoError(err)
	_, err = s.client.CreateTask(s.ctx, alice.ID, "Task 2", nil)
	s.Require().NoError(err)
	_, err = s.client.CreateTask(s.ctx, bob.ID, "Other Task", nil)
	s.Require().NoError(err)

	tasks, err := s.client.ListTasksByOwner(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Len(tasks, 2)
	for _, task := range tasks {
		s.Equal(alice.ID, task.OwnerID)
		s.NotEqual("Other Task", task.Title)
	}

	counts, err := s.client.CountTasksByOwner(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), counts[alice.ID])
	s.Equal(int64(1), counts[bob.ID])
}

func (s *DatabaseTestSuite) TestSetTaskStatus() {
	user := s.createUser("testuser")
	task, err := s.client.CreateTask(s.ctx, user.ID, "Task", nil)
	s.Require().NoError(err)

	for _, status := range []string{"In Progress", "Completed", "Pending", "whatever label"} {
		s.Require().NoError(s.client.SetTaskStatus(s.ctx, task.ID, status))
		stored, err := s.client.GetTask(s.ctx, task.ID)
		s.Require().NoError(err)
		s.Equal(status, stored.Status)
	}
}

func (s *DatabaseTestSuite) TestSetTaskStatus_NotFound() {
	s.ErrorIs(s.client.SetTaskStatus(s.ctx, 12345, "Completed"), ErrNotFound)
}

func (s *DatabaseTestSuite) TestDeleteTask_ThenLookup() {
	user := s.createUser("testuser")
	task, err := s.client.CreateTask(s.ctx, user.ID, "To Delete", nil)
	s.Require().NoError(err)

	s.Require().NoError(s.client.DeleteTask(s.ctx, task.ID))

	_, err = s.client.GetTask(s.ctx, task.ID)
	s.ErrorIs(err, ErrNotFound)

	s.ErrorIs(s.client.DeleteTask(s.ctx, task.ID), ErrNotFound)
}

func (s *DatabaseTestSuite) TestGetStats() {
	alice := s.createUser("alice")
	s.createUser("bob")
	_, err := s.client.CreateUser(s.ctx, "root", "hash", true)
	s.Require().NoError(err)

	task, err := s.client.CreateTask(s.ctx, alice.ID, "A", nil)
	s.Require().NoError(err)
	_, err = s.client.CreateTask(s.ctx, alice.ID, "B", nil)
	s.Require().NoError(err)
	s.Require().NoError(s.client.SetTaskStatus(s.ctx, task.ID, "Completed"))

	stats, err := s.client.GetStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), stats.TotalUsers)
	s.Equal(int64(1), stats.AdminUsers)
	s.Equal(int64(2), stats.TotalTasks)
	s.Equal(int64(1), stats.TasksByStatus["Completed"])
	s.Equal(int64(1), stats.TasksByStatus[StatusPending])
	s.Equal(int64(2), stats.UsersWithoutTasks)
}

func TestDatabaseTestSuite(t *testing.T) {
	suite.Run(t, new(DatabaseTestSuite))
}

func TestDSN(t *testing.T) {
	suite.Run(t, new(dsnSuite))
}

type dsnSuite struct{ suite.Suite }

func (s *dsnSuite) TestPlainPath() {
	s.Equal("data.db?_pragma=foreign_keys(1)", dsn("data.db"))
}

func (s *dsnSuite) TestPathWithQuery() {
	s.Equal("data.db?mode=rwc&_pragma=foreign_keys(1)", dsn("data.db?mode=rwc"))
}
