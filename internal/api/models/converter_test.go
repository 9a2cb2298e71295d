package models

import (
	"testing"
	"time"

	"github.com/jon4hz/tasktracker/internal/database"
	"github.com/jon4hz/tasktracker/internal/engine"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestToTaskItems(t *testing.T) {
	now := time.Now()
	tasks := []database.Task{
		{ID: 1, Title: "No description", Status: "Pending", CreatedAt: now},
		{ID: 2, Title: "With description", Description: lo.ToPtr("details"), Status: "Completed"},
	}

	items := ToTaskItems(tasks)

	assert.Len(t, items, 2)
	assert.Equal(t, TaskItem{ID: 1, Title: "No description", Status: "Pending", CreatedAt: now}, items[0])
	assert.Equal(t, "details", items[1].Description)
	assert.Equal(t, "Completed", items[1].Status)
}

func TestToUserItems(t *testing.T) {
	users := []engine.UserSummary{
		{User: database.User{ID: 1, Username: "admin", IsAdmin: true, PasswordHash: "secret"}, TaskCount: 3},
		{User: database.User{ID: 2, Username: "bob"}},
	}

	items := ToUserItems(users)

	assert.Equal(t, []UserItem{
		{ID: 1, Username: "admin", IsAdmin: true, TaskCount: 3},
		{ID: 2, Username: "bob"},
	}, items)
}

func TestIdentityImplementsActor(t *testing.T) {
	id := ToIdentity(&database.User{ID: 9, Username: "alice", IsAdmin: true})

	assert.Equal(t, uint(9), id.UserID())
	assert.True(t, id.Admin())
	assert.Equal(t, "alice", id.Username)
}

func TestResultHelpers(t *testing.T) {
	assert.Equal(t, Result{Success: true, Message: "ok"}, Ok("ok"))
	assert.Equal(t, Result{Success: false, Message: "nope"}, Fail("nope"))
}
