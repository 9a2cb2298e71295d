package policy

import (
	"testing"

	"github.com/jon4hz/tasktracker/internal/database"
	"github.com/stretchr/testify/assert"
)

type actor struct {
	id    uint
	admin bool
}

func (a actor) UserID() uint { return a.id }
func (a actor) Admin() bool  { return a.admin }

func TestCanModify(t *testing.T) {
	task := &database.Task{ID: 1, OwnerID: 7}

	assert.True(t, CanModify(7, task))
	assert.False(t, CanModify(8, task))
	assert.False(t, CanModify(0, task))
	assert.False(t, CanModify(7, nil))
}

func TestCanModify_OwnershipIsolation(t *testing.T) {
	for owner := uint(1); owner <= 5; owner++ {
		task := &database.Task{OwnerID: owner}
		for other := uint(1); other <= 5; other++ {
			assert.Equal(t, owner == other, CanModify(other, task), "owner=%d actor=%d", owner, other)
		}
	}
}

func TestCanModify_AdminHasNoOverride(t *testing.T) {
	task := &database.Task{OwnerID: 1}
	assert.False(t, Allowed(actor{id: 2, admin: true}, ActionUpdateTask, task))
	assert.False(t, Allowed(actor{id: 2, admin: true}, ActionDeleteTask, task))
}

func TestCanViewAllUsers(t *testing.T) {
	assert.True(t, CanViewAllUsers(actor{id: 1, admin: true}))
	assert.False(t, CanViewAllUsers(actor{id: 1, admin: false}))
	assert.False(t, CanViewAllUsers(nil))
}

func TestAllowed(t *testing.T) {
	task := &database.Task{OwnerID: 1}
	owner := actor{id: 1}
	stranger := actor{id: 2}
	admin := actor{id: 3, admin: true}

	tests := []struct {
		name   string
		actor  Actor
		action Action
		task   *database.Task
		want   bool
	}{
		{"owner updates", owner, ActionUpdateTask, task, true},
		{"owner deletes", owner, ActionDeleteTask, task, true},
		{"stranger updates", stranger, ActionUpdateTask, task, false},
		{"stranger deletes", stranger, ActionDeleteTask, task, false},
		{"unresolved task", owner, ActionUpdateTask, nil, false},
		{"admin lists users", admin, ActionListUsers, nil, true},
		{"user lists users", owner, ActionListUsers, nil, false},
		{"nil actor", nil, ActionListUsers, nil, false},
		{"unknown action", admin, Action("promote"), task, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.actor, tt.action, tt.task))
		})
	}
}
