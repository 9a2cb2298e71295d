package policy

import (
	"github.com/jon4hz/tasktracker/internal/database"
)

// Actor is an authenticated user as seen by the policy.
type Actor interface {
	UserID() uint
	Admin() bool
}

// Action is something an actor attempts to do.
type Action string

const (
	ActionUpdateTask Action = "update_task"
	ActionDeleteTask Action = "delete_task"
	ActionListUsers  Action = "list_users"
)

// CanModify reports whether actorID owns task.
func CanModify(actorID uint, task *database.Task) bool {
	if task == nil {
		return false
	}
	return task.OwnerID == actorID
}

// CanViewAllUsers reports whether actor may enumerate every user.
func CanViewAllUsers(actor Actor) bool {
	return actor != nil && actor.Admin()
}

// Allowed decides whether actor may perform action on task.
// The task must already be resolved, task actions on a nil task are denied.
// Unknown actions are denied.
func Allowed(actor Actor, action Action, task *database.Task) bool {
	if actor == nil {
		return false
	}
	switch action {
	case ActionUpdateTask, ActionDeleteTask:
		return CanModify(actor.UserID(), task)
	case ActionListUsers:
		return CanViewAllUsers(actor)
	default:
		return false
	}
}
