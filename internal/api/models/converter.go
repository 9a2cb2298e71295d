package models

import (
	"github.com/jon4hz/tasktracker/internal/database"
	"github.com/jon4hz/tasktracker/internal/engine"
	"github.com/samber/lo"
)

// ToIdentity converts a database.User to the Identity stored for a request.
func ToIdentity(u *database.User) *Identity {
	return &Identity{
		ID:       u.ID,
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
	}
}

// ToTaskItem converts a database.Task to a TaskItem. A NULL description renders as empty.
func ToTaskItem(t database.Task) TaskItem {
	return TaskItem{
		ID:          t.ID,
		Title:       t.Title,
		Description: lo.FromPtr(t.Description),
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
	}
}

// ToTaskItems converts a slice of database.Task to TaskItems.
func ToTaskItems(tasks []database.Task) []TaskItem {
	return lo.Map(tasks, func(t database.Task, _ int) TaskItem {
		return ToTaskItem(t)
	})
}

// ToUserItems converts user summaries to UserItems. Password hashes never leave this package.
func ToUserItems(users []engine.UserSummary) []UserItem {
	return lo.Map(users, func(u engine.UserSummary, _ int) UserItem {
		return UserItem{
			ID:        u.ID,
			Username:  u.Username,
			IsAdmin:   u.IsAdmin,
			TaskCount: u.TaskCount,
			CreatedAt: u.CreatedAt,
		}
	})
}
