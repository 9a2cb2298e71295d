package models

import (
	"time"
)

// Identity is the authenticated user resolved for the current request.
type Identity struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// UserID implements policy.Actor.
func (i *Identity) UserID() uint { return i.ID }

// Admin implements policy.Actor.
func (i *Identity) Admin() bool { return i.IsAdmin }

// Result is the outcome of a request, shown to the user once on the next page.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Ok creates a successful result.
func Ok(message string) Result {
	return Result{Success: true, Message: message}
}

// Fail creates a failed result.
func Fail(message string) Result {
	return Result{Success: false, Message: message}
}

// TaskItem represents a task for display in the task list.
type TaskItem struct {
	ID          uint
	Title       string
	Description string
	Status      string
	CreatedAt   time.Time
}

// UserItem represents a user for display in the admin dashboard.
type UserItem struct {
	ID        uint
	Username  string
	IsAdmin   bool
	TaskCount int64
	CreatedAt time.Time
}
