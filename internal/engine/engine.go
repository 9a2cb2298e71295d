package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/tasktracker/internal/database"
	"github.com/jon4hz/tasktracker/internal/policy"
)

var (
	// ErrForbidden indicates that the actor is not allowed to perform the action.
	ErrForbidden = errors.New("forbidden")
	// ErrTitleRequired indicates that a task was submitted without a title.
	ErrTitleRequired = errors.New("title is required")
)

// Engine coordinates the task store and the authorization policy.
// Every operation takes the resolved actor explicitly, nothing is read from ambient state.
type Engine struct {
	db database.DB
}

// New creates a new Engine instance.
func New(db database.DB) *Engine {
	return &Engine{db: db}
}

// UserSummary is a user together with the number of tasks they own.
type UserSummary struct {
	database.User
	TaskCount int64
}

// ListTasks returns the tasks owned by actor.
func (e *Engine) ListTasks(ctx context.Context, actor policy.Actor) ([]database.Task, error) {
	return e.db.ListTasksByOwner(ctx, actor.UserID())
}

// AddTask creates a pending task owned by actor.
func (e *Engine) AddTask(ctx context.Context, actor policy.Actor, title string, description *string) (*database.Task, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}

	task, err := e.db.CreateTask(ctx, actor.UserID(), title, description)
	if err != nil {
		if errors.Is(err, database.ErrOwnerNotFound) {
			log.Error("authenticated user has no database row", "userID", actor.UserID())
		}
		return nil, err
	}

	log.Debug("task created", "taskID", task.ID, "owner", actor.UserID())
	return task, nil
}

// UpdateTaskStatus replaces the status of a task owned by actor.
// A missing task is reported before ownership is considered.
func (e *Engine) UpdateTaskStatus(ctx context.Context, actor policy.Actor, taskID uint, status string) error {
	if _, err := e.authorize(ctx, actor, policy.ActionUpdateTask, taskID); err != nil {
		return err
	}

	if err := e.db.SetTaskStatus(ctx, taskID, status); err != nil {
		return err
	}

	log.Debug("task status updated", "taskID", taskID, "status", status, "actor", actor.UserID())
	return nil
}

// DeleteTask removes a task owned by actor.
func (e *Engine) DeleteTask(ctx context.Context, actor policy.Actor, taskID uint) error {
	if _, err := e.authorize(ctx, actor, policy.ActionDeleteTask, taskID); err != nil {
		return err
	}

	if err := e.db.DeleteTask(ctx, taskID); err != nil {
		return err
	}

	log.Debug("task deleted", "taskID", taskID, "actor", actor.UserID())
	return nil
}

// ListUsers returns every user with their task count. Only admins may call it.
func (e *Engine) ListUsers(ctx context.Context, actor policy.Actor) ([]UserSummary, error) {
	if !policy.Allowed(actor, policy.ActionListUsers, nil) {
		log.Warn("user listing denied", "actor", actor.UserID())
		return nil, ErrForbidden
	}

	users, err := e.db.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	counts, err := e.db.CountTasksByOwner(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	summaries := make([]UserSummary, len(users))
	for i, user := range users {
		summaries[i] = UserSummary{
			User:      user,
			TaskCount: counts[user.ID],
		}
	}
	return summaries, nil
}

func (e *Engine) authorize(ctx context.Context, actor policy.Actor, action policy.Action, taskID uint) (*database.Task, error) {
	task, err := e.db.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !policy.Allowed(actor, action, task) {
		log.Warn("task action denied", "action", action, "taskID", taskID, "actor", actor.UserID(), "owner", task.OwnerID)
		return nil, ErrForbidden
	}
	return task, nil
}
