package database

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// StatusPending is the status every new task starts with.
const StatusPending = "Pending"

// Task is a unit of work owned by exactly one user.
// Status is a free-form label, any value supplied by the owner is stored as-is.
type Task struct {
	ID          uint    `gorm:"primarykey"`
	Title       string  `gorm:"not null"`
	Description *string `gorm:"type:text"`
	Status      string  `gorm:"not null;default:'Pending'"`
	OwnerID     uint    `gorm:"not null;index"`
	Owner       *User   `gorm:"foreignKey:OwnerID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateTask stores a new pending task for ownerID.
// A nil description is stored as NULL.
func (c *Client) CreateTask(ctx context.Context, ownerID uint, title string, description *string) (*Task, error) {
	db := c.db.WithContext(ctx)

	var owners int64
	if err := db.Model(&User{}).Where("id = ?", ownerID).Count(&owners).Error; err != nil {
		log.Error("failed to look up task owner", "error", err)
		return nil, err
	}
	if owners == 0 {
		return nil, ErrOwnerNotFound
	}

	task := Task{
		Title:       title,
		Description: description,
		Status:      StatusPending,
		OwnerID:     ownerID,
	}
	if err := db.Create(&task).Error; err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrOwnerNotFound
		}
		log.Error("failed to create task", "error", err)
		return nil, err
	}
	return &task, nil
}

func (c *Client) GetTask(ctx context.Context, id uint) (*Task, error) {
	var task Task
	if err := c.db.WithContext(ctx).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get task", "error", err)
		return nil, err
	}
	return &task, nil
}

func (c *Client) ListTasksByOwner(ctx context.Context, ownerID uint) ([]Task, error) {
	var tasks []Task
	if err := c.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&tasks).Error; err != nil {
		log.Error("failed to list tasks", "error", err)
		return nil, err
	}
	return tasks, nil
}

// CountTasksByOwner returns the number of tasks per owner id. Owners without tasks are absent.
func (c *Client) CountTasksByOwner(ctx context.Context) (map[uint]int64, error) {
	var rows []struct {
		OwnerID uint
		Count   int64
	}
	if err := c.db.WithContext(ctx).
		Model(&Task{}).
		Select("owner_id, count(*) as count").
		Group("owner_id").
		Scan(&rows).Error; err != nil {
		log.Error("failed to count tasks", "error", err)
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.OwnerID] = row.Count
	}
	return counts, nil
}

// SetTaskStatus replaces the status unconditionally.
func (c *Client) SetTaskStatus(ctx context.Context, id uint, status string) error {
	result := c.db.WithContext(ctx).Model(&Task{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		log.Error("failed to update task status", "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTask removes the task permanently. Deleting a missing task returns ErrNotFound.
func (c *Client) DeleteTask(ctx context.Context, id uint) error {
	result := c.db.WithContext(ctx).Delete(&Task{}, id)
	if result.Error != nil {
		log.Error("failed to delete task", "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
