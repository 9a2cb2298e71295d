package database

import (
	"context"

	"github.com/charmbracelet/log"
)

// Stats summarizes the contents of the database.
type Stats struct {
	TotalUsers        int64
	AdminUsers        int64
	TotalTasks        int64
	TasksByStatus     map[string]int64
	UsersWithoutTasks int64
}

func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	db := c.db.WithContext(ctx)
	stats := Stats{TasksByStatus: make(map[string]int64)}

	if err := db.Model(&User{}).Count(&stats.TotalUsers).Error; err != nil {
		log.Error("failed to count users", "error", err)
		return nil, err
	}
	if err := db.Model(&User{}).Where("is_admin = ?", true).Count(&stats.AdminUsers).Error; err != nil {
		log.Error("failed to count admin users", "error", err)
		return nil, err
	}
	if err := db.Model(&Task{}).Count(&stats.TotalTasks).Error; err != nil {
		log.Error("failed to count tasks", "error", err)
		return nil, err
	}

	var rows []struct {
		Status string
		Count  int64
	}
	if err := db.Model(&Task{}).Select("status, count(*) as count").Group("status").Scan(&rows).Error; err != nil {
		log.Error("failed to count tasks by status", "error", err)
		return nil, err
	}
	for _, row := range rows {
		stats.TasksByStatus[row.Status] = row.Count
	}

	if err := db.Model(&User{}).
		Where("NOT EXISTS (SELECT 1 FROM tasks WHERE tasks.owner_id = users.id)").
		Count(&stats.UsersWithoutTasks).Error; err != nil {
		log.Error("failed to count users without tasks", "error", err)
		return nil, err
	}

	return &stats, nil
}
