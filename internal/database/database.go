package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// ErrNotFound is returned when a task or user id does not resolve to a row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrOwnerNotFound is returned when a task is created for a user that does not exist.
	ErrOwnerNotFound = errors.New("task owner not found")
)

// DB is the persistence contract used by the rest of the application.
type DB interface {
	// Users
	CreateUser(ctx context.Context, username, passwordHash string, isAdmin bool) (*User, error)
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	GetAllUsers(ctx context.Context) ([]User, error)

	// Tasks
	CreateTask(ctx context.Context, ownerID uint, title string, description *string) (*Task, error)
	GetTask(ctx context.Context, id uint) (*Task, error)
	ListTasksByOwner(ctx context.Context, ownerID uint) ([]Task, error)
	CountTasksByOwner(ctx context.Context) (map[uint]int64, error)
	SetTaskStatus(ctx context.Context, id uint, status string) error
	DeleteTask(ctx context.Context, id uint) error

	// Statistics
	GetStats(ctx context.Context) (*Stats, error)
}

var _ DB = (*Client)(nil) // Ensure Client implements DB

// Client wraps the gorm.DB instance.
type Client struct {
	db *gorm.DB
}

// New creates a new database connection and performs migrations.
func New(dbpath string) (*Client, error) {
	db, err := gorm.Open(sqlite.Open(dsn(dbpath)), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&User{},
		&Task{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Client{db: db}, nil
}

// Close closes the underlying connection pool.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// dsn switches on foreign key enforcement, sqlite leaves it off per connection by default.
func dsn(dbpath string) string {
	sep := "?"
	if strings.Contains(dbpath, "?") {
		sep = "&"
	}
	return dbpath + sep + "_pragma=foreign_keys(1)"
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) ||
		strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
