package services

import (
	"context"
	"errors"

	"todo-api/internal/models"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrEmptyTitle   = errors.New("title required")
	ErrTitleTooLong = errors.New("title too long")
)

// maxTitleLen matches the VARCHAR(255) column; enforced here so sqlite,
// which ignores the declared length, behaves like postgres.
const maxTitleLen = 255

type TaskService interface {
	// ListTasks returns tasks matching the filter, newest first.
	ListTasks(ctx context.Context, filter models.StatusFilter) ([]*models.Task, error)

	// CreateTask inserts a task with the trimmed title and returns it
	// with its assigned id. It returns ErrEmptyTitle if the title is
	// blank after trimming and ErrTitleTooLong over 255 characters.
	CreateTask(ctx context.Context, title string) (*models.Task, error)

	// ToggleTask flips the completion flag of the task with the given
	// id. It returns ErrTaskNotFound if no such task exists.
	ToggleTask(ctx context.Context, id int64) (*models.Task, error)

	// DeleteTask removes a single task, or returns ErrTaskNotFound.
	DeleteTask(ctx context.Context, id int64) error

	// DeleteTasks removes every task matching the filter in one
	// statement and reports how many rows went away. The filter
	// semantics are exactly those of ListTasks.
	DeleteTasks(ctx context.Context, filter models.StatusFilter) (int64, error)
}
