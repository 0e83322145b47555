package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"todo-api/internal/models"
	"todo-api/internal/storage"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	engine *storage.Engine
}

func NewTaskService(
	logger zerolog.Logger,
	engine *storage.Engine,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		engine: engine,
	}
}

// statusPredicate builds the WHERE fragment shared by ListTasks and
// DeleteTasks, so listing and bulk deletion can never disagree on what
// a filter matches.
func statusPredicate(filter models.StatusFilter) (string, []any) {
	switch filter {
	case models.FilterActive:
		return " WHERE is_done = ?", []any{false}
	case models.FilterCompleted:
		return " WHERE is_done = ?", []any{true}
	default:
		return "", nil
	}
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, filter models.StatusFilter) ([]*models.Task, error) {
	query := "SELECT id, title, is_done, created_at FROM tasks"
	where, args := statusPredicate(filter)
	query += where + " ORDER BY created_at DESC, id DESC"

	rows, err := s.engine.DB().QueryContext(ctx, s.engine.Rebind(query), args...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("filter", string(filter)).
			Msg("failed to select tasks")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := new(models.Task)
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.IsDone,
			&task.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Str("filter", string(filter)).
		Msg("selected tasks")
	return tasks, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, title string) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len([]rune(title)) > maxTitleLen {
		return nil, ErrTitleTooLong
	}

	task := &models.Task{
		Title:     title,
		IsDone:    false,
		CreatedAt: time.Now().UTC(),
	}

	const insertTaskQuery = `
INSERT INTO tasks (title, is_done, created_at)
VALUES (?, ?, ?)
RETURNING id
`
	err := s.engine.DB().QueryRowContext(
		ctx,
		s.engine.Rebind(insertTaskQuery),
		task.Title,
		task.IsDone,
		task.CreatedAt,
	).Scan(&task.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) ToggleTask(ctx context.Context, id int64) (*models.Task, error) {
	task := &models.Task{ID: id}

	const toggleTaskQuery = `
UPDATE tasks
SET is_done = NOT is_done
WHERE id = ?
RETURNING title, is_done, created_at
`
	err := s.engine.DB().QueryRowContext(
		ctx,
		s.engine.Rebind(toggleTaskQuery),
		task.ID,
	).Scan(
		&task.Title,
		&task.IsDone,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn().
				Int64("task_id", id).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to toggle task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Bool("is_done", task.IsDone).
		Msg("toggled task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	const deleteTaskQuery = `
DELETE FROM tasks WHERE id = ?
`
	res, err := s.engine.DB().ExecContext(
		ctx,
		s.engine.Rebind(deleteTaskQuery),
		id,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to read affected rows")
		return err
	}
	if affected == 0 {
		s.logger.Warn().
			Int64("task_id", id).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.logger.Info().
		Int64("task_id", id).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) DeleteTasks(ctx context.Context, filter models.StatusFilter) (int64, error) {
	query := "DELETE FROM tasks"
	where, args := statusPredicate(filter)
	query += where

	res, err := s.engine.DB().ExecContext(ctx, s.engine.Rebind(query), args...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("filter", string(filter)).
			Msg("failed to bulk delete tasks")
		return 0, err
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to read affected rows")
		return 0, err
	}

	s.logger.Info().
		Int64("deleted", deleted).
		Str("filter", string(filter)).
		Msg("bulk deleted tasks")
	return deleted, nil
}
