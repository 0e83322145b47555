package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"todo-api/internal/models"
	"todo-api/internal/services"
)

type taskResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	IsDone    bool   `json:"is_done"`
	CreatedAt string `json:"created_at"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:        task.ID,
		Title:     task.Title,
		IsDone:    task.IsDone,
		CreatedAt: task.CreatedAt.Format(time.RFC3339),
	}
}

func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	logger := h.requestLogger(c)
	filter := models.ParseStatusFilter(c.Query("status"))

	tasks, err := h.tasks.ListTasks(c.Request.Context(), filter)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to list tasks")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	response := make([]taskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = newTaskResponse(task)
	}
	c.JSON(http.StatusOK, response)
}

type createTaskRequest struct {
	Title string `json:"title"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	logger := h.requestLogger(c)

	// An absent or malformed body behaves like an empty object; the
	// empty-title validation below produces the client-facing error.
	var req createTaskRequest
	_ = c.ShouldBindJSON(&req)

	task, err := h.tasks.CreateTask(c.Request.Context(), req.Title)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyTitle):
			abort(c, newAPIError(http.StatusBadRequest, "title required"))
		case errors.Is(err, services.ErrTitleTooLong):
			abort(c, newAPIError(http.StatusBadRequest, "title too long"))
		default:
			logger.Error().
				Err(err).
				Msg("failed to create task")
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleToggleTask(c *gin.Context) {
	logger := h.requestLogger(c)

	// Non-integer ids never match a task, so they are a 404 like any
	// other unknown id.
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abort(c, newAPIError(http.StatusNotFound, "not found"))
		return
	}

	task, err := h.tasks.ToggleTask(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newAPIError(http.StatusNotFound, "not found"))
			return
		}

		logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to toggle task")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	logger := h.requestLogger(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abort(c, newAPIError(http.StatusNotFound, "not found"))
		return
	}

	err = h.tasks.DeleteTask(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newAPIError(http.StatusNotFound, "not found"))
			return
		}

		logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleBulkDeleteTasks(c *gin.Context) {
	logger := h.requestLogger(c)
	filter := models.ParseStatusFilter(c.Query("status"))

	deleted, err := h.tasks.DeleteTasks(c.Request.Context(), filter)
	if err != nil {
		logger.Error().
			Err(err).
			Str("filter", string(filter)).
			Msg("failed to bulk delete tasks")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
