package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"todo-api/internal/services"
	"todo-api/internal/storage"
)

type Handler interface {
	HandleRequestID(c *gin.Context)

	HandleListTasks(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleToggleTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
	HandleBulkDeleteTasks(c *gin.Context)

	HandleHealth(c *gin.Context)
	HandleIndex(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	tasks  services.TaskService
	// Used by the health probe only; task handlers go through the service.
	engine *storage.Engine
}

func New(
	logger zerolog.Logger,
	engine *storage.Engine,
	taskService services.TaskService,
) Handler {
	return &handlerImpl{
		logger: logger,
		tasks:  taskService,
		engine: engine,
	}
}
