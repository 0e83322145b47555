package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"todo-api/internal/config"
	"todo-api/internal/delivery/http/api"
	"todo-api/internal/services"
	"todo-api/internal/storage"
)

func MustListenAndServeHTTP(engine *storage.Engine) {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	registerRoutes(router, engine)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter, engine *storage.Engine) {
	taskService := services.NewTaskService(globalLogger, engine)
	handler := api.New(globalLogger, engine, taskService)

	router.Use(handler.HandleRequestID)

	tasks := router.Group("/api/tasks")
	tasks.GET("", handler.HandleListTasks)
	tasks.POST("", handler.HandleCreateTask)
	tasks.PATCH("/:id/toggle", handler.HandleToggleTask)
	tasks.DELETE("/:id", handler.HandleDeleteTask)
	tasks.DELETE("", handler.HandleBulkDeleteTasks)

	router.GET("/health", handler.HandleHealth)
	router.GET("/", handler.HandleIndex)
}
