package app

import (
	"context"

	"todo-api/internal/config"
	"todo-api/internal/storage"
)

// MustOpenStorage resolves the connection target from configuration,
// opens the pool, verifies it answers and bootstraps the schema. The
// engine is returned rather than stashed in a global so the HTTP layer
// receives it explicitly.
func MustOpenStorage() *storage.Engine {
	cfg := config.Global().Database
	uri := cfg.URI()

	engine, err := storage.Open(uri, globalLogger)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("driver", uri.Driver).
			Msg("failed to open storage")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err = engine.Ping(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("driver", uri.Driver).
			Msg("failed to ping storage")
		panic(err)
	}

	err = engine.EnsureSchema(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ensure schema")
		panic(err)
	}

	globalLogger.Info().
		Str("driver", uri.Driver).
		Msg("opened storage")
	return engine
}

func CloseStorage(engine *storage.Engine) {
	err := engine.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close storage")
		return
	}
	globalLogger.Info().Msg("closed storage")
}
