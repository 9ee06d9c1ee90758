// The server API is the storage surface one instance shares with the
// others on the local network:
//
//	GET    /api/v1/health              # liveness probe (ping)
//	GET    /api/v1/tables/{table}      # fetchAll
//	GET    /api/v1/tables/{table}/{id} # fetchById
//	POST   /api/v1/tables/{table}      # insert
//	PUT    /api/v1/tables/{table}/{id} # update
//	DELETE /api/v1/tables/{table}/{id} # delete
package api

import (
	healthAPI "folharh/internal/app/server/api/http/health"
	"folharh/internal/app/server/api/http/middleware"
	"folharh/internal/app/server/api/http/middleware/logger"
	tablesAPI "folharh/internal/app/server/api/http/tables"
	"folharh/internal/storage"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health *healthAPI.Handler
	Tables *tablesAPI.Handler
}

// New builds the chi mux with every operation registered through huma.
func New(store storage.RowStore, province func() string, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("FolhaRH Storage API", "1.0.0")
	API := humachi.New(mux, config)

	h := handlers(store, province, log)
	h.Health.SetupRoutes(API)
	h.Tables.SetupRoutes(API)

	return mux
}

func handlers(store storage.RowStore, province func() string, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(province, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	tablesHandler := tablesAPI.NewHandler(store, province, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Tables: tablesHandler,
	}
}
