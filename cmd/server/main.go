package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"folharh/internal/app/server/api"
	"folharh/internal/app/server/config"
	"folharh/internal/infrastructure/storage/postgres"
	"folharh/internal/infrastructure/storage/sqlite"
	"folharh/internal/storage"
	"folharh/internal/utils/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	var store storage.RowStore
	var err error
	if cfg.DB.DatabaseURI != "" {
		store, err = postgres.New(cfg)
	} else {
		store, err = sqlite.New(cfg.DB.SQLitePath)
	}
	if err != nil {
		log.Error("erro ao inicializar o armazenamento", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	router := api.New(store, func() string { return cfg.Province }, log)

	srv := &http.Server{
		Addr:    cfg.Server.RunAddress,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("servidor de armazenamento iniciado", "address", cfg.Server.RunAddress, "province", cfg.Province)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("erro no servidor HTTP", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("erro ao encerrar o servidor", "error", err)
	}
	log.Info("servidor encerrado")
}
