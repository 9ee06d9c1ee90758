package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"folharh/internal/app/server/api"
	"folharh/internal/infrastructure/storage/sqlite"

	"github.com/spf13/cobra"
)

var servePort int

// serveCmd turns this instance into the network server: the same table API
// the dedicated server binary exposes, backed by this machine's SQLite
// file. Peers in client mode point their serverIP here.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Servir os dados desta máquina às outras na rede",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return fmt.Errorf("erro ao abrir a base de dados: %w", err)
		}
		defer store.Close()

		router := api.New(store, app.Tenant, log)
		addr := ":" + strconv.Itoa(servePort)
		srv := &http.Server{Addr: addr, Handler: router}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info("a servir a rede", "address", addr, "province", app.Tenant())
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 9480, "porto de escuta")
	rootCmd.AddCommand(serveCmd)
}
