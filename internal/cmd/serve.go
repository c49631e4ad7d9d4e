package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/renalplate/backend/config"
	httpDelivery "github.com/renalplate/backend/internal/delivery/http"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(overrides *config.Overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*overrides)
			if err != nil {
				return err
			}

			handler := httpDelivery.NewHandler(a.service, a.provider.Name())
			router := httpDelivery.SetupRouter(a.cfg, handler, a.logger)

			server := &http.Server{
				Addr:              fmt.Sprintf(":%s", a.cfg.Server.Port),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("server listening",
					"addr", server.Addr,
					"environment", a.cfg.Server.Environment,
					"provider", a.provider.Name())
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("failed to start server: %w", err)
			case <-ctx.Done():
			}

			a.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}
