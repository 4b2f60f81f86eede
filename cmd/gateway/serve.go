package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"soustackgw/internal/handler"
	"soustackgw/internal/router"
	"soustackgw/internal/server"
	"soustackgw/internal/service"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve tool calls as NDJSON over stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.logger.Info("serving stdio", zap.String("version", version))
			srv := server.NewStdioServer(a.dispatcher, cmd.OutOrStdout(), a.logger.Named("stdio"))

			// A blocked stdin read cannot be interrupted, so a signal stops
			// waiting on Serve rather than on the reader.
			done := make(chan error, 1)
			go func() { done <- srv.Serve(ctx, cmd.InOrStdin()) }()

			select {
			case err := <-done:
				if err != nil {
					return fmt.Errorf("stdio server failed: %w", err)
				}
				a.logger.Info("stdin closed, exiting")
			case <-ctx.Done():
				a.logger.Info("interrupted, exiting")
			}
			return nil
		},
	}
}

func newServeHTTPCmd(opts *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve-http",
		Short: "Serve tool calls over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			if port != "" {
				a.cfg.Server.Port = port
			}
			if a.cfg.Server.Environment == "production" {
				gin.SetMode(gin.ReleaseMode)
			}

			var tokens service.TokenService
			if a.cfg.Auth.Enabled() {
				tokens = service.NewTokenService(a.cfg.Auth)
			} else {
				a.logger.Warn("auth disabled, tool API is open")
			}

			r := router.Setup(
				handler.NewToolHandler(a.dispatcher, a.logger.Named("http")),
				handler.NewHealthHandler(),
				tokens,
				a.cfg.CORS.AllowedOrigins,
				a.logger.Named("http"),
			)

			srv := &http.Server{
				Addr:         a.cfg.Server.Port,
				Handler:      r,
				ReadTimeout:  a.cfg.Server.ReadTimeout,
				WriteTimeout: a.cfg.Server.WriteTimeout,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				a.logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("version", version))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				a.logger.Info("shutting down server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&port, "addr", "", "listen address, overrides server.port")
	return cmd
}
