package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gramfetch/pkg/cli/config"
	controller "github.com/m-mizutani/gramfetch/pkg/controller/http"
	"github.com/m-mizutani/gramfetch/pkg/infra/instaloader"
	"github.com/m-mizutani/gramfetch/pkg/usecase"
	"github.com/m-mizutani/gramfetch/pkg/utils/async"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		loaderCfg config.Loader
		cfgPath   string
	)

	flags := append(serverCfg.Flags(), loaderCfg.Flags()...)
	flags = append(flags, config.FileFlag(&cfgPath))

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if cfgPath != "" {
				fc, err := config.LoadFile(cfgPath)
				if err != nil {
					return err
				}
				if err := fc.Apply(c, &serverCfg, &loaderCfg); err != nil {
					return err
				}
			}

			logger.Info("Starting gramfetch server",
				slog.String("addr", serverCfg.Addr),
				slog.String("base_dir", loaderCfg.BaseDir),
				slog.String("loader_binary", loaderCfg.Binary),
			)

			runner := instaloader.New(
				instaloader.WithBinary(loaderCfg.Binary),
				instaloader.WithTimeout(loaderCfg.Timeout),
				instaloader.WithHeartbeat(loaderCfg.ProgressInterval),
				instaloader.WithArgs(loaderCfg.ExtraArgs),
			)

			fetchUC := usecase.NewFetch(runner,
				usecase.WithBaseDir(loaderCfg.BaseDir),
				usecase.WithDefaultFolder(loaderCfg.DefaultFolder),
			)

			// Warn early if the downloader is missing; the form page
			// repeats the hint per request.
			async.Dispatch(ctx, func(ctx context.Context) error {
				if err := runner.CheckInstalled(ctx); err != nil {
					ctxlog.From(ctx).Warn("instaloader is not available", "error", err)
				}
				return nil
			})

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				fetchUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithBaseDir(loaderCfg.BaseDir),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
