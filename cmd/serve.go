package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsjester/internal/scheduler"
	"newsjester/internal/server"
	"newsjester/internal/web"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the news endpoint and the front-end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	start := time.Now()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	a, err := newApp(ctx, os.Stdout)
	if err != nil {
		return err
	}
	log := a.log

	sched := scheduler.New(ctx, a.cfg.FeedProbeSpec, a.fetcher, a.cfg.FeedURLs, log)
	if err = sched.Start(); err != nil {
		log.ErrorContext(ctx, "Failed to start scheduler",
			"error", err,
			"spec", sched.Spec())

		return err
	}
	defer sched.Stop()
	log.InfoContext(ctx, "Scheduler is started",
		"enabled", sched.Enabled(),
		"spec", sched.Spec(),
		"timezone", time.FixedZone(scheduler.Timezone, scheduler.TimezoneOffsetSeconds).String())

	srv := server.New(a.cfg.ListenAddr, a.service, web.FS(), writeTimeout(a.cfg), log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	log.InfoContext(ctx, "Server is started",
		"addr", srv.Addr(),
		"newsPath", server.NewsPath)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)

	select {
	case sig := <-c:
		log.InfoContext(ctx, "Shutdown signal is received",
			"signal", sig.String())
	case err = <-errCh:
		if err != nil {
			log.ErrorContext(ctx, "Server is stopped unexpectedly",
				"error", err)

			return err
		}
	case <-ctx.Done():
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(shutdownCtx, "Failed to shut down server",
			"error", err)

		return err
	}

	log.InfoContext(shutdownCtx, "Server is stopped",
		"uptimeSeconds", time.Since(start).Seconds())

	return nil
}
