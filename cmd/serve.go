package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/moodboard/internal/server"
	"github.com/desertthunder/moodboard/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the web board until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.boardEngine()
	if err != nil {
		return err
	}

	addr := cmd.String("addr")
	if addr == "" {
		addr = r.config.Server.Addr()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(addr, server.NewRouter(engine, r.logger), r.logger)
	r.writePlain("Serving moodboard on http://%s (ctrl+c to stop)\n", addr)

	if cmd.Bool("open") {
		if err := shared.OpenBrowser("http://" + addr); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		}
	}

	return srv.ListenAndServe(ctx)
}
