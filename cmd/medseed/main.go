package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/gyeh/medseed/internal/exitcode"
	"github.com/gyeh/medseed/internal/seed"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	log := newLogger()
	var pe *seed.PipelineError
	if errors.As(err, &pe) {
		log.Error().Err(pe.Err).Str("stage", pe.Stage).Msg("seed failed")
	} else {
		log.Error().Err(err).Msg("medseed failed")
	}
	os.Exit(exitcode.For(err))
}
