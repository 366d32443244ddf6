package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/libtour/libtour/cmd/libtour"
	"github.com/libtour/libtour/pkg/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := libtour.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ui.NewPrinter(os.Stderr, ui.UseColor(ui.ColorAuto, os.Stderr)).Error(err)
		stop()
		os.Exit(1)
	}
}
