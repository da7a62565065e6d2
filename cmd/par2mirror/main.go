package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/raoulx24/par2mirror/internal/cli"
)

func main() {
	// Interrupts kill running engine processes and stop the batch
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Main(ctx)
	stop()
	os.Exit(code)
}
