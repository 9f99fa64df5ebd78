package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cardhub/internal/app/bootstrap"
)

// Migration entrypoint.
// Data flow:
// 1) Load config.
// 2) Connect to the configured store.
// 3) Create tables or indexes, seed the admin account, exit.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildMigrate(ctx)
	if err != nil {
		log.Fatalf("bootstrap migrate failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("migrate close failed: %v", err)
		}
	}()

	if err := app.Run(ctx); err != nil {
		log.Printf("cardhub migrate failed: %v", err)
		os.Exit(1)
	}
}
