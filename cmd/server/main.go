// Command server runs the lexatlas HTTP API.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/lexatlas/lexatlas-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
