// Command server runs the pothole field-reporting HTTP API.
//
// Configuration is read from environment variables (see internal/config).
// The process exits on SIGINT/SIGTERM after draining in-flight requests.
//
// Exit codes: 0 = clean shutdown, 1 = startup or serve error.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/viamunicipal/potholes-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
