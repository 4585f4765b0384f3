// Command catalog-check fetches the street and neighborhood reference lists
// from the configured spreadsheet and reports what the server would serve.
// Use it to verify spreadsheet credentials, tab names, and column headers
// before a deploy.
//
// Flags:
//
//	--sample  number of sample values to print per list (default: 5)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/viamunicipal/potholes-backend/internal/adapter/sheets"
	"github.com/viamunicipal/potholes-backend/internal/app"
	"github.com/viamunicipal/potholes-backend/internal/config"
)

func main() {
	sampleFlag := flag.Int("sample", 5, "sample values to print per list")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := sheets.New(ctx, cfg.Catalog, cfg.Storage.CredentialsJSON)
	if err != nil {
		logger.Error("connect spreadsheet", slog.String("error", err.Error()))
		os.Exit(1)
	}

	streets, err := client.FetchStreets(ctx)
	if err != nil {
		logger.Error("fetch streets", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("streets fetched",
		slog.Int("count", len(streets)),
		slog.Any("sample", sample(streets, *sampleFlag)),
	)

	neighborhoods, err := client.FetchNeighborhoods(ctx)
	if err != nil {
		logger.Error("fetch neighborhoods", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("neighborhoods fetched",
		slog.Int("count", len(neighborhoods)),
		slog.Any("sample", sample(neighborhoods, *sampleFlag)),
	)
}

func sample(values []string, n int) []string {
	if len(values) < n {
		n = len(values)
	}
	return values[:n]
}
