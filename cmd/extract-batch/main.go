package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expenso-app/receipt-extraction/internal/async"
	"github.com/expenso-app/receipt-extraction/internal/common"
	"github.com/expenso-app/receipt-extraction/internal/export"
	"github.com/expenso-app/receipt-extraction/internal/extract"
)

func main() {
	var (
		dir = flag.String("dir", "", "directory of recognized-text .txt files (required)")
		out = flag.String("out", "", "output XLSX path (default: <dir>/../extractions.xlsx)")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if *dir == "" {
		logger.Error("usage", "cmd", "extract-batch --dir <folder> [--out file.xlsx]")
		os.Exit(2)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "extractions.xlsx")
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var paths []string
	err := filepath.WalkDir(*dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".txt") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		logger.Error("walk directory", "dir", *dir, "error", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		logger.Error("no .txt files found", "dir", *dir)
		os.Exit(1)
	}

	eng := extract.NewExtractor(extract.Config{
		Locale:         cfg.Engine.Locale,
		HeaderFraction: cfg.Engine.HeaderFraction,
		ItemsCeiling:   cfg.Engine.ItemsCeiling,
		Tolerance:      decimal.NewFromFloat(cfg.Engine.Tolerance),
	}, logger)

	start := time.Now()
	ctx := context.Background()

	results := make(chan async.Result, len(paths))
	var rows []async.Result
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for r := range results {
			rows = append(rows, r)
		}
	}()

	q := async.NewExtractorQueue(eng, results, logger,
		async.WithWorkers(cfg.Batch.Workers),
		async.WithQueueSize(cfg.Batch.QueueSize),
		async.WithLocale(cfg.Engine.Locale),
	)
	for _, p := range paths {
		_ = q.Enqueue(ctx, async.Job{ID: uuid.New(), Path: p, SubmittedAt: time.Now()})
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	q.Shutdown(shutdownCtx)
	cancel()
	close(results)
	<-collected

	// Workers finish in arbitrary order; sort for a stable workbook.
	sort.Slice(rows, func(i, j int) bool { return rows[i].Path < rows[j].Path })

	svc := export.NewService(logger)
	b, err := svc.BuildXLSX(rows)
	if err != nil {
		logger.Error("build workbook", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, b, 0o644); err != nil {
		logger.Error("write workbook", "path", *out, "error", err)
		os.Exit(1)
	}

	logger.Info("batch.done",
		"files", len(paths),
		"extracted", len(rows),
		"skipped", len(paths)-len(rows),
		"out", *out,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
