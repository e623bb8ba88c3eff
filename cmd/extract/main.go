package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	"github.com/expenso-app/receipt-extraction/internal/common"
	"github.com/expenso-app/receipt-extraction/internal/extract"
)

func main() {
	var (
		in      = flag.String("in", "", "recognized-text file to extract (default: stdin)")
		asJSON  = flag.Bool("json", false, "emit JSON instead of the flat key=value line")
		locale  = flag.String("locale", "", "locale hint, e.g. fr-CA or en-CA (default: EXTRACT_LOCALE)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	// Results go to stdout; logs stay on stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *locale == "" {
		*locale = cfg.Engine.Locale
	}

	var (
		raw []byte
		err error
	)
	if *in == "" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(*in)
	}
	if err != nil {
		logger.Error("read input", "path", *in, "error", err)
		os.Exit(1)
	}

	eng := extract.NewExtractor(extract.Config{
		Locale:         *locale,
		HeaderFraction: cfg.Engine.HeaderFraction,
		ItemsCeiling:   cfg.Engine.ItemsCeiling,
		Tolerance:      decimal.NewFromFloat(cfg.Engine.Tolerance),
	}, logger)

	x, err := eng.Extract(context.Background(), extract.RawRecognition{Text: string(raw), Locale: *locale})
	if err != nil {
		if errors.Is(err, extract.ErrNoTextRecognized) {
			logger.Error("no text recognized in input", "path", *in)
		} else {
			logger.Error("extraction failed", "error", err)
		}
		os.Exit(1)
	}

	if *asJSON {
		b, err := json.Marshal(x)
		if err != nil {
			logger.Error("encode result", "error", err)
			os.Exit(1)
		}
		if err := extract.ValidateExtractionJSON(b); err != nil {
			logger.Error("result failed schema validation", "error", err)
			os.Exit(1)
		}
		fmt.Println(string(b))
		return
	}
	fmt.Println(x.EncodeKeyValue())
}
