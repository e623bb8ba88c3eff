package extract

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/expenso-app/receipt-extraction/constants"
)

// Config carries every tunable the engine exposes. Zero values are replaced
// with documented defaults by NewExtractor, so Config{} is a valid starting
// point.
type Config struct {
	// Locale is the default language-region hint ("fr-CA"). French locales
	// read ambiguous dates day-first.
	Locale string
	// HeaderFraction caps the header at this share of all lines (0.20).
	HeaderFraction float64
	// ItemsCeiling bounds the item region at this share of all lines (0.75)
	// when no summary marker is found.
	ItemsCeiling float64
	// Tolerance is the absolute slack allowed in the
	// subtotal + taxes ≈ total agreement check (0.02 currency units).
	Tolerance decimal.Decimal
	// Weights are the confidence contributions per extracted field.
	Weights Weights
}

// Extractor runs the extraction pipeline. It is stateless between calls and
// safe for concurrent use.
type Extractor struct {
	cfg    Config
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Locale == "" {
		cfg.Locale = "fr-CA"
	}
	if cfg.HeaderFraction <= 0 || cfg.HeaderFraction > 1 {
		cfg.HeaderFraction = 0.20
	}
	if cfg.ItemsCeiling <= 0 || cfg.ItemsCeiling > 1 {
		cfg.ItemsCeiling = 0.75
	}
	if cfg.Tolerance.IsZero() {
		cfg.Tolerance = decimal.New(2, -2) // 0.02
	}
	if cfg.Weights.isZero() {
		cfg.Weights = DefaultWeights()
	}
	return &Extractor{cfg: cfg, logger: logger}
}

// Extract converts recognized receipt text into a structured record.
//
// The pipeline is a straight line: normalize, classify sections, fan the
// independent field extractors out, classify the category, score. Only
// normalization can fail (ErrNoTextRecognized on empty input); every
// extractor downstream reports absence instead of erroring, so a partial
// receipt yields a partial record rather than no record. The fan-out runs on
// pure functions over immutable inputs, so parallel and sequential execution
// produce byte-identical results.
func (e *Extractor) Extract(ctx context.Context, rec RawRecognition) (Extraction, error) {
	lines, err := NormalizeLines(rec.Text)
	if err != nil {
		return Extraction{}, err
	}

	secs := ClassifySections(lines, e.cfg.HeaderFraction, e.cfg.ItemsCeiling)

	locale := rec.Locale
	if locale == "" {
		locale = e.cfg.Locale
	}
	dayFirst := !strings.HasPrefix(strings.ToLower(locale), "en")

	var (
		vendor   string
		date     string
		subtotal *decimal.Decimal
		total    *decimal.Decimal
		taxes    TaxBreakdown
		items    []LineItem
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { vendor = extractVendor(secs.Header); return nil })
	g.Go(func() error { date = extractDate(secs.Header, secs.Summary, dayFirst); return nil })
	g.Go(func() error { subtotal = extractSubtotal(secs.Summary); return nil })
	g.Go(func() error { total = extractTotal(secs.Summary); return nil })
	g.Go(func() error { taxes = extractTaxes(secs.Summary); return nil })
	g.Go(func() error { items = ExtractItems(secs.Items); return nil })
	_ = g.Wait()

	folded := make([]string, 0, len(items)+1)
	folded = append(folded, Fold(vendor))
	for _, it := range items {
		folded = append(folded, Fold(it.Name))
	}

	x := Extraction{
		Taxes:    taxes,
		Total:    total,
		Subtotal: subtotal,
		Items:    items,
		Category: constants.ClassifyExpense(folded...),
	}
	if vendor != "" {
		x.Vendor = &vendor
	}
	if date != "" {
		x.Date = &date
	}
	x.Confidence = scoreConfidence(x, e.cfg.Weights, e.cfg.Tolerance)

	e.logger.Debug("extract.ok",
		"lines", len(lines),
		"header", len(secs.Header), "item_lines", len(secs.Items), "summary", len(secs.Summary),
		"vendor", vendor != "", "date", date != "",
		"items", len(items), "taxes", len(taxes),
		"raw_line_scores", len(rec.LineScores),
		"confidence", x.Confidence,
	)
	return x, nil
}
