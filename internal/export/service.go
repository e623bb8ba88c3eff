package export

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/expenso-app/receipt-extraction/constants"
	"github.com/expenso-app/receipt-extraction/internal/async"
)

// Service produces XLSX bytes for batches of extractions. Column order
// mirrors the flat key=value serialization so both outputs read the same.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

var headers = []string{
	"Date",
	"Fournisseur",
	"Catégorie",
	"Sous-total",
	"TPS",
	"TVQ",
	"TVP",
	"TVH",
	"Total",
	"Articles",
	"Confiance",
	"Fichier source",
}

// BuildXLSX returns an XLSX workbook for the given rows. Absent fields stay
// blank, never zero.
func (s *Service) BuildXLSX(rows []async.Result) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Extractions"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, r := range rows {
		row := rowIdx + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		x := r.Extraction
		if x.Date != nil {
			write(1, *x.Date)
		}
		if x.Vendor != nil {
			write(2, *x.Vendor)
		}
		write(3, string(x.Category))
		if x.Subtotal != nil {
			write(4, x.Subtotal.StringFixed(2))
		}
		for i, kind := range constants.AllTaxKinds {
			if amt, ok := x.Taxes[kind]; ok {
				write(5+i, amt.StringFixed(2))
			}
		}
		if x.Total != nil {
			write(9, x.Total.StringFixed(2))
		}
		if len(x.Items) > 0 {
			parts := make([]string, len(x.Items))
			for i, item := range x.Items {
				parts[i] = item.Name + ":" + item.Price.StringFixed(2)
			}
			write(10, strings.Join(parts, "; "))
		}
		write(11, x.Confidence)
		write(12, r.Path)
	}

	_ = f.SetColWidth(sheet, "A", "A", 12) // date
	_ = f.SetColWidth(sheet, "B", "B", 28) // vendor
	_ = f.SetColWidth(sheet, "C", "C", 16) // category
	_ = f.SetColWidth(sheet, "D", "I", 12) // amounts
	_ = f.SetColWidth(sheet, "J", "J", 48) // articles
	_ = f.SetColWidth(sheet, "K", "K", 10) // confidence
	_ = f.SetColWidth(sheet, "L", "L", 50) // path

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx",
		"rows", len(rows),
		"bytes", buf.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
