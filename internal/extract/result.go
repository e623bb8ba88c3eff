package extract

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/expenso-app/receipt-extraction/constants"
)

// TaxBreakdown maps a tax kind to the amount printed for it. A missing key
// means the receipt does not show that tax, which is different from zero.
type TaxBreakdown map[constants.TaxKind]decimal.Decimal

// Extraction is the structured record produced for one receipt. Pointer
// fields are absent when the text gave no usable signal; the engine never
// substitutes zeroes for missing financial data.
type Extraction struct {
	Vendor     *string            `json:"fournisseur,omitempty"`
	Date       *string            `json:"date,omitempty"` // ISO-8601
	Subtotal   *decimal.Decimal   `json:"sous_total,omitempty"`
	Taxes      TaxBreakdown       `json:"taxes,omitempty"`
	Total      *decimal.Decimal   `json:"total,omitempty"`
	Items      []LineItem         `json:"articles,omitempty"`
	Category   constants.Category `json:"categorie"`
	Confidence float64            `json:"confiance"`
}

// EncodeKeyValue renders the flat line format consumed downstream:
//
//	fournisseur=AUX VIVRES, sous_total=31.00, TPS=1.55, TVQ=2.77, total=35.32, date=2025-11-16, articles=[60LS CHILI GR:10.00; MEKONG CHAP:10.50]
//
// Field order is fixed and absent fields are omitted entirely. Item names
// were stripped of ":" and ";" during cleaning, so the articles list needs
// no escaping.
func (x Extraction) EncodeKeyValue() string {
	fields := make([]string, 0, 9)
	if x.Vendor != nil {
		fields = append(fields, "fournisseur="+*x.Vendor)
	}
	if x.Subtotal != nil {
		fields = append(fields, "sous_total="+x.Subtotal.StringFixed(2))
	}
	for _, kind := range constants.AllTaxKinds {
		if amt, ok := x.Taxes[kind]; ok {
			fields = append(fields, string(kind)+"="+amt.StringFixed(2))
		}
	}
	if x.Total != nil {
		fields = append(fields, "total="+x.Total.StringFixed(2))
	}
	if x.Date != nil {
		fields = append(fields, "date="+*x.Date)
	}
	if len(x.Items) > 0 {
		parts := make([]string, len(x.Items))
		for i, item := range x.Items {
			parts[i] = item.Name + ":" + item.Price.StringFixed(2)
		}
		fields = append(fields, "articles=["+strings.Join(parts, "; ")+"]")
	}
	return strings.Join(fields, ", ")
}
