package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/expenso-app/receipt-extraction/constants"
)

var (
	// reAmount matches money-looking tokens: optional sign and currency
	// symbol, optional thousands groups, two decimals with "." or ",".
	reAmount = regexp.MustCompile(`-?[$€£]?\s?\d{1,3}(?:[ ,.]\d{3})*[.,]\d{2}\b|-?[$€£]?\s?\d+[.,]\d{2}\b`)

	reCurrencySymbols = regexp.MustCompile(`[$€£]|\b(?:cad|usd)\b`)

	taxTokenPatterns = buildTaxTokenPatterns()
)

func buildTaxTokenPatterns() map[constants.TaxKind]*regexp.Regexp {
	out := make(map[constants.TaxKind]*regexp.Regexp, len(constants.AllTaxKinds))
	for _, kind := range constants.AllTaxKinds {
		out[kind] = regexp.MustCompile(`\b(?:` + strings.Join(constants.TaxSynonyms[kind], "|") + `)\b`)
	}
	return out
}

// reAnyTaxToken matches any tax label regardless of kind; the total extractor
// uses it to skip lines like "TPS incluse dans le total".
var reAnyTaxToken = regexp.MustCompile(`\b(?:tps|gst|tvq|qst|tvp|pst|tvh|hst)\b`)

// ParseAmount converts a money-looking token to a non-negative decimal.
// Currency symbols and thousands separators are stripped; both "." and ","
// are accepted as the decimal separator. Negative or unparseable values
// report no match rather than zero.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = reCurrencySymbols.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " ", "")

	// With both separators present the rightmost one is the decimal mark;
	// the other is a thousands separator and is dropped.
	dot, comma := strings.LastIndexByte(s, '.'), strings.LastIndexByte(s, ',')
	switch {
	case dot >= 0 && comma >= 0:
		if dot > comma {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		}
	case comma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, false
	}
	return d, true
}

// lastAmountOn returns the rightmost parseable amount on the line.
func lastAmountOn(text string) (decimal.Decimal, bool) {
	matches := reAmount.FindAllString(text, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		if d, ok := ParseAmount(matches[i]); ok {
			return d, true
		}
	}
	return decimal.Decimal{}, false
}

// amountNear returns the trailing amount on lines[i], falling back to the
// next `lookahead` lines when the labelled line carries no number (wrapped
// labels are common on narrow thermal paper).
func amountNear(lines []Line, i, lookahead int) (decimal.Decimal, bool) {
	for j := i; j <= i+lookahead && j < len(lines); j++ {
		if d, ok := lastAmountOn(lines[j].Text); ok {
			return d, true
		}
	}
	return decimal.Decimal{}, false
}

var subtotalLabels = []string{"sous-total", "sous total", "subtotal", "sub-total"}

func hasSubtotalLabel(folded string) bool {
	for _, l := range subtotalLabels {
		if strings.Contains(folded, l) {
			return true
		}
	}
	return false
}

// extractSubtotal scans the summary region for a subtotal label and the
// nearest trailing amount.
func extractSubtotal(summary []Line) *decimal.Decimal {
	for i, l := range summary {
		if hasSubtotalLabel(l.Folded) {
			if d, ok := amountNear(summary, i, 2); ok {
				return &d
			}
		}
	}
	return nil
}

// extractTotal scans the summary region for "total" lines, skipping lines
// that also carry a tax label, a subtotal label or a "partiel" qualifier.
// The last qualifying line wins, so an intermediate total mislabelled near
// the top of the summary does not shadow the real one.
func extractTotal(summary []Line) *decimal.Decimal {
	var found *decimal.Decimal
	for i, l := range summary {
		if !strings.Contains(l.Folded, "total") {
			continue
		}
		if hasSubtotalLabel(l.Folded) || strings.Contains(l.Folded, "partiel") || reAnyTaxToken.MatchString(l.Folded) {
			continue
		}
		if d, ok := amountNear(summary, i, 2); ok {
			found = &d
		}
	}
	return found
}

// extractTaxes collects one amount per tax kind from the summary region.
// Each kind is independent: a receipt may show none, one or several. The
// amount must sit on the labelled line itself.
func extractTaxes(summary []Line) TaxBreakdown {
	taxes := make(TaxBreakdown)
	for _, kind := range constants.AllTaxKinds {
		re := taxTokenPatterns[kind]
		for _, l := range summary {
			if !re.MatchString(l.Folded) {
				continue
			}
			if d, ok := lastAmountOn(l.Text); ok {
				taxes[kind] = d
				break
			}
		}
	}
	return taxes
}
