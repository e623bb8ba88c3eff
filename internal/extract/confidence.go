package extract

import (
	"github.com/shopspring/decimal"
)

// Weights control how much each extracted field contributes to the overall
// confidence, plus the bonus granted when subtotal + taxes agree with the
// total. They are plain data so callers can tune them per receipt source.
type Weights struct {
	Vendor    float64
	Date      float64
	Total     float64
	Tax       float64
	Items     float64
	Agreement float64
}

// DefaultWeights sums to 1.0 with the agreement bonus included.
func DefaultWeights() Weights {
	return Weights{
		Vendor:    0.15,
		Date:      0.15,
		Total:     0.25,
		Tax:       0.15,
		Items:     0.20,
		Agreement: 0.10,
	}
}

func (w Weights) isZero() bool {
	return w == Weights{}
}

// scoreConfidence aggregates field presence into one number in [0,1]. The
// agreement bonus fires when subtotal + sum(taxes) lands within tolerance of
// the total; decimal arithmetic keeps the check exact regardless of tax map
// iteration order.
func scoreConfidence(x Extraction, w Weights, tolerance decimal.Decimal) float64 {
	score := 0.0
	if x.Vendor != nil {
		score += w.Vendor
	}
	if x.Date != nil {
		score += w.Date
	}
	if x.Total != nil {
		score += w.Total
	}
	if len(x.Taxes) > 0 {
		score += w.Tax
	}
	if len(x.Items) > 0 {
		score += w.Items
	}
	if x.Subtotal != nil && x.Total != nil {
		sum := *x.Subtotal
		for _, t := range x.Taxes {
			sum = sum.Add(t)
		}
		if sum.Sub(*x.Total).Abs().Cmp(tolerance) <= 0 {
			score += w.Agreement
		}
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}
