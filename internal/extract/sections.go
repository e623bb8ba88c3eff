package extract

import (
	"math"
	"strings"
)

// Sections holds the three receipt regions. They partition the normalized
// line slice: every retained line lands in exactly one region and the item
// region is a single contiguous run.
type Sections struct {
	Header  []Line
	Items   []Line
	Summary []Line
}

// summaryMarkers end the item region: the first later line containing any of
// these folded tokens starts the summary.
var summaryMarkers = []string{
	"sous-total", "subtotal", "total", "tps", "tvq", "tvh", "tvp",
	"gst", "pst", "hst", "taxe", "tax", "client", "facture", "invoice",
}

func hasSummaryMarker(folded string) bool {
	for _, m := range summaryMarkers {
		if strings.Contains(folded, m) {
			return true
		}
	}
	return false
}

func fractionCeil(n int, fraction float64) int {
	c := int(math.Ceil(fraction * float64(n)))
	if c < 1 {
		c = 1
	}
	if c > n {
		c = n
	}
	return c
}

// ClassifySections partitions lines into header, items and summary.
//
// The header runs up to the first item-like line, hard-capped at
// headerFraction of all lines so a receipt with no recognizable items still
// keeps a bounded header. The item region ends at the first summary marker
// after its start; a ceiling of itemsCeiling bounds the region when a noisy
// receipt carries no marker at all, so the remainder degrades into summary
// instead of the items swallowing the whole receipt.
func ClassifySections(lines []Line, headerFraction, itemsCeiling float64) Sections {
	n := len(lines)
	headerCap := fractionCeil(n, headerFraction)

	firstItem := -1
	for i, l := range lines {
		if looksLikeItem(l) {
			firstItem = i
			break
		}
	}

	headerEnd := headerCap
	if firstItem >= 0 && firstItem < headerCap {
		headerEnd = firstItem
	}

	scanFrom := headerEnd
	if firstItem >= headerEnd {
		scanFrom = firstItem + 1
	}
	itemsEnd := n
	for i := scanFrom; i < n; i++ {
		if hasSummaryMarker(lines[i].Folded) {
			itemsEnd = i
			break
		}
	}
	if ceiling := fractionCeil(n, itemsCeiling); itemsEnd > ceiling {
		itemsEnd = ceiling
	}
	if itemsEnd < headerEnd {
		itemsEnd = headerEnd
	}

	return Sections{
		Header:  lines[:headerEnd],
		Items:   lines[headerEnd:itemsEnd],
		Summary: lines[itemsEnd:],
	}
}
