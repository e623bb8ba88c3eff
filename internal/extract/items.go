package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one purchased article. Created by the item extractor and
// immutable afterward; the result keeps items in receipt order and never
// deduplicates.
type LineItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// summaryExclusions are words that label amounts in the summary block or in
// payment lines. A candidate whose cleaned name folds to one of these is not
// a purchasable item, whichever tier produced it.
var summaryExclusions = map[string]struct{}{
	"total": {}, "sous-total": {}, "tps": {}, "tvq": {}, "tvh": {}, "tvp": {},
	"gst": {}, "pst": {}, "hst": {}, "change": {}, "cash": {}, "visa": {},
	"mastercard": {}, "debit": {}, "merci": {}, "tel": {}, "date": {},
}

const itemPrice = `-?\$?\d+(?:[ ,]\d{3})*[.,]\d{2}`

var (
	reItemQtyNamePrice  = regexp.MustCompile(`^(\d{1,3})\s+(.+?)\s+(` + itemPrice + `)$`)
	reItemNamePrice     = regexp.MustCompile(`^(.+?)\s+(` + itemPrice + `)$`)
	reItemNameQtyPrice  = regexp.MustCompile(`(?i)^(.+?)\s+x\s?(\d{1,3})\s+(` + itemPrice + `)$`)
	reItemNamePriceCode = regexp.MustCompile(`^(.+?)\s+(` + itemPrice + `)\s+([A-Za-z]{1,3}\d?)$`)
	reDecimalToken      = regexp.MustCompile(`\d+[.,]\d{2}\b`)

	reTrailingQty = regexp.MustCompile(`(?i)\s+x\s?\d{1,3}$`)
	reLeadingQty  = regexp.MustCompile(`(?i)^\d{1,3}\s*x\s+|^\d{1,3}\s+`)
	rePureNumeric = regexp.MustCompile(`^[\d\s.,$%#*-]+$`)
	reSpaces      = regexp.MustCompile(`\s{2,}`)

	// reTidyName gates tier 1: shaped patterns only accept names made of
	// word-like characters. The fallback tier has no such gate, which is
	// where its higher false-positive tolerance comes from.
	reTidyName = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} .,&'/-]*$`)
)

// itemMatcher is one line-shape strategy. Matchers run in declaration order
// and the first match per line wins.
type itemMatcher struct {
	name  string
	match func(text string) (name, price string, ok bool)
}

var itemMatchers = []itemMatcher{
	{"qty-name-price", func(text string) (string, string, bool) {
		m := reItemQtyNamePrice.FindStringSubmatch(text)
		if m == nil {
			return "", "", false
		}
		return m[2], m[3], true
	}},
	{"name-price", func(text string) (string, string, bool) {
		m := reItemNamePrice.FindStringSubmatch(text)
		if m == nil {
			return "", "", false
		}
		// A trailing "x 2" multiplier belongs to the next matcher.
		if reTrailingQty.MatchString(m[1]) {
			return "", "", false
		}
		return m[1], m[2], true
	}},
	{"name-qty-price", func(text string) (string, string, bool) {
		m := reItemNameQtyPrice.FindStringSubmatch(text)
		if m == nil {
			return "", "", false
		}
		return m[1], m[3], true
	}},
	{"name-price-code", func(text string) (string, string, bool) {
		m := reItemNamePriceCode.FindStringSubmatch(text)
		if m == nil {
			return "", "", false
		}
		return m[1], m[2], true
	}},
	{"single-amount", func(text string) (string, string, bool) {
		locs := reDecimalToken.FindAllStringIndex(text, -1)
		if len(locs) != 1 {
			return "", "", false
		}
		return text[:locs[0][0]], text[locs[0][0]:locs[0][1]], true
	}},
}

// cleanItemName applies the shared cleaning rules: trim, strip a leading
// quantity token, drop characters reserved by the flat serialization
// (":" and ";"), collapse whitespace. Empty string means "rejected".
func cleanItemName(s string) string {
	s = strings.TrimSpace(s)
	s = reLeadingQty.ReplaceAllString(s, "")
	s = strings.NewReplacer(":", "", ";", "").Replace(s)
	s = strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
	if s == "" || rePureNumeric.MatchString(s) {
		return ""
	}
	if _, excluded := summaryExclusions[Fold(s)]; excluded {
		return ""
	}
	return s
}

func itemFromCandidate(name, price string) (LineItem, bool) {
	cleaned := cleanItemName(name)
	if cleaned == "" {
		return LineItem{}, false
	}
	d, ok := ParseAmount(price)
	if !ok {
		return LineItem{}, false
	}
	return LineItem{Name: cleaned, Price: d}, true
}

// matchItemLine runs the tier-1 matchers against one line.
func matchItemLine(text string) (LineItem, bool) {
	for _, m := range itemMatchers {
		name, price, ok := m.match(text)
		if !ok {
			continue
		}
		item, accepted := itemFromCandidate(name, price)
		if accepted && reTidyName.MatchString(item.Name) {
			return item, true
		}
	}
	return LineItem{}, false
}

// looksLikeItem is the section classifier's start marker: a line that one of
// the shaped patterns accepts as a purchasable article.
func looksLikeItem(l Line) bool {
	_, ok := matchItemLine(l.Text)
	return ok
}

// ExtractItems pulls (name, price) pairs out of the item region.
//
// Tier 1 applies the shaped patterns, first match per line wins. Tier 2 runs
// only when tier 1 found nothing: any line carrying a decimal-looking number
// yields a candidate named by everything before the first number. The
// fallback trades precision for recall so a badly recognized receipt still
// produces some structured signal, but the exclusion filter applies in both
// tiers so summary lines never come out as articles.
func ExtractItems(items []Line) []LineItem {
	var out []LineItem
	for _, l := range items {
		if item, ok := matchItemLine(l.Text); ok {
			out = append(out, item)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, l := range items {
		loc := reDecimalToken.FindStringIndex(l.Text)
		if loc == nil {
			continue
		}
		if item, ok := itemFromCandidate(l.Text[:loc[0]], l.Text[loc[0]:loc[1]]); ok {
			out = append(out, item)
		}
	}
	return out
}
