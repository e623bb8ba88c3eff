package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// vendorBoilerplate lists folded phrases that open many receipts but never
// name the business.
var vendorBoilerplate = []string{"recu", "facture", "merci", "bienvenue", "invoice", "receipt", "welcome", "tel:", "tel.", "tel "}

var reDateLikeRun = regexp.MustCompile(`\d{1,4}[-/]\d{1,2}[-/]\d{1,4}`)

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// extractVendor picks the first header line that plausibly names the
// business: not a date, not purely numeric (store numbers, phone lines),
// not an opening boilerplate phrase. Original casing is preserved because
// receipts print vendor names the way the business spells them.
func extractVendor(header []Line) string {
	for _, l := range header {
		if !hasLetter(l.Text) {
			continue
		}
		if reDateLikeRun.MatchString(l.Text) {
			continue
		}
		boilerplate := false
		for _, phrase := range vendorBoilerplate {
			if strings.HasPrefix(l.Folded, phrase) {
				boilerplate = true
				break
			}
		}
		if boilerplate {
			continue
		}
		return l.Text
	}
	return ""
}
