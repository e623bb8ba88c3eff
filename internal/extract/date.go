package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reISODate    = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	reSlashDate  = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	reDashDate2  = regexp.MustCompile(`\b(\d{1,2})-(\d{1,2})-(\d{2})\b`)
	reDayMonName = regexp.MustCompile(`\b(\d{1,2})(?:er)?\s+([a-z]+)\.?,?\s+(\d{4})\b`)
	reMonNameDay = regexp.MustCompile(`\b([a-z]+)\.?\s+(\d{1,2}),?\s+(\d{4})\b`)
)

// monthPrefixes resolves French and English month names after folding.
// Longer prefixes come first so juin/juillet do not collide with jun/jul.
var monthPrefixes = []struct {
	prefix string
	month  int
}{
	{"janv", 1}, {"jan", 1},
	{"fevr", 2}, {"feb", 2}, {"fev", 2},
	{"mars", 3}, {"mar", 3},
	{"avril", 4}, {"avr", 4}, {"apr", 4},
	{"mai", 5}, {"may", 5},
	{"juin", 6}, {"juil", 7}, {"jun", 6}, {"jul", 7},
	{"aout", 8}, {"aug", 8},
	{"sept", 9}, {"sep", 9},
	{"octo", 10}, {"oct", 10},
	{"nove", 11}, {"nov", 11},
	{"dece", 12}, {"dec", 12},
}

func monthFromName(word string) (int, bool) {
	for _, mp := range monthPrefixes {
		if strings.HasPrefix(word, mp.prefix) {
			return mp.month, true
		}
	}
	return 0, false
}

// validYMD reports whether the triple denotes a real calendar date.
func validYMD(y, m, d int) bool {
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return t.Year() == y && int(t.Month()) == m && t.Day() == d
}

func formatISO(y, m, d int) string {
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

// resolveDayMonth orders an ambiguous (a, b) pair. When only one reading is
// a valid month the ambiguity disappears; otherwise the locale default
// (day-first for French receipts) applies.
func resolveDayMonth(a, b int, dayFirst bool) (day, month int) {
	switch {
	case a > 12 && b <= 12:
		return a, b
	case b > 12 && a <= 12:
		return b, a
	case dayFirst:
		return a, b
	default:
		return b, a
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// dateFromLine tries each supported pattern against one folded line and
// returns the first valid ISO-8601 date.
func dateFromLine(folded string, dayFirst bool) (string, bool) {
	if m := reISODate.FindStringSubmatch(folded); m != nil {
		y, mo, d := atoi(m[1]), atoi(m[2]), atoi(m[3])
		if validYMD(y, mo, d) {
			return formatISO(y, mo, d), true
		}
	}
	if m := reSlashDate.FindStringSubmatch(folded); m != nil {
		d, mo := resolveDayMonth(atoi(m[1]), atoi(m[2]), dayFirst)
		y := atoi(m[3])
		if validYMD(y, mo, d) {
			return formatISO(y, mo, d), true
		}
	}
	if m := reDashDate2.FindStringSubmatch(folded); m != nil {
		d, mo := resolveDayMonth(atoi(m[1]), atoi(m[2]), dayFirst)
		y := 2000 + atoi(m[3])
		if validYMD(y, mo, d) {
			return formatISO(y, mo, d), true
		}
	}
	if m := reDayMonName.FindStringSubmatch(folded); m != nil {
		if mo, ok := monthFromName(m[2]); ok {
			d, y := atoi(m[1]), atoi(m[3])
			if validYMD(y, mo, d) {
				return formatISO(y, mo, d), true
			}
		}
	}
	if m := reMonNameDay.FindStringSubmatch(folded); m != nil {
		if mo, ok := monthFromName(m[1]); ok {
			d, y := atoi(m[2]), atoi(m[3])
			if validYMD(y, mo, d) {
				return formatISO(y, mo, d), true
			}
		}
	}
	return "", false
}

// extractDate scans the header first, then the summary, and returns the
// first line that yields a valid date. Empty string means absent.
func extractDate(header, summary []Line, dayFirst bool) string {
	for _, region := range [][]Line{header, summary} {
		for _, l := range region {
			if d, ok := dateFromLine(l.Folded, dayFirst); ok {
				return d
			}
		}
	}
	return ""
}
