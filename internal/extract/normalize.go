package extract

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoTextRecognized is the engine's only hard failure: normalization found
// zero non-empty lines in the recognized text. Every other missing field is
// reported as absence on the result, never as an error.
var ErrNoTextRecognized = errors.New("no text recognized")

// Line is a cleaned receipt line. Index is the line's position in the raw
// recognized text and is preserved even when blank neighbours are dropped,
// so index gaps are normal. Text keeps the original casing (vendor names
// come out of it); Folded is the lowercase accent-stripped view used for
// keyword matching.
type Line struct {
	Index  int
	Text   string
	Folded string
}

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reInnerSpace = regexp.MustCompile(`[ \t]{2,}`)
)

// NormalizeLines splits raw recognized text into cleaned lines: trimmed,
// inner whitespace collapsed to a single space, empty lines dropped with
// their indices retained on the survivors.
func NormalizeLines(raw string) ([]Line, error) {
	s := reCRLF.ReplaceAllString(raw, "\n")
	s = strings.ReplaceAll(s, "\t", " ")

	var out []Line
	for i, l := range strings.Split(s, "\n") {
		t := strings.TrimSpace(reInnerSpace.ReplaceAllString(l, " "))
		if t == "" {
			continue
		}
		out = append(out, Line{Index: i, Text: t, Folded: Fold(t)})
	}
	if len(out) == 0 {
		return nil, ErrNoTextRecognized
	}
	return out, nil
}
