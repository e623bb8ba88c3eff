package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateFromLine_ISO(t *testing.T) {
	got, ok := dateFromLine("2025-11-16 14:22", true)
	assert.True(t, ok)
	assert.Equal(t, "2025-11-16", got)
}

func TestDateFromLine_SlashDayFirst(t *testing.T) {
	got, ok := dateFromLine("16/11/2025", true)
	assert.True(t, ok)
	assert.Equal(t, "2025-11-16", got)
}

func TestDateFromLine_SlashMonthFirst(t *testing.T) {
	got, ok := dateFromLine("11/16/2025", false)
	assert.True(t, ok)
	assert.Equal(t, "2025-11-16", got)
}

func TestDateFromLine_DisambiguatesAgainstLocale(t *testing.T) {
	// 16 cannot be a month, so day-first wins even under an en locale.
	got, ok := dateFromLine("16/11/2025", false)
	assert.True(t, ok)
	assert.Equal(t, "2025-11-16", got)
}

func TestDateFromLine_TwoDigitYear(t *testing.T) {
	got, ok := dateFromLine("16-11-25", true)
	assert.True(t, ok)
	assert.Equal(t, "2025-11-16", got)
}

func TestDateFromLine_FrenchMonthName(t *testing.T) {
	cases := map[string]string{
		"16 novembre 2025": "2025-11-16",
		"1er juillet 2024": "2024-07-01",
		"3 fevr. 2025":     "2025-02-03",
		"12 aout 2025":     "2025-08-12",
	}
	for in, want := range cases {
		got, ok := dateFromLine(in, true)
		assert.True(t, ok, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestDateFromLine_EnglishMonthName(t *testing.T) {
	got, ok := dateFromLine("nov 16, 2025", false)
	assert.True(t, ok)
	assert.Equal(t, "2025-11-16", got)
}

func TestDateFromLine_RejectsImpossibleDates(t *testing.T) {
	for _, in := range []string{"2025-13-01", "2025-02-30", "32/01/2025", "pas de date ici"} {
		_, ok := dateFromLine(in, true)
		assert.False(t, ok, "input %q", in)
	}
}

func TestExtractDate_HeaderBeforeSummary(t *testing.T) {
	header := mustLines(t, "AUX VIVRES", "2025-11-16 14:22")
	summary := mustLines(t, "Total 35.32", "2024-01-01")
	assert.Equal(t, "2025-11-16", extractDate(header, summary, true))
}

func TestExtractDate_FallsBackToSummary(t *testing.T) {
	header := mustLines(t, "AUX VIVRES")
	summary := mustLines(t, "Total 35.32", "Imprime le 16/11/2025")
	assert.Equal(t, "2025-11-16", extractDate(header, summary, true))
}

func TestExtractDate_AbsentIsEmpty(t *testing.T) {
	assert.Equal(t, "", extractDate(mustLines(t, "AUX VIVRES"), mustLines(t, "Total 35.32"), true))
}
