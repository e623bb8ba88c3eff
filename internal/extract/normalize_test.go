package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLines_TrimsAndCollapses(t *testing.T) {
	lines, err := NormalizeLines("  AUX   VIVRES  \r\n\tTotal\t35.32  ")
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, "AUX VIVRES", lines[0].Text)
	assert.Equal(t, "Total 35.32", lines[1].Text)
}

func TestNormalizeLines_KeepsIndexGaps(t *testing.T) {
	lines, err := NormalizeLines("first\n\n   \nfourth")
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, 0, lines[0].Index)
	assert.Equal(t, 3, lines[1].Index)
}

func TestNormalizeLines_PreservesCaseExposesFoldedView(t *testing.T) {
	lines, err := NormalizeLines("Reçu Matériaux")
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, "Reçu Matériaux", lines[0].Text)
	assert.Equal(t, "recu materiaux", lines[0].Folded)
}

func TestNormalizeLines_EmptyInputFails(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\n\t\n", "\r\n \r\n"} {
		lines, err := NormalizeLines(raw)
		assert.ErrorIs(t, err, ErrNoTextRecognized, "input %q", raw)
		assert.Nil(t, lines)
	}
}
