package extract

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expenso-app/receipt-extraction/constants"
)

const cleanReceipt = `AUX VIVRES
2025-11-16 14:22
60LS CHILI GR 10.00
MEKONG CHAP 10.50
Sous-total 31.00
TPS 1.55
TVQ 2.77
Total 35.32`

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	return NewExtractor(Config{}, nil)
}

func TestExtract_CleanReceipt(t *testing.T) {
	eng := newTestExtractor(t)
	x, err := eng.Extract(context.Background(), RawRecognition{Text: cleanReceipt})
	require.NoError(t, err)

	want := "fournisseur=AUX VIVRES, sous_total=31.00, TPS=1.55, TVQ=2.77, total=35.32, date=2025-11-16, articles=[60LS CHILI GR:10.00; MEKONG CHAP:10.50]"
	assert.Equal(t, want, x.EncodeKeyValue())
	assert.Equal(t, constants.Autre, x.Category)
	assert.InDelta(t, 1.0, x.Confidence, 1e-9)
}

func TestExtract_EmptyInput(t *testing.T) {
	eng := newTestExtractor(t)
	for _, raw := range []string{"", "   ", "\n\n\t\n"} {
		_, err := eng.Extract(context.Background(), RawRecognition{Text: raw})
		assert.ErrorIs(t, err, ErrNoTextRecognized, "input %q", raw)
	}
}

func TestExtract_PartialReceiptIsNotAnError(t *testing.T) {
	eng := newTestExtractor(t)
	x, err := eng.Extract(context.Background(), RawRecognition{Text: "magasin quelconque\nTotal 12.50"})
	require.NoError(t, err)

	require.NotNil(t, x.Vendor)
	assert.Equal(t, "magasin quelconque", *x.Vendor)
	require.NotNil(t, x.Total)
	assert.Equal(t, "12.5", x.Total.String())
	assert.Nil(t, x.Date)
	assert.Nil(t, x.Subtotal)
	assert.Empty(t, x.Taxes)
	assert.Empty(t, x.Items)
	assert.Equal(t, constants.Autre, x.Category)
	assert.InDelta(t, 0.40, x.Confidence, 1e-9)
}

func TestExtract_MissingTotalStaysAbsent(t *testing.T) {
	eng := newTestExtractor(t)
	x, err := eng.Extract(context.Background(), RawRecognition{Text: "DEPANNEUR\nSous-total 20.00\nTPS 1.00"})
	require.NoError(t, err)

	assert.Nil(t, x.Total)
	require.NotNil(t, x.Subtotal)
	assert.Equal(t, "20", x.Subtotal.String())
	require.Len(t, x.Taxes, 1)
	assert.Equal(t, "1", x.Taxes["TPS"].String())
	// No total, no agreement bonus: well below the clean-receipt score.
	assert.InDelta(t, 0.30, x.Confidence, 1e-9)
}

func TestExtract_FallbackItemsSurviveToTheRecord(t *testing.T) {
	eng := newTestExtractor(t)
	x, err := eng.Extract(context.Background(), RawRecognition{Text: "####\nxyz#@ 5,50\n@@@@"})
	require.NoError(t, err)

	require.Len(t, x.Items, 1)
	assert.Equal(t, "xyz#@", x.Items[0].Name)
	assert.Equal(t, "5.5", x.Items[0].Price.String())
}

func TestExtract_IntermediateTotalDoesNotShadowFinal(t *testing.T) {
	eng := newTestExtractor(t)
	x, err := eng.Extract(context.Background(), RawRecognition{Text: `CANTINE
BURGER 12.00
FRITE 4.00
Total partiel 18.00
TPS 0.90
Total 25.00`})
	require.NoError(t, err)
	require.NotNil(t, x.Total)
	assert.Equal(t, "25", x.Total.String())
}

func TestExtract_CategoryFromVendorAndItems(t *testing.T) {
	eng := newTestExtractor(t)
	x, err := eng.Extract(context.Background(), RawRecognition{Text: `RESTAURANT CHEZ PAUL
POUTINE 8.99
Total 8.99`})
	require.NoError(t, err)
	assert.Equal(t, constants.Restauration, x.Category)
}

func TestExtract_LocaleOverridesDateOrder(t *testing.T) {
	eng := newTestExtractor(t)
	raw := "DEPANNEUR ULTRA\nCHIPS 3.00\nTotal 3.00\n05/04/2025"

	x, err := eng.Extract(context.Background(), RawRecognition{Text: raw})
	require.NoError(t, err)
	require.NotNil(t, x.Date)
	assert.Equal(t, "2025-04-05", *x.Date)

	x, err = eng.Extract(context.Background(), RawRecognition{Text: raw, Locale: "en-CA"})
	require.NoError(t, err)
	require.NotNil(t, x.Date)
	assert.Equal(t, "2025-05-04", *x.Date)
}

func TestExtract_Deterministic(t *testing.T) {
	eng := newTestExtractor(t)

	first, err := eng.Extract(context.Background(), RawRecognition{Text: cleanReceipt})
	require.NoError(t, err)
	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := eng.Extract(context.Background(), RawRecognition{Text: cleanReceipt})
		require.NoError(t, err)
		assert.Equal(t, first.EncodeKeyValue(), again.EncodeKeyValue())

		againJSON, err := json.Marshal(again)
		require.NoError(t, err)
		assert.Equal(t, firstJSON, againJSON)
	}
}

func TestExtract_JSONOutputMatchesSchema(t *testing.T) {
	eng := newTestExtractor(t)
	for _, raw := range []string{cleanReceipt, "magasin quelconque\nTotal 12.50", "####\nxyz#@ 5,50"} {
		x, err := eng.Extract(context.Background(), RawRecognition{Text: raw})
		require.NoError(t, err)
		data, err := json.Marshal(x)
		require.NoError(t, err)
		assert.NoError(t, ValidateExtractionJSON(data), "input %q", raw)
	}
}

func TestExtract_DefaultsAppliedToZeroConfig(t *testing.T) {
	eng := NewExtractor(Config{}, nil)
	assert.Equal(t, "fr-CA", eng.cfg.Locale)
	assert.InDelta(t, 0.20, eng.cfg.HeaderFraction, 1e-9)
	assert.InDelta(t, 0.75, eng.cfg.ItemsCeiling, 1e-9)
	assert.Equal(t, "0.02", eng.cfg.Tolerance.String())
	assert.Equal(t, DefaultWeights(), eng.cfg.Weights)
}
