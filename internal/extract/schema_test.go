package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateExtractionJSON_AcceptsMinimalRecord(t *testing.T) {
	assert.NoError(t, ValidateExtractionJSON([]byte(`{"categorie":"Autre","confiance":0}`)))
}

func TestValidateExtractionJSON_Rejections(t *testing.T) {
	cases := map[string]string{
		"missing category":    `{"confiance":0.5}`,
		"unknown category":    `{"categorie":"Loisirs","confiance":0.5}`,
		"confidence above 1":  `{"categorie":"Autre","confiance":1.5}`,
		"numeric amount":      `{"categorie":"Autre","confiance":0.5,"total":35.32}`,
		"negative amount":     `{"categorie":"Autre","confiance":0.5,"total":"-5.00"}`,
		"unknown tax kind":    `{"categorie":"Autre","confiance":0.5,"taxes":{"TVA":"1.00"}}`,
		"unexpected property": `{"categorie":"Autre","confiance":0.5,"montant":"1.00"}`,
		"nameless article":    `{"categorie":"Autre","confiance":0.5,"articles":[{"price":"1.00"}]}`,
		"not json":            `{`,
	}
	for label, doc := range cases {
		require.Error(t, ValidateExtractionJSON([]byte(doc)), label)
	}
}

func TestBuildExtractionJSONSchema_CoversEveryTaxKind(t *testing.T) {
	schema := BuildExtractionJSONSchema()
	taxes, ok := schema["properties"].(map[string]any)["taxes"].(map[string]any)
	require.True(t, ok)
	props, ok := taxes["properties"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, props, 4)
	for _, kind := range []string{"TPS", "TVQ", "TVP", "TVH"} {
		assert.Contains(t, props, kind)
	}
}
