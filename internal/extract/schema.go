package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/expenso-app/receipt-extraction/constants"
)

// BuildExtractionJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map describing the JSON form of Extraction. It backs the CLI's
// -json output check and the test suite's self-validation.
func BuildExtractionJSONSchema() map[string]any {
	taxProps := map[string]any{}
	for _, kind := range constants.AllTaxKinds {
		taxProps[string(kind)] = decimalProp()
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"fournisseur": map[string]any{"type": "string", "minLength": 1},
			"date":        map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
			"sous_total":  decimalProp(),
			"taxes": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           taxProps,
			},
			"total": decimalProp(),
			"articles": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"name":  map[string]any{"type": "string", "minLength": 1},
						"price": decimalProp(),
					},
					"required": []string{"name", "price"},
				},
			},
			"categorie": map[string]any{"type": "string", "enum": constants.AsStringSlice()},
			"confiance": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
		},
		"required": []string{"categorie", "confiance"},
	}
}

func decimalProp() map[string]any {
	// shopspring decimals marshal as quoted strings.
	return map[string]any{
		"type":    "string",
		"pattern": `^\d+(\.\d+)?$`,
	}
}

// ValidateExtractionJSON validates a serialized Extraction against the schema.
func ValidateExtractionJSON(data []byte) error {
	b, err := json.Marshal(BuildExtractionJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("extraction.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("extraction.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
