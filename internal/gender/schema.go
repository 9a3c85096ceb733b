package gender

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildDatasetJSONSchema returns the JSON-Schema the dataset file must satisfy.
func BuildDatasetJSONSchema() map[string]any {
	nameList := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string", "minLength": 1},
	}
	verdicts := []string{
		string(VerdictFemale), string(VerdictMale), string(VerdictMostlyFemale),
		string(VerdictMostlyMale), string(VerdictAndy),
	}
	firstNameProps := map[string]any{}
	for _, v := range verdicts {
		firstNameProps[v] = nameList
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"male_titles":   nameList,
			"male_patterns": nameList,
			"first_names": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           firstNameProps,
			},
		},
		"required": []string{"male_titles", "male_patterns", "first_names"},
	}
}

// validateDataset validates a decoded document against BuildDatasetJSONSchema.
// The document is round-tripped through JSON so YAML scalars end up as the
// types the validator expects.
func validateDataset(doc any) error {
	b, err := json.Marshal(BuildDatasetJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("gender-dataset.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("gender-dataset.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal dataset: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("dataset does not match schema: %w", err)
	}
	return nil
}
