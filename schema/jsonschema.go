package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Document is a JSON Schema rendered as a generic map. It is handed to
// model backends as the output constraint and compiled locally to check
// what comes back.
type Document map[string]any

func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any(d))
}

// JSONSchema renders the contract as a JSON Schema (draft 2020-12 subset).
func (v *Variant) JSONSchema() Document {
	props := make(map[string]any, len(v.Fields))
	for _, f := range v.Fields {
		props[f.Name] = fieldSchema(f)
	}
	return Document{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             v.Required(),
	}
}

func fieldSchema(f Field) map[string]any {
	switch f.Type {
	case TextList:
		return map[string]any{
			"type":        "array",
			"description": f.Description,
			"items":       map[string]any{"type": "string"},
		}
	default:
		return map[string]any{
			"type":        "string",
			"description": f.Description,
		}
	}
}

func (v *Variant) compile() (*jsonschema.Schema, error) {
	v.once.Do(func() {
		b, err := json.Marshal(v.JSONSchema())
		if err != nil {
			v.compErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		url := v.SchemaName() + ".json"
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(url, bytes.NewReader(b)); err != nil {
			v.compErr = fmt.Errorf("add schema: %w", err)
			return
		}
		v.compiled, v.compErr = compiler.Compile(url)
		if v.compErr != nil {
			v.compErr = fmt.Errorf("compile schema: %w", v.compErr)
		}
	})
	return v.compiled, v.compErr
}
