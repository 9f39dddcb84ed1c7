package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinVariantsValidate(t *testing.T) {
	for _, v := range Builtin() {
		t.Run(v.ID, func(t *testing.T) {
			require.NoError(t, v.Validate())
			_, err := v.compile()
			require.NoError(t, err)
		})
	}
}

func TestSalesProposalContract(t *testing.T) {
	v := SalesProposal()

	assert.Equal(t, "sales_proposal_en_v1", v.SchemaName())
	assert.Equal(t, "en", v.Language)
	assert.False(t, v.Strict())
	assert.Equal(t, []string{
		"customer", "industry", "objectives", "scope", "technologies", "solutionSummary",
	}, v.Required())

	f, ok := v.Field("technologies")
	require.True(t, ok)
	assert.Equal(t, TextList, f.Type)

	f, ok = v.Field("projectTitle")
	require.True(t, ok)
	assert.False(t, f.Required)

	assert.Contains(t, v.Instructions, "Power BI")
}

func TestPropuestaNarrativaContract(t *testing.T) {
	v := PropuestaNarrativa()

	assert.Equal(t, "propuesta_narrativa_es_v1", v.SchemaName())
	assert.Equal(t, "es", v.Language)
	assert.True(t, v.Strict())
	for _, f := range v.Fields {
		assert.NotEqual(t, TextList, f.Type, "field %s should be narrative", f.Name)
	}
	assert.Contains(t, v.Instructions, "cadena vacía")
}

func TestVariantValidate(t *testing.T) {
	base := func() *Variant {
		return &Variant{
			ID:           "demo",
			Version:      1,
			Fields:       []Field{{Name: "title", Type: ShortText, Required: true}},
			Instructions: "Extract the title.",
		}
	}

	tests := []struct {
		name   string
		mutate func(v *Variant)
		ok     bool
	}{
		{name: "valid", mutate: func(v *Variant) {}, ok: true},
		{name: "bad id", mutate: func(v *Variant) { v.ID = "Demo-1" }},
		{name: "zero version", mutate: func(v *Variant) { v.Version = 0 }},
		{name: "empty instructions", mutate: func(v *Variant) { v.Instructions = "  " }},
		{name: "nothing required", mutate: func(v *Variant) { v.Fields[0].Required = false }},
		{name: "unknown type", mutate: func(v *Variant) { v.Fields[0].Type = "number" }},
		{name: "duplicate field", mutate: func(v *Variant) { v.Fields = append(v.Fields, v.Fields[0]) }},
		{name: "empty field name", mutate: func(v *Variant) {
			v.Fields = append(v.Fields, Field{Name: "", Type: ShortText})
		}},
		{name: "field missing from instructions", mutate: func(v *Variant) {
			v.Fields = append(v.Fields, Field{Name: "summary", Type: FreeText})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := base()
			tt.mutate(v)
			err := v.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidVariant)
		})
	}
}

func TestJSONSchemaDocument(t *testing.T) {
	b, err := json.Marshal(SalesProposal().JSONSchema())
	require.NoError(t, err)

	var doc struct {
		Type                 string                    `json:"type"`
		AdditionalProperties bool                      `json:"additionalProperties"`
		Required             []string                  `json:"required"`
		Properties           map[string]map[string]any `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(b, &doc))

	assert.Equal(t, "object", doc.Type)
	assert.False(t, doc.AdditionalProperties)
	assert.Len(t, doc.Properties, 8)
	assert.Equal(t, "array", doc.Properties["scope"]["type"])
	assert.Equal(t, map[string]any{"type": "string"}, doc.Properties["scope"]["items"])
	assert.Equal(t, "string", doc.Properties["customer"]["type"])
	assert.NotContains(t, doc.Required, "date")
}
