package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNonConforming = errors.New("output does not match field contract")

// Conform checks raw model output against the variant's contract and returns
// the decoded fields together with the sanitized JSON.
//
// Before validating it drops optional fields the model set to null, trims
// strings and removes blank list items. Required fields are never dropped,
// so a missing or null required field still fails.
func (v *Variant) Conform(raw []byte) (map[string]any, []byte, []string, error) {
	compiled, err := v.compile()
	if err != nil {
		return nil, nil, nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: decode: %v", ErrNonConforming, err)
	}
	if doc == nil {
		return nil, nil, nil, fmt.Errorf("%w: not a JSON object", ErrNonConforming)
	}

	dropped := v.sanitize(doc)

	// The validator wants the generic decoding of the sanitized document.
	cleaned, err := json.Marshal(doc)
	if err != nil {
		return nil, nil, dropped, fmt.Errorf("encode sanitized output: %w", err)
	}
	var generic any
	if err := json.Unmarshal(cleaned, &generic); err != nil {
		return nil, nil, dropped, fmt.Errorf("decode sanitized output: %w", err)
	}
	if err := compiled.Validate(generic); err != nil {
		return nil, nil, dropped, fmt.Errorf("%w: %v", ErrNonConforming, err)
	}
	return doc, cleaned, dropped, nil
}

func (v *Variant) sanitize(doc map[string]any) []string {
	var dropped []string
	for _, f := range v.Fields {
		val, ok := doc[f.Name]
		if !ok {
			continue
		}
		switch t := val.(type) {
		case nil:
			if !f.Required {
				delete(doc, f.Name)
				dropped = append(dropped, f.Name+"(null)")
			}
		case string:
			doc[f.Name] = strings.TrimSpace(t)
		case []any:
			items := make([]any, 0, len(t))
			for _, item := range t {
				s, isString := item.(string)
				if !isString {
					items = append(items, item)
					continue
				}
				if s = strings.TrimSpace(s); s != "" {
					items = append(items, s)
				}
			}
			doc[f.Name] = items
		}
	}
	return dropped
}
