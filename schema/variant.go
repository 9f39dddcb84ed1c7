// Package schema holds the field contracts the model must fill, each paired
// with the instructions that explain how to fill it.
package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

type FieldType string

const (
	ShortText FieldType = "short_text"
	FreeText  FieldType = "free_text"
	TextList  FieldType = "text_list"
)

var (
	ErrInvalidVariant = errors.New("invalid schema variant")

	variantIDPattern = regexp.MustCompile(`^[a-z0-9_]+$`)
)

// Field is one entry of a variant's contract.
type Field struct {
	Name        string
	Type        FieldType
	Description string
	Required    bool
}

// Variant is a versioned field contract plus its extraction instructions.
// The two are edited together; Validate refuses a variant whose
// instructions do not mention every field.
//
// A Variant must not be copied after first use.
type Variant struct {
	ID           string
	Version      int
	Language     string // BCP 47 tag of the narrative text the model writes
	Name         string
	Description  string
	Fields       []Field
	Instructions string

	once     sync.Once
	compiled *jsonschema.Schema
	compErr  error
}

// SchemaName is the identifier sent to the model backend along with the
// contract. It only contains characters every backend accepts.
func (v *Variant) SchemaName() string {
	return fmt.Sprintf("%s_v%d", v.ID, v.Version)
}

// Required returns the names of the required fields in declaration order.
func (v *Variant) Required() []string {
	out := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// Strict reports whether every field is required, which is what strict
// structured-output modes demand.
func (v *Variant) Strict() bool {
	for _, f := range v.Fields {
		if !f.Required {
			return false
		}
	}
	return len(v.Fields) > 0
}

func (v *Variant) Field(name string) (Field, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks that the contract is well formed and consistent with its
// instructions.
func (v *Variant) Validate() error {
	if !variantIDPattern.MatchString(v.ID) {
		return fmt.Errorf("%w: id %q must match %s", ErrInvalidVariant, v.ID, variantIDPattern)
	}
	if v.Version < 1 {
		return fmt.Errorf("%w: %s: version must be positive", ErrInvalidVariant, v.ID)
	}
	if strings.TrimSpace(v.Instructions) == "" {
		return fmt.Errorf("%w: %s: instructions are empty", ErrInvalidVariant, v.ID)
	}
	if len(v.Required()) == 0 {
		return fmt.Errorf("%w: %s: at least one field must be required", ErrInvalidVariant, v.ID)
	}

	seen := make(map[string]struct{}, len(v.Fields))
	for _, f := range v.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("%w: %s: field with empty name", ErrInvalidVariant, v.ID)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: %s: duplicate field %q", ErrInvalidVariant, v.ID, f.Name)
		}
		seen[f.Name] = struct{}{}

		switch f.Type {
		case ShortText, FreeText, TextList:
		default:
			return fmt.Errorf("%w: %s: field %q has unknown type %q", ErrInvalidVariant, v.ID, f.Name, f.Type)
		}
		if !strings.Contains(v.Instructions, f.Name) {
			return fmt.Errorf("%w: %s: instructions never mention field %q", ErrInvalidVariant, v.ID, f.Name)
		}
	}
	return nil
}
