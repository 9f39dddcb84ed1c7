package schema

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownVariant = errors.New("unknown schema variant")

// Registry maps variant IDs to variants. It is filled once at start-up and
// only read afterwards, so lookups are safe from concurrent requests.
type Registry struct {
	variants  map[string]*Variant
	order     []string
	defaultID string
}

// NewRegistry validates and registers the given variants. defaultID must
// name one of them.
func NewRegistry(defaultID string, variants ...*Variant) (*Registry, error) {
	r := &Registry{variants: make(map[string]*Variant, len(variants))}
	for _, v := range variants {
		if err := r.register(v); err != nil {
			return nil, err
		}
	}
	if _, ok := r.variants[defaultID]; !ok {
		return nil, fmt.Errorf("%w: default %q is not registered", ErrUnknownVariant, defaultID)
	}
	r.defaultID = defaultID
	return r, nil
}

// NewDefaultRegistry registers the built-in variants.
func NewDefaultRegistry(defaultID string) (*Registry, error) {
	return NewRegistry(defaultID, Builtin()...)
}

// Builtin returns fresh copies of the variants shipped with the service.
func Builtin() []*Variant {
	return []*Variant{
		SalesProposal(),
		PropuestaNarrativa(),
	}
}

func (r *Registry) register(v *Variant) error {
	if v == nil {
		return fmt.Errorf("%w: nil variant", ErrInvalidVariant)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	if _, dup := r.variants[v.ID]; dup {
		return fmt.Errorf("%w: %q registered twice", ErrInvalidVariant, v.ID)
	}
	if _, err := v.compile(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidVariant, v.ID, err)
	}
	r.variants[v.ID] = v
	r.order = append(r.order, v.ID)
	return nil
}

func (r *Registry) Lookup(id string) (*Variant, bool) {
	v, ok := r.variants[id]
	return v, ok
}

// Resolve returns the variant selected by id, or the default one when id is
// blank.
func (r *Registry) Resolve(id string) (*Variant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return r.Default(), nil
	}
	v, ok := r.variants[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, id)
	}
	return v, nil
}

func (r *Registry) Default() *Variant {
	return r.variants[r.defaultID]
}

func (r *Registry) DefaultID() string {
	return r.defaultID
}

// IDs returns variant IDs in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Variants returns the variants in registration order.
func (r *Registry) Variants() []*Variant {
	out := make([]*Variant, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.variants[id])
	}
	return out
}
