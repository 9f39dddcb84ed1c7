package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r, err := NewDefaultRegistry(SalesProposalID)
	require.NoError(t, err)

	assert.Equal(t, []string{SalesProposalID, PropuestaNarrativaID}, r.IDs())
	assert.Equal(t, SalesProposalID, r.DefaultID())
	assert.Len(t, r.Variants(), 2)

	v, err := r.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, SalesProposalID, v.ID)

	v, err = r.Resolve(" " + PropuestaNarrativaID + " ")
	require.NoError(t, err)
	assert.Equal(t, PropuestaNarrativaID, v.ID)

	_, err = r.Resolve("invoice_en")
	assert.ErrorIs(t, err, ErrUnknownVariant)

	_, ok := r.Lookup("invoice_en")
	assert.False(t, ok)
}

func TestNewRegistryRejects(t *testing.T) {
	t.Run("unknown default", func(t *testing.T) {
		_, err := NewRegistry("missing", SalesProposal())
		assert.ErrorIs(t, err, ErrUnknownVariant)
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := NewRegistry(SalesProposalID, SalesProposal(), SalesProposal())
		assert.ErrorIs(t, err, ErrInvalidVariant)
	})

	t.Run("instructions omit a field", func(t *testing.T) {
		v := SalesProposal()
		v.Fields = append(v.Fields, Field{Name: "budget", Type: ShortText})
		_, err := NewRegistry(SalesProposalID, v)
		assert.ErrorIs(t, err, ErrInvalidVariant)
	})

	t.Run("nil", func(t *testing.T) {
		_, err := NewRegistry(SalesProposalID, nil)
		assert.ErrorIs(t, err, ErrInvalidVariant)
	})
}
