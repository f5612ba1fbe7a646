package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"columnstore/types"
)

func TestAttributeVectorGetSetRoundTrip(t *testing.T) {
	for _, width := range []types.AttributeVectorWidth{types.Width1, types.Width2, types.Width4, types.Width8} {
		av := newAttributeVector(4, width)
		assert.Equal(t, 4, av.Size())
		assert.Equal(t, width, av.Width())

		av.Set(0, types.ValueID(3))
		av.Set(1, types.InvalidValueID)
		av.Set(2, types.ValueID(0))

		assert.Equal(t, types.ValueID(3), av.Get(0))
		assert.Equal(t, types.InvalidValueID, av.Get(1))
		assert.Equal(t, types.ValueID(0), av.Get(2))
	}
}

func TestAttributeVectorOutOfRangePanics(t *testing.T) {
	av := newAttributeVector(2, types.Width1)
	assert.Panics(t, func() { av.Get(5) })
	assert.Panics(t, func() { av.Set(5, 0) })
}
