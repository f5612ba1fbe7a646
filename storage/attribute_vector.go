package storage

import "columnstore/types"

// AttributeVector is the fixed-length positional array of dictionary
// codes backing a DictionaryColumn. It is sized once at construction;
// Get/Set index it directly and rely on Go's native slice-bounds panic
// for out-of-range access — the same invariant-violation class the
// original design calls a debug-level fatal error, with no caller-facing
// error path because every index used against it is derived internally
// from Size(), never from untrusted input.
type AttributeVector interface {
	Get(i int) types.ValueID
	Set(i int, v types.ValueID)
	Size() int
	Width() types.AttributeVectorWidth
}

// fittedAttributeVector is the single implementation, parameterised by
// the unsigned integer type backing one code. The concrete U is chosen
// once, at construction, from the dictionary cardinality driving the
// vector's width — semantics are identical across all four widths, only
// the storage footprint differs.
type fittedAttributeVector[U uint8 | uint16 | uint32 | uint64] struct {
	codes []U
	width types.AttributeVectorWidth
}

// newAttributeVector allocates a zero-valued vector of the given size and
// width. Zero decodes to ValueID 0, not InvalidValueID — callers must
// write every offset before reading it meaningfully.
func newAttributeVector(size int, width types.AttributeVectorWidth) AttributeVector {
	switch width {
	case types.Width1:
		return &fittedAttributeVector[uint8]{codes: make([]uint8, size), width: width}
	case types.Width2:
		return &fittedAttributeVector[uint16]{codes: make([]uint16, size), width: width}
	case types.Width4:
		return &fittedAttributeVector[uint32]{codes: make([]uint32, size), width: width}
	default:
		return &fittedAttributeVector[uint64]{codes: make([]uint64, size), width: width}
	}
}

func (v *fittedAttributeVector[U]) Get(i int) types.ValueID {
	c := v.codes[i]
	if c == ^U(0) {
		return types.InvalidValueID
	}
	return types.ValueID(c)
}

func (v *fittedAttributeVector[U]) Set(i int, id types.ValueID) {
	if id == types.InvalidValueID {
		v.codes[i] = ^U(0)
		return
	}
	v.codes[i] = U(id)
}

func (v *fittedAttributeVector[U]) Size() int { return len(v.codes) }

func (v *fittedAttributeVector[U]) Width() types.AttributeVectorWidth { return v.width }
